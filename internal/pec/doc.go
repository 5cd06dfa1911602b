// Package pec defines the plain-event-content output records: the compact,
// columnar representation of one collision event produced by the synthesis
// pipeline.
//
// Records follow a reset-and-refill discipline. A builder owns one scratch
// instance per object type, calls Reset at the start of each object, fills the
// fields, and copies the finished value into its output slice. No record
// identity survives across events.
//
// Kinematic and score fields are stored as float32. The upstream values are
// float64; narrowing here is deliberate, the output format trades precision
// for size the same way across every column.
package pec
