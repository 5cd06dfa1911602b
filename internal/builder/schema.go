// Package builder turns input object collections into flattened output
// records. One builder per object type owns a reusable scratch record and an
// output slice; Build resets and refills the scratch for every admitted
// object and appends a copy, so no per-object allocation happens in the
// steady state.
package builder

import "github.com/banshee-data/pectuple/internal/event"

// Schema is the job-scope output-schema controller. It wraps the single
// "real data" flag, fixed at construction and never mutated, and answers
// every schema-variant question the builders and the assembler have.
type Schema struct {
	realData bool
}

// NewSchema fixes the schema variant for the whole job.
func NewSchema(realData bool) Schema {
	return Schema{realData: realData}
}

// RealData reports whether real detector data is being processed.
func (s Schema) RealData() bool { return s.realData }

// IncludeGenerator reports whether generator-derived records are produced at
// all. On real data they are skipped entirely, not computed and discarded, so
// the upstream generator collections are never queried.
func (s Schema) IncludeGenerator() bool { return !s.realData }

// ElectronReservedBits is the number of built-in decisions ahead of the user
// selector bits in an electron's packed field.
func (s Schema) ElectronReservedBits() int { return 1 }

// MuonReservedBits is the number of built-in decisions ahead of the user
// selector bits in a muon's packed field.
func (s Schema) MuonReservedBits() int { return 1 }

// JetReservedBits is the number of built-in decisions ahead of the user
// selector bits in a jet's packed field: the generator-match bit on
// simulation, nothing on data.
func (s Schema) JetReservedBits() int {
	if s.realData {
		return 0
	}
	return 1
}

// METVariations returns the systematic-variation kinds synthesised per MET
// source, in output order. Empty on real data.
func (s Schema) METVariations() []event.METVariation {
	if s.realData {
		return nil
	}
	return event.METVariations()
}

// IncludeRawMET reports whether the raw (uncorrected) MET candidate is stored
// alongside the nominal one.
func (s Schema) IncludeRawMET() bool { return !s.realData }
