package builder

import (
	"github.com/banshee-data/pectuple/internal/event"
	"github.com/banshee-data/pectuple/internal/pec"
)

// METBuilder flattens MET-like candidates. Each configured source yields one
// nominal record and, on simulation, one raw record plus one record per
// systematic-variation kind present on the input. Eta and mass stay at zero:
// a MET candidate has no meaningful values for them.
type METBuilder struct {
	schema Schema

	scratch pec.Candidate
	out     []pec.Candidate
}

// NewMETBuilder returns a METBuilder for the given schema variant.
func NewMETBuilder(schema Schema) *METBuilder {
	return &METBuilder{schema: schema}
}

// Build emits records for every supplied MET source, preserving source order.
// The returned slice is owned by the builder and valid until the next Build.
func (b *METBuilder) Build(mets []event.MET) []pec.Candidate {
	b.out = b.out[:0]
	for i := range mets {
		met := &mets[i]

		b.emit(met.Pt, met.Phi)

		if b.schema.IncludeRawMET() && met.Raw != nil {
			b.emit(met.Raw.Pt, met.Raw.Phi)
		}

		for _, kind := range b.schema.METVariations() {
			shifted, ok := met.Shifts[kind.String()]
			if !ok {
				continue
			}
			b.emit(shifted.Pt, shifted.Phi)
		}
	}
	return b.out
}

func (b *METBuilder) emit(pt, phi float64) {
	rec := &b.scratch
	rec.Reset()
	rec.Pt = float32(pt)
	rec.Phi = float32(phi)
	b.out = append(b.out, *rec)
}
