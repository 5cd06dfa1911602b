// Package pipeline is the composition root of the synthesis engine: it wires
// the per-collection builders behind the event assembler and drives the
// single-threaded per-event loop. It imports from the builder and record
// packages; none of those import pipeline.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/pectuple/internal/builder"
	"github.com/banshee-data/pectuple/internal/config"
	"github.com/banshee-data/pectuple/internal/event"
	"github.com/banshee-data/pectuple/internal/monitoring"
	"github.com/banshee-data/pectuple/internal/pec"
)

// Source supplies fully resolved input events. Next returns io.EOF when the
// input is exhausted.
type Source interface {
	Next() (*event.Event, error)
}

// Sink is the external persistence collaborator. It must consume the record
// set before the next Process call: the assembler reuses its buffers.
type Sink interface {
	WriteEvent(*pec.RecordSet) error
}

// ErrNoVertices reports a malformed input event with zero reconstructed
// primary vertices. It is a hard per-event failure; no partial record set is
// emitted for such an event.
var ErrNoVertices = errors.New("event contains zero primary vertices")

// Assembler drives the per-event record synthesis. It owns the per-type
// builders and the output record-set scratch; all state is fixed at
// construction except the reused buffers, which are rewritten each event.
type Assembler struct {
	schema    builder.Schema
	electrons *builder.ElectronBuilder
	muons     *builder.MuonBuilder
	jets      *builder.JetBuilder
	mets      *builder.METBuilder

	genScratch pec.GeneratorInfo
	set        pec.RecordSet

	progressInterval int64
}

// NewAssembler builds the full pipeline from a validated configuration.
// Selection-expression compilation happens here; a malformed expression fails
// construction before any event is processed.
func NewAssembler(cfg *config.Config) (*Assembler, error) {
	schema := builder.NewSchema(cfg.GetRunOnData())

	eb, err := builder.NewElectronBuilder(schema, cfg.GetElectronMomentum(),
		cfg.ElectronIDMaps, cfg.EleSelection)
	if err != nil {
		return nil, err
	}
	mb, err := builder.NewMuonBuilder(schema, cfg.MuSelection)
	if err != nil {
		return nil, err
	}
	jb, err := builder.NewJetBuilder(schema, cfg.GetJetMinPt(), cfg.GetJetMinRawPt(),
		cfg.GetUseRawJetMomentum(), cfg.JetSelection)
	if err != nil {
		return nil, err
	}

	return &Assembler{
		schema:           schema,
		electrons:        eb,
		muons:            mb,
		jets:             jb,
		mets:             builder.NewMETBuilder(schema),
		progressInterval: cfg.GetProgressInterval(),
	}, nil
}

// Schema returns the job-scope schema controller.
func (a *Assembler) Schema() builder.Schema { return a.schema }

// Process assembles the complete record set for one event. The returned set
// points into the assembler's reused buffers and is valid until the next
// call. An event with zero primary vertices fails with ErrNoVertices and
// produces no output.
func (a *Assembler) Process(ev *event.Event) (*pec.RecordSet, error) {
	set := &a.set

	set.ID.Reset()
	set.ID.RunNumber = ev.ID.Run
	set.ID.EventNumber = ev.ID.Event
	set.ID.LumiSection = ev.ID.LumiSection

	if len(ev.Vertices) == 0 {
		return nil, fmt.Errorf("run %d event %d: %w", ev.ID.Run, ev.ID.Event, ErrNoVertices)
	}

	set.Electrons = a.electrons.Build(ev.Electrons)
	set.Muons = a.muons.Build(ev.Muons)
	set.Jets = a.jets.Build(ev.Jets)
	set.METs = a.mets.Build(ev.METs)

	if a.schema.IncludeGenerator() {
		a.fillGenerator(ev.Generator)
		set.Generator = &a.genScratch
	} else {
		set.Generator = nil
	}

	a.fillPileUp(ev)

	return set, nil
}

// fillGenerator populates the generator record. An absent upstream record
// leaves every field neutral; the column still exists in the simulation
// schema.
func (a *Assembler) fillGenerator(gen *event.GeneratorInfo) {
	rec := &a.genScratch
	rec.Reset()
	if gen == nil {
		return
	}

	rec.ProcessID = gen.ProcessID
	rec.Weight = float32(gen.Weight)
	for _, w := range gen.AltWeights {
		rec.AltWeights = append(rec.AltWeights, float32(w))
	}

	if pdf := gen.PDF; pdf != nil {
		rec.PdfX1 = float32(pdf.X1)
		rec.PdfX2 = float32(pdf.X2)
		rec.PdfID1 = pdf.ID1
		rec.PdfID2 = pdf.ID2
		rec.PdfQScale = float32(pdf.QScale)
	}
}

// fillPileUp populates the pile-up record: vertex count and density always,
// true and in-time pile-up on simulation when the summary is present.
func (a *Assembler) fillPileUp(ev *event.Event) {
	rec := &a.set.PileUp
	rec.Reset()

	rec.NumPV = int32(len(ev.Vertices))
	rec.Rho = float32(ev.Rho)

	if a.schema.RealData() || ev.PileUp == nil {
		return
	}

	rec.TrueNumPU = float32(ev.PileUp.TrueNumInteractions)
	for _, bc := range ev.PileUp.ByBunchCrossing {
		if bc.BX == 0 {
			rec.InTimePU = int32(bc.NumInteractions)
			break
		}
	}
}

// Stats summarises one pipeline run.
type Stats struct {
	EventsProcessed int64
	Started         time.Time
	Finished        time.Time
}

// Run drains the source, processing and persisting one event at a time.
// Any error — malformed event, source failure, sink failure — stops the run;
// there are no retries.
func (a *Assembler) Run(src Source, sink Sink) (Stats, error) {
	stats := Stats{Started: time.Now()}
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Finished = time.Now()
			return stats, fmt.Errorf("reading event: %w", err)
		}

		set, err := a.Process(ev)
		if err != nil {
			stats.Finished = time.Now()
			return stats, err
		}

		if err := sink.WriteEvent(set); err != nil {
			stats.Finished = time.Now()
			return stats, fmt.Errorf("writing event run %d event %d: %w",
				ev.ID.Run, ev.ID.Event, err)
		}

		stats.EventsProcessed++
		monitoring.Progress(stats.EventsProcessed, a.progressInterval,
			"processed %d events", stats.EventsProcessed)
	}
	stats.Finished = time.Now()
	return stats, nil
}
