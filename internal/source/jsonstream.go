// Package source provides the input-collaborator stand-in: a reader that
// decodes a stream of JSON event payloads and resolves the configured
// collection references into fully populated events. Production deployments
// would replace this with an adapter to the real reconstruction framework;
// the pipeline only sees the Source interface.
package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/banshee-data/pectuple/internal/builder"
	"github.com/banshee-data/pectuple/internal/config"
	"github.com/banshee-data/pectuple/internal/event"
)

// rawEvent is the on-disk payload: the event descriptor, the object
// collections, and a bag of named auxiliary collections the configuration
// refers to by name.
type rawEvent struct {
	Run   uint64 `json:"run"`
	Event uint64 `json:"event"`
	Lumi  uint64 `json:"lumi"`

	Electrons []event.Electron `json:"electrons"`
	Muons     []event.Muon     `json:"muons"`
	Jets      []event.Jet      `json:"jets"`

	Collections map[string]json.RawMessage `json:"collections"`
}

// JSONStream reads consecutive JSON event payloads from an io.Reader.
type JSONStream struct {
	dec *json.Decoder

	vertexRef    string
	rhoRef       string
	pileUpRef    string
	generatorRef string
	metSources   []string

	// readGenerator gates decoding of the simulation-only collections so
	// they are never touched on real data.
	readGenerator bool
}

// NewJSONStream builds a reader over r using the configured collection
// references and schema variant.
func NewJSONStream(r io.Reader, cfg *config.Config, schema builder.Schema) *JSONStream {
	return &JSONStream{
		dec:           json.NewDecoder(r),
		vertexRef:     cfg.GetVertexCollection(),
		rhoRef:        cfg.GetRhoCollection(),
		pileUpRef:     cfg.GetPileUpCollection(),
		generatorRef:  cfg.GetGeneratorCollection(),
		metSources:    cfg.METSources,
		readGenerator: schema.IncludeGenerator(),
	}
}

// Next decodes and resolves the next event. It returns io.EOF when the
// stream is exhausted.
func (s *JSONStream) Next() (*event.Event, error) {
	var raw rawEvent
	if err := s.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}

	ev := &event.Event{
		ID:        event.ID{Run: raw.Run, Event: raw.Event, LumiSection: raw.Lumi},
		Electrons: raw.Electrons,
		Muons:     raw.Muons,
		Jets:      raw.Jets,
	}

	if err := s.resolve(raw.Collections, s.vertexRef, &ev.Vertices); err != nil {
		return nil, err
	}
	if err := s.resolve(raw.Collections, s.rhoRef, &ev.Rho); err != nil {
		return nil, err
	}

	for _, src := range s.metSources {
		payload, ok := raw.Collections[src]
		if !ok {
			continue
		}
		var met event.MET
		if err := json.Unmarshal(payload, &met); err != nil {
			return nil, fmt.Errorf("collection %q: %w", src, err)
		}
		ev.METs = append(ev.METs, met)
	}

	if s.readGenerator {
		if err := s.resolve(raw.Collections, s.generatorRef, &ev.Generator); err != nil {
			return nil, err
		}
		if err := s.resolve(raw.Collections, s.pileUpRef, &ev.PileUp); err != nil {
			return nil, err
		}
	}

	return ev, nil
}

// resolve decodes the named collection into out. An absent collection leaves
// out untouched; presence is a per-event matter, not a configuration error.
func (s *JSONStream) resolve(collections map[string]json.RawMessage, name string, out interface{}) error {
	payload, ok := collections[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("collection %q: %w", name, err)
	}
	return nil
}
