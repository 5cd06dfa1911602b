// Package sqlite implements the columnar persistence collaborator: it writes
// each assembled event record set into a SQLite database, one table per
// output column family, and keeps per-job processing-run bookkeeping.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pectuple/internal/pec"
)

// Store is a SQLite-backed event sink. It is not safe for concurrent use;
// the pipeline is single-threaded by design.
type Store struct {
	db    *sql.DB
	runID string
}

// Open opens (or creates) the database at path. Run Migrate before writing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for queries and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// WriteEvent persists one assembled record set inside a single transaction.
// The record set is fully copied into the database before returning, so the
// caller is free to reuse its buffers afterwards.
func (s *Store) WriteEvent(set *pec.RecordSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning event transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO events (run_id, run_number, event_number, lumi_section,
			num_pv, rho, true_num_pu, in_time_pu)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, set.ID.RunNumber, set.ID.EventNumber, set.ID.LumiSection,
		set.PileUp.NumPV, set.PileUp.Rho, set.PileUp.TrueNumPU, set.PileUp.InTimePU)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	eventKey, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("resolving event key: %w", err)
	}

	for i := range set.Electrons {
		e := &set.Electrons[i]
		_, err := tx.Exec(`
			INSERT INTO electrons (event_key, idx, pt, eta, phi, charge, db,
				rel_iso, mva_id, cut_based_id, id_bits, bits)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eventKey, i, e.Pt, e.Eta, e.Phi, e.Charge, e.DB,
			e.RelIso, e.MvaID, e.CutBasedID, uint32(e.IDBits), uint32(e.Bits))
		if err != nil {
			return fmt.Errorf("inserting electron %d: %w", i, err)
		}
	}

	for i := range set.Muons {
		m := &set.Muons[i]
		_, err := tx.Exec(`
			INSERT INTO muons (event_key, idx, pt, eta, phi, charge, db,
				rel_iso, bits)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eventKey, i, m.Pt, m.Eta, m.Phi, m.Charge, m.DB,
			m.RelIso, uint32(m.Bits))
		if err != nil {
			return fmt.Errorf("inserting muon %d: %w", i, err)
		}
	}

	for i := range set.Jets {
		j := &set.Jets[i]
		_, err := tx.Exec(`
			INSERT INTO jets (event_key, idx, pt, eta, phi, mass, area, charge,
				btag_csv, btag_tchp, sec_vertex_mass, pull_angle,
				flavour_algo, flavour_phys, bits)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eventKey, i, j.Pt, j.Eta, j.Phi, j.Mass, j.Area, j.Charge,
			j.BTagCSV, j.BTagTCHP, j.SecVertexMass, j.PullAngle,
			j.FlavourAlgo, j.FlavourPhys, uint32(j.Bits))
		if err != nil {
			return fmt.Errorf("inserting jet %d: %w", i, err)
		}
	}

	for i := range set.METs {
		m := &set.METs[i]
		_, err := tx.Exec(`
			INSERT INTO mets (event_key, idx, pt, phi)
			VALUES (?, ?, ?, ?)`,
			eventKey, i, m.Pt, m.Phi)
		if err != nil {
			return fmt.Errorf("inserting met %d: %w", i, err)
		}
	}

	if gen := set.Generator; gen != nil {
		alt, err := encodeAltWeights(gen.AltWeights)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO gen_info (event_key, process_id, weight, alt_weights,
				pdf_x1, pdf_x2, pdf_id1, pdf_id2, pdf_q_scale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eventKey, gen.ProcessID, gen.Weight, alt,
			gen.PdfX1, gen.PdfX2, gen.PdfID1, gen.PdfID2, gen.PdfQScale)
		if err != nil {
			return fmt.Errorf("inserting generator info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event: %w", err)
	}
	return nil
}
