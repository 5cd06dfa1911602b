package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pectuple/internal/pec"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.MigrateUp(findMigrationsDir()))
	return store
}

func testRecordSet() *pec.RecordSet {
	set := &pec.RecordSet{}
	set.ID.RunNumber = 273158
	set.ID.EventNumber = 891
	set.ID.LumiSection = 12

	var e pec.Electron
	e.Pt, e.Eta, e.Phi = 31.5, -1.2, 0.4
	e.Charge = -1
	e.RelIso = 0.08
	e.Bits.Set(0, true)
	set.Electrons = append(set.Electrons, e)

	var m pec.Muon
	m.Pt, m.Eta, m.Phi = 24.0, 0.9, -2.1
	m.Charge = 1
	set.Muons = append(set.Muons, m)

	var j pec.Jet
	j.Pt, j.Eta, j.Phi, j.Mass = 55.0, 1.8, 2.5, 7.3
	j.SecVertexMass = pec.SecVertexMassSentinel
	j.PullAngle = 0.42
	set.Jets = append(set.Jets, j, pec.Jet{})

	var met pec.Candidate
	met.Pt, met.Phi = 38.2, -0.7
	set.METs = append(set.METs, met)

	gen := &pec.GeneratorInfo{}
	gen.Reset()
	gen.ProcessID = 2608
	gen.Weight = 1.25
	gen.AltWeights = append(gen.AltWeights, 1.0, 0.97)
	set.Generator = gen

	set.PileUp.NumPV = 17
	set.PileUp.Rho = 13.5
	return set
}

func countRows(t *testing.T, store *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, store.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestMigrateVersion(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	dir := findMigrationsDir()
	version, dirty, err := store.MigrateVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, store.MigrateUp(dir))
	version, dirty, err = store.MigrateVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// A second up is a no-op once the schema is current.
	require.NoError(t, store.MigrateUp(dir))
}

func TestRunLifecycle(t *testing.T) {
	store := newTestStore(t)

	configJSON := []byte(`{"runOnData": false}`)
	runID, err := store.BeginRun(configJSON, false)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, string(configJSON), run.ConfigJSON)
	assert.False(t, run.RealData)
	assert.Nil(t, run.FinishedAt)
	assert.Equal(t, int64(0), run.EventsProcessed)

	finished := time.Now()
	require.NoError(t, store.FinishRun(runID, 1250, finished))

	run, err = store.GetRun(runID)
	require.NoError(t, err)
	require.NotNil(t, run.FinishedAt)
	assert.Equal(t, int64(1250), run.EventsProcessed)
}

func TestGetRunUnknown(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun("no-such-run")
	assert.Error(t, err)
}

func TestWriteEvent(t *testing.T) {
	store := newTestStore(t)
	_, err := store.BeginRun([]byte(`{}`), false)
	require.NoError(t, err)

	require.NoError(t, store.WriteEvent(testRecordSet()))

	assert.Equal(t, 1, countRows(t, store, "events"))
	assert.Equal(t, 1, countRows(t, store, "electrons"))
	assert.Equal(t, 1, countRows(t, store, "muons"))
	assert.Equal(t, 2, countRows(t, store, "jets"))
	assert.Equal(t, 1, countRows(t, store, "mets"))
	assert.Equal(t, 1, countRows(t, store, "gen_info"))

	var (
		runNumber uint64
		numPV     int32
		rho       float64
	)
	require.NoError(t, store.DB().QueryRow(
		"SELECT run_number, num_pv, rho FROM events").Scan(&runNumber, &numPV, &rho))
	assert.Equal(t, uint64(273158), runNumber)
	assert.Equal(t, int32(17), numPV)
	assert.InDelta(t, 13.5, rho, 1e-6)

	var bits uint32
	require.NoError(t, store.DB().QueryRow("SELECT bits FROM electrons").Scan(&bits))
	assert.Equal(t, uint32(1), bits)

	var svMass float64
	require.NoError(t, store.DB().QueryRow(
		"SELECT sec_vertex_mass FROM jets WHERE idx = 0").Scan(&svMass))
	assert.InDelta(t, pec.SecVertexMassSentinel, svMass, 1e-6)

	var alt string
	require.NoError(t, store.DB().QueryRow("SELECT alt_weights FROM gen_info").Scan(&alt))
	assert.JSONEq(t, `[1.0, 0.97]`, alt)
}

func TestWriteEventWithoutGenerator(t *testing.T) {
	store := newTestStore(t)
	_, err := store.BeginRun([]byte(`{}`), true)
	require.NoError(t, err)

	set := testRecordSet()
	set.Generator = nil
	require.NoError(t, store.WriteEvent(set))

	assert.Equal(t, 1, countRows(t, store, "events"))
	assert.Equal(t, 0, countRows(t, store, "gen_info"))
}

func TestWriteEventCallerReusesBuffers(t *testing.T) {
	store := newTestStore(t)
	_, err := store.BeginRun([]byte(`{}`), false)
	require.NoError(t, err)

	set := testRecordSet()
	require.NoError(t, store.WriteEvent(set))

	// Mutating the set after the write must not affect stored rows.
	set.ID.EventNumber = 999
	set.Electrons = set.Electrons[:0]
	require.NoError(t, store.WriteEvent(set))

	assert.Equal(t, 2, countRows(t, store, "events"))
	assert.Equal(t, 1, countRows(t, store, "electrons"))

	var first uint64
	require.NoError(t, store.DB().QueryRow(
		"SELECT event_number FROM events ORDER BY event_key LIMIT 1").Scan(&first))
	assert.Equal(t, uint64(891), first)
}

func TestEncodeAltWeights(t *testing.T) {
	out, err := encodeAltWeights(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = encodeAltWeights([]float32{0.5, 2})
	require.NoError(t, err)
	assert.JSONEq(t, `[0.5, 2]`, out)
}
