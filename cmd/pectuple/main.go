// Command pectuple flattens reconstructed collision events into a compact
// columnar SQLite database. It reads a stream of JSON event payloads, runs
// the record synthesis pipeline once per event, and records the processing
// run alongside the output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/pectuple/internal/config"
	"github.com/banshee-data/pectuple/internal/monitoring"
	"github.com/banshee-data/pectuple/internal/pipeline"
	"github.com/banshee-data/pectuple/internal/source"
	"github.com/banshee-data/pectuple/internal/storage/sqlite"
	"github.com/banshee-data/pectuple/internal/version"
)

func main() {
	var (
		configPath    = flag.String("config", "config.json", "path to the job configuration file")
		inputPath     = flag.String("input", "", "path to the JSON event stream (default: stdin)")
		dbPath        = flag.String("db", "events.db", "path to the output SQLite database")
		migrationsDir = flag.String("migrations", "migrations", "path to the schema migrations directory")
		showVersion   = flag.Bool("version", false, "print build identification and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("pectuple " + version.String())
		return
	}

	if err := run(*configPath, *inputPath, *dbPath, *migrationsDir); err != nil {
		fmt.Fprintf(os.Stderr, "pectuple: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, inputPath, dbPath, migrationsDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	asm, err := pipeline.NewAssembler(cfg)
	if err != nil {
		return err
	}

	input := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		input = f
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.MigrateUp(migrationsDir); err != nil {
		return err
	}

	cfgSnapshot, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialising config snapshot: %w", err)
	}
	runID, err := store.BeginRun(cfgSnapshot, asm.Schema().RealData())
	if err != nil {
		return err
	}
	monitoring.Logf("pectuple %s: processing run %s (real data: %v)",
		version.String(), runID, asm.Schema().RealData())

	src := source.NewJSONStream(input, cfg, asm.Schema())
	stats, runErr := asm.Run(src, store)

	if err := store.FinishRun(runID, stats.EventsProcessed, stats.Finished); err != nil {
		if runErr == nil {
			runErr = err
		} else {
			monitoring.Logf("finishing run %s: %v", runID, err)
		}
	}

	monitoring.Logf("run %s: %d events in %s", runID, stats.EventsProcessed,
		stats.Finished.Sub(stats.Started).Round(1e6))

	return runErr
}
