package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fpgacores/testvec/internal/config"
	"github.com/fpgacores/testvec/internal/index"
	"github.com/fpgacores/testvec/internal/logging"
	"github.com/fpgacores/testvec/internal/metrics"
	"github.com/fpgacores/testvec/internal/plan"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fatalf("config: %v", err)
	}

	var (
		planPath, dumpPath string
		force, progress    bool
	)
	flag.StringVar(&planPath, "plan", "", "JSON plan (default: the built-in testbench suite)")
	flag.StringVar(&dumpPath, "dump-plan", "", "write the plan as JSON to this path and exit")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed for the built-in plan; job i uses seed+i")
	flag.StringVar(&cfg.Source, "source", cfg.Source, "word source for the built-in plan: math|chacha20")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent jobs")
	flag.StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "fixture index database (default <out>/fixtures.db)")
	flag.StringVar(&cfg.MetricsFile, "metrics", cfg.MetricsFile, "write prometheus textfile metrics here")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.BoolVar(&force, "force", false, "regenerate fixtures that already exist")
	flag.BoolVar(&progress, "progress", true, "show a progress bar on stderr")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	var p *plan.Plan
	if planPath != "" {
		if p, err = plan.Load(planPath); err != nil {
			fatalf("%v", err)
		}
	} else {
		p = plan.Default(cfg.Seed, cfg.Source)
	}
	if dumpPath != "" {
		if err := plan.Save(dumpPath, p); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("wrote %s (%d jobs)\n", dumpPath, len(p.Jobs))
		return
	}

	log, err := logging.New(&logging.Config{Level: cfg.LogLevel, Output: "stderr"})
	if err != nil {
		fatalf("%v", err)
	}
	defer log.Close()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fatalf("mkdir %s: %v", cfg.OutDir, err)
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = filepath.Join(cfg.OutDir, "fixtures.db")
	}
	idx, err := index.Open(cfg.IndexPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer idx.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		fatalf("%v", err)
	}

	r := &plan.Runner{
		OutDir:  cfg.OutDir,
		Workers: cfg.Workers,
		Force:   force,
		Index:   idx,
		Metrics: m,
		Log:     log,
	}
	if progress {
		r.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	results, runErr := r.Run(ctx, p)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			log.Warn("metrics: %v", err)
		}
	}
	if runErr != nil {
		log.Close()
		idx.Close()
		fatalf("%v", runErr)
	}
	var skipped int
	for _, res := range results {
		if res.Skipped {
			skipped++
		}
	}
	log.Info("suite done: %d fixtures in %s (%d up to date)", len(results), cfg.OutDir, skipped)
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
