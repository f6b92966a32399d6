package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fpgacores/testvec/vector"
)

// Environment variables read by Load.
const (
	EnvOutDir      = "TESTVEC_OUT_DIR"
	EnvSeed        = "TESTVEC_SEED"
	EnvSource      = "TESTVEC_SOURCE"
	EnvWorkers     = "TESTVEC_WORKERS"
	EnvLogLevel    = "TESTVEC_LOG_LEVEL"
	EnvIndex       = "TESTVEC_INDEX"
	EnvMetricsFile = "TESTVEC_METRICS_FILE"
)

// Config holds the defaults shared by the commands. Flags override it.
type Config struct {
	OutDir      string
	Seed        int64
	Source      string
	Workers     int
	LogLevel    string
	IndexPath   string
	MetricsFile string
}

func Default() *Config {
	return &Config{
		OutDir:   "vunit_out",
		Seed:     1,
		Source:   vector.SourceMath,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load applies envFile (if it exists) and then the TESTVEC_* environment on
// top of Default. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := Default()
	if v := os.Getenv(EnvOutDir); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvIndex); v != "" {
		cfg.IndexPath = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		cfg.MetricsFile = v
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if _, err := vector.NewSource(c.Source, c.Seed); err != nil {
		return err
	}
	return nil
}
