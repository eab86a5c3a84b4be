// Package config carries the process-wide defaults for the optbench
// harness. Everything that used to be a global (default tolerance, plot
// styling, output directories) lives here as an explicit value handed to
// the component that needs it.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	ResultsDir  string `env:"OPTBENCH_RESULTS_DIR" envDefault:"results"`
	PlotsDir    string `env:"OPTBENCH_PLOTS_DIR" envDefault:"plots"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Benchmark struct {
		// DefaultTol is the stopping tolerance used when a method does
		// not configure its own.
		DefaultTol     float64 `env:"OPTBENCH_DEFAULT_TOL" envDefault:"1e-3"`
		DefaultMaxIter int     `env:"OPTBENCH_DEFAULT_MAXITER" envDefault:"500"`
		Runs           int     `env:"OPTBENCH_RUNS" envDefault:"1"`
	}
	Plot struct {
		// IncludePlotlyCDN selects whether written HTML references the
		// plotting script from a CDN or from a local file next to it.
		IncludePlotlyCDN bool `env:"OPTBENCH_PLOT_CDN" envDefault:"true"`
		Width            int  `env:"OPTBENCH_PLOT_WIDTH" envDefault:"900"`
		Height           int  `env:"OPTBENCH_PLOT_HEIGHT" envDefault:"600"`
		ScrollZoom       bool `env:"OPTBENCH_PLOT_SCROLL_ZOOM" envDefault:"true"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development keeps logs readable on a terminal
	if cfg.Environment == "development" && cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	return cfg, nil
}
