// Package config loads runtime settings from NIGHTSHIFT_* environment
// variables, overridable by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"nightshift/pkg/game/night"
)

// Frontends
const (
	FrontendTUI      = "tui"
	FrontendEbiten   = "ebiten"
	FrontendHeadless = "headless"
)

// Config holds every runtime setting.
type Config struct {
	Seed            int64   `env:"NIGHTSHIFT_SEED"             envDefault:"0"`
	Night           int     `env:"NIGHTSHIFT_NIGHT"            envDefault:"1"`
	Frontend        string  `env:"NIGHTSHIFT_FRONTEND"         envDefault:"tui"`
	HourSeconds     float64 `env:"NIGHTSHIFT_HOUR_SECONDS"     envDefault:"90"`
	NightsFile      string  `env:"NIGHTSHIFT_NIGHTS_FILE"`
	LogLevel        string  `env:"NIGHTSHIFT_LOG_LEVEL"        envDefault:"info"`
	LogFile         string  `env:"NIGHTSHIFT_LOG_FILE"`
	TickRate        int     `env:"NIGHTSHIFT_TICK_RATE"        envDefault:"30"`
	Locale          string  `env:"NIGHTSHIFT_LOCALE"           envDefault:"en"`
	HeadlessSeconds float64 `env:"NIGHTSHIFT_HEADLESS_SECONDS" envDefault:"600"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds flags to cfg. Call it after Load so the environment
// supplies the flag defaults and explicit flags win.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")
	fs.IntVar(&c.Night, "night", c.Night, "night to play (1-7)")
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, "tui, ebiten or headless")
	fs.Float64Var(&c.HourSeconds, "hour", c.HourSeconds, "seconds per in-game hour (0 = default, < 0 never ends the night)")
	fs.StringVar(&c.NightsFile, "nights", c.NightsFile, "YAML night table overriding the built-in one")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write the journal to this file")
	fs.IntVar(&c.TickRate, "tick", c.TickRate, "simulation ticks per second")
	fs.StringVar(&c.Locale, "locale", c.Locale, "message catalog locale")
	fs.Float64Var(&c.HeadlessSeconds, "seconds", c.HeadlessSeconds, "simulated seconds in headless mode")
}

// Validate checks the settings that cannot be fixed up later.
func (c Config) Validate() error {
	var errs []error
	if c.Night < night.First || c.Night > night.Last {
		errs = append(errs, fmt.Errorf("night %d: %w", c.Night, night.ErrUnknownNight))
	}
	switch c.Frontend {
	case FrontendTUI, FrontendEbiten, FrontendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown frontend %q", c.Frontend))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be > 0 (got %d)", c.TickRate))
	}
	if c.Frontend == FrontendHeadless && c.HeadlessSeconds <= 0 {
		errs = append(errs, fmt.Errorf("headless seconds must be > 0 (got %v)", c.HeadlessSeconds))
	}
	return errors.Join(errs...)
}

// Tick is the fixed simulation step.
func (c Config) Tick() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Nights returns the night table: the built-in one, or the built-in one
// overridden by NightsFile.
func (c Config) Nights() (*night.Table, error) {
	if c.NightsFile == "" {
		return night.Default(), nil
	}
	f, err := os.Open(c.NightsFile)
	if err != nil {
		return nil, fmt.Errorf("open night table: %w", err)
	}
	defer f.Close()
	return night.LoadTable(f)
}
