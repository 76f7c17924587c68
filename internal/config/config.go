// Package config holds the run settings of the remapper. Settings come only
// from command-line flags; there is no config file and no environment lookup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/marcus/chaoskb/internal/output"
	"github.com/marcus/chaoskb/internal/remap"
	"github.com/marcus/chaoskb/internal/scheduler"
)

// Defaults
const (
	DefaultWarnWithin = 10 * time.Second
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Validation errors
var (
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")
	ErrInvalidInterval    = errors.New("interval must be at least one tick")
	ErrInvalidTick        = errors.New("tick must be positive")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("unknown log format")
)

// Config is the full set of run settings.
type Config struct {
	Interval    time.Duration // countdown between timer shuffles
	Tick        time.Duration // countdown granularity
	Probability float64       // special-key inclusion probability
	Seed        int64         // 0 seeds from the clock
	SampleSize  int           // entries shown per mapping sample
	WarnWithin  time.Duration // countdown notice window
	TUI         bool          // full-screen mode instead of the line prompt
	AssumeYes   bool          // skip the consent prompt
	Bindings    []string      // TUI key overrides, [context:]key=command
	LogLevel    string
	LogFormat   string
}

// Default returns the settings used when no flags are given.
func Default() *Config {
	return &Config{
		Interval:    scheduler.DefaultInterval,
		Tick:        scheduler.DefaultTick,
		Probability: remap.DefaultInclusionProbability,
		SampleSize:  output.DefaultSampleSize,
		WarnWithin:  DefaultWarnWithin,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// BindFlags registers the generator flags on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Float64VarP(&c.Probability, "probability", "p", c.Probability, "Chance each special key joins a shuffle (0-1)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 seeds from the clock)")
	fs.IntVarP(&c.SampleSize, "sample", "n", c.SampleSize, "Mapping entries shown per sample")
}

// BindRunFlags registers the generator flags plus the scheduler and prompt
// flags on fs.
func (c *Config) BindRunFlags(fs *pflag.FlagSet) {
	c.BindFlags(fs)
	fs.DurationVarP(&c.Interval, "interval", "i", c.Interval, "Time between automatic shuffles")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "Countdown granularity")
	fs.DurationVar(&c.WarnWithin, "warn-within", c.WarnWithin, "Show the countdown when the next shuffle is this close")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "Run the full-screen interface")
	fs.BoolVarP(&c.AssumeYes, "yes", "y", c.AssumeYes, "Skip the consent prompt")
	fs.StringArrayVar(&c.Bindings, "bind", c.Bindings, "TUI key override as [context:]key=command (repeatable)")
}

// BindLogFlags registers the logging flags on fs.
func (c *Config) BindLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json")
}

// Validate checks the settings and returns the first problem found.
func (c *Config) Validate() error {
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidProbability, c.Probability)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTick, c.Tick)
	}
	if c.Interval < c.Tick {
		return fmt.Errorf("%w: interval %v, tick %v", ErrInvalidInterval, c.Interval, c.Tick)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}
