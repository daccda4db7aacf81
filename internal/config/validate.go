package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// ErrInvalid wraps every configuration problem reported by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Validate reports every problem in cfg at once.
func (c *Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if c.Output.Dir == "" {
		add("output.dir must not be empty")
	}
	files := map[string]string{
		"output.logFile":      c.Output.LogFile,
		"output.manifestFile": c.Output.ManifestFile,
		"output.planFile":     c.Output.PlanFile,
		"output.metricsFile":  c.Output.MetricsFile,
	}
	seen := make(map[string]string, len(files))
	for key, name := range files {
		switch {
		case name == "":
			add("%s must not be empty", key)
		case filepath.Base(name) != name:
			add("%s must be a bare file name, got %q", key, name)
		}
		if other, dup := seen[name]; dup && name != "" {
			add("%s and %s both write %q", other, key, name)
		}
		seen[name] = key
	}

	logs := c.Logs
	if logs.Count <= 0 {
		add("logs.count must be positive, got %d", logs.Count)
	}
	if logs.Step <= 0 {
		add("logs.step must be positive, got %s", logs.Step)
	}
	if logs.Jitter < 0 {
		add("logs.jitter must not be negative, got %s", logs.Jitter)
	}
	if logs.Step > 0 && logs.Jitter >= logs.Step {
		add("logs.jitter (%s) must be smaller than logs.step (%s) to keep timestamps ordered", logs.Jitter, logs.Step)
	}
	if logs.Lookback < 0 {
		add("logs.lookback must not be negative, got %s", logs.Lookback)
	}
	checkProbability(add, "logs.traceProbability", logs.TraceProbability)
	checkProbability(add, "logs.causedByProbability", logs.CausedByProbability)
	if logs.RequestIDStyle != RequestIDShort && logs.RequestIDStyle != RequestIDUUID {
		add("logs.requestIDStyle must be %q or %q, got %q", RequestIDShort, RequestIDUUID, logs.RequestIDStyle)
	}
	w := logs.Weights
	if w.Info < 0 || w.Warn < 0 || w.Error < 0 || w.Debug < 0 {
		add("logs.weights must not be negative")
	} else if w.Info+w.Warn+w.Error+w.Debug == 0 {
		add("logs.weights must not all be zero")
	}

	m := c.Metrics
	if m.Count <= 0 {
		add("metrics.count must be positive, got %d", m.Count)
	}
	if m.Step <= 0 {
		add("metrics.step must be positive, got %s", m.Step)
	}
	if m.Lookback < 0 {
		add("metrics.lookback must not be negative, got %s", m.Lookback)
	}
	checkWindow(add, "metrics.cpuSpike", m.CPUSpike)
	checkWindow(add, "metrics.memoryLeak", m.MemoryLeak)
	checkWindow(add, "metrics.errorSpike", m.ErrorSpike)
	if m.CPUSpikeFloor <= 0 || m.CPUSpikeFloor > 100 {
		add("metrics.cpuSpikeFloor must be in (0, 100], got %g", m.CPUSpikeFloor)
	}
	if m.MemoryCeiling <= 0 || m.MemoryCeiling > 100 {
		add("metrics.memoryCeiling must be in (0, 100], got %g", m.MemoryCeiling)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
}

func checkProbability(add func(string, ...any), key string, p float64) {
	if p < 0 || p > 1 {
		add("%s must be within [0, 1], got %g", key, p)
	}
}

func checkWindow(add func(string, ...any), key string, w models.Window) {
	if w.Start < 0 {
		add("%s.start must not be negative, got %d", key, w.Start)
	}
	if w.End < w.Start {
		add("%s.end (%d) must not precede start (%d)", key, w.End, w.Start)
	}
}
