package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "FIXTURES_"

// Request id styles accepted by LogsConfig.RequestIDStyle.
const (
	RequestIDShort = "short"
	RequestIDUUID  = "uuid"
)

// Config captures every knob of a fixture run. Keys absent from the file and
// unset variables keep their defaults.
type Config struct {
	// Seed drives every random source; nil picks a time-based seed.
	Seed      *int64          `yaml:"seed" env:"SEED"`
	Parallel  bool            `yaml:"parallel" env:"PARALLEL"`
	Output    OutputConfig    `yaml:"output" envPrefix:"OUTPUT_"`
	Logs      LogsConfig      `yaml:"logs" envPrefix:"LOGS_"`
	Metrics   MetricsConfig   `yaml:"metrics" envPrefix:"METRICS_"`
	Logging   LoggingConfig   `yaml:"logging" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// OutputConfig controls where fixtures land.
type OutputConfig struct {
	Dir          string `yaml:"dir" env:"DIR"`
	LogFile      string `yaml:"logFile" env:"LOG_FILE"`
	ManifestFile string `yaml:"manifestFile" env:"MANIFEST_FILE"`
	PlanFile     string `yaml:"planFile" env:"PLAN_FILE"`
	MetricsFile  string `yaml:"metricsFile" env:"METRICS_FILE"`
	// Bundle additionally writes <Dir>.tar.zst next to the directory.
	Bundle bool `yaml:"bundle" env:"BUNDLE"`
}

// LogsConfig shapes the synthetic application log.
type LogsConfig struct {
	Count               int           `yaml:"count" env:"COUNT"`
	Lookback            time.Duration `yaml:"lookback" env:"LOOKBACK"`
	Step                time.Duration `yaml:"step" env:"STEP"`
	Jitter              time.Duration `yaml:"jitter" env:"JITTER"`
	TraceProbability    float64       `yaml:"traceProbability" env:"TRACE_PROBABILITY"`
	CausedByProbability float64       `yaml:"causedByProbability" env:"CAUSED_BY_PROBABILITY"`
	RequestIDStyle      string        `yaml:"requestIDStyle" env:"REQUEST_ID_STYLE"`
	Weights             LevelWeights  `yaml:"weights" envPrefix:"WEIGHT_"`
}

// LevelWeights sets the relative frequency of each level.
type LevelWeights struct {
	Info  int `yaml:"info" env:"INFO"`
	Warn  int `yaml:"warn" env:"WARN"`
	Error int `yaml:"error" env:"ERROR"`
	Debug int `yaml:"debug" env:"DEBUG"`
}

// MetricsConfig shapes the JSONL metrics stream and its anomaly windows.
type MetricsConfig struct {
	Count         int           `yaml:"count" env:"COUNT"`
	Lookback      time.Duration `yaml:"lookback" env:"LOOKBACK"`
	Step          time.Duration `yaml:"step" env:"STEP"`
	CPUSpike      models.Window `yaml:"cpuSpike" envPrefix:"CPU_SPIKE_"`
	MemoryLeak    models.Window `yaml:"memoryLeak" envPrefix:"MEMORY_LEAK_"`
	ErrorSpike    models.Window `yaml:"errorSpike" envPrefix:"ERROR_SPIKE_"`
	CPUSpikeFloor float64       `yaml:"cpuSpikeFloor" env:"CPU_SPIKE_FLOOR"`
	MemoryCeiling float64       `yaml:"memoryCeiling" env:"MEMORY_CEILING"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	JSON  bool   `yaml:"json" env:"JSON"`
}

// TelemetryConfig controls the optional Prometheus textfile export.
type TelemetryConfig struct {
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
}

// Load builds Config from defaults, an optional YAML file and environment
// overrides. A .env file in the working directory is honoured. The result is
// not validated; call Validate once flags have been applied.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Logs.RequestIDStyle = strings.ToLower(strings.TrimSpace(cfg.Logs.RequestIDStyle))

	return &cfg, nil
}

// Default returns the stock fixture settings.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir:          "context",
			LogFile:      "sample_app.log",
			ManifestFile: "k8s-manifests.yaml",
			PlanFile:     "terraform-plan.json",
			MetricsFile:  "metrics.jsonl",
		},
		Logs: LogsConfig{
			Count:               8000,
			Lookback:            3 * time.Hour,
			Step:                1200 * time.Millisecond,
			Jitter:              500 * time.Millisecond,
			TraceProbability:    0.4,
			CausedByProbability: 0.5,
			RequestIDStyle:      RequestIDShort,
			Weights:             LevelWeights{Info: 4, Warn: 1, Error: 1, Debug: 1},
		},
		Metrics: MetricsConfig{
			Count:         2000,
			Lookback:      time.Hour,
			Step:          1800 * time.Millisecond,
			CPUSpike:      models.Window{Start: 501, End: 600},
			MemoryLeak:    models.Window{Start: 801, End: 900},
			ErrorSpike:    models.Window{Start: 1201, End: 1300},
			CPUSpikeFloor: 85,
			MemoryCeiling: 95,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
