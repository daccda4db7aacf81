package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/miradorstack/mirador-fixtures/internal/config"
	"github.com/miradorstack/mirador-fixtures/internal/metrics"
	"github.com/miradorstack/mirador-fixtures/internal/models"
	"github.com/miradorstack/mirador-fixtures/internal/output"
	"github.com/miradorstack/mirador-fixtures/internal/producers"
	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

// Options carries optional collaborators of FixtureService.
type Options struct {
	// Progress receives human-readable progress lines; nil discards them.
	Progress io.Writer
	// Clock supplies the reference time; defaults to time.Now.
	Clock func() time.Time
	// Gatherer is exported to the telemetry textfile; defaults to the
	// Prometheus default gatherer.
	Gatherer prometheus.Gatherer
}

// ArtifactResult describes one written fixture file.
type ArtifactResult struct {
	Name     string
	Path     string
	Records  int
	Lines    int
	Bytes    int
	Duration time.Duration
}

// Summary reports a completed run.
type Summary struct {
	RunID      string
	Seed       int64
	Dir        string
	Artifacts  []ArtifactResult
	BundlePath string
}

// FixtureService runs every producer and writes their artifacts.
type FixtureService struct {
	logger   *slog.Logger
	cfg      *config.Config
	clock    func() time.Time
	gatherer prometheus.Gatherer

	mu       sync.Mutex
	progress io.Writer
}

// NewFixtureService constructs the generator facade.
func NewFixtureService(logger *slog.Logger, cfg *config.Config, opts Options) *FixtureService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &FixtureService{
		logger:   logger,
		cfg:      cfg,
		clock:    opts.Clock,
		gatherer: opts.Gatherer,
		progress: opts.Progress,
	}
}

// BuildProducers maps cfg onto the four producers in output order.
func BuildProducers(cfg *config.Config) []producers.Producer {
	logOpts := producers.LogOptions{
		Count:               cfg.Logs.Count,
		Lookback:            cfg.Logs.Lookback,
		Step:                cfg.Logs.Step,
		Jitter:              cfg.Logs.Jitter,
		TraceProbability:    cfg.Logs.TraceProbability,
		CausedByProbability: cfg.Logs.CausedByProbability,
		UUIDRequestIDs:      cfg.Logs.RequestIDStyle == config.RequestIDUUID,
		Weights: []producers.WeightedLevel{
			{Level: models.LevelInfo, Weight: cfg.Logs.Weights.Info},
			{Level: models.LevelWarn, Weight: cfg.Logs.Weights.Warn},
			{Level: models.LevelError, Weight: cfg.Logs.Weights.Error},
			{Level: models.LevelDebug, Weight: cfg.Logs.Weights.Debug},
		},
	}

	shape := producers.DefaultShape()
	shape.CPUSpike = cfg.Metrics.CPUSpike
	shape.CPUSpikeFloor = cfg.Metrics.CPUSpikeFloor
	shape.MemoryLeak = cfg.Metrics.MemoryLeak
	shape.MemoryCeiling = cfg.Metrics.MemoryCeiling
	shape.ErrorSpike = cfg.Metrics.ErrorSpike

	return []producers.Producer{
		producers.NewLogProducer(cfg.Output.LogFile, logOpts),
		producers.NewManifestEmitter(cfg.Output.ManifestFile),
		producers.NewPlanEmitter(cfg.Output.PlanFile),
		producers.NewMetricsProducer(cfg.Output.MetricsFile, producers.MetricsOptions{
			Count:    cfg.Metrics.Count,
			Lookback: cfg.Metrics.Lookback,
			Step:     cfg.Metrics.Step,
			Shape:    shape,
		}),
	}
}

// Generate validates the configuration, then renders and writes every
// artifact. The first failure aborts the run.
func (s *FixtureService) Generate(ctx context.Context) (Summary, error) {
	if s.cfg == nil {
		return Summary{}, fmt.Errorf("fixture service: configuration not provided")
	}
	if err := s.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	dir := s.cfg.Output.Dir
	if err := output.EnsureDir(dir); err != nil {
		return Summary{}, utils.NewAppError("generate", "prepare output directory", err)
	}

	seed := time.Now().UnixNano()
	if s.cfg.Seed != nil {
		seed = *s.cfg.Seed
	}
	sum := Summary{RunID: uuid.NewString(), Seed: seed, Dir: dir}
	logger := s.logger.With(slog.String("run_id", sum.RunID))
	logger.Info("generating fixtures",
		slog.String("dir", dir),
		slog.Int64("seed", seed),
		slog.Bool("parallel", s.cfg.Parallel))

	now := s.clock()
	all := BuildProducers(s.cfg)
	results := make([]ArtifactResult, len(all))

	run := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.runProducer(logger, i, all[i], seed, now)
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	}

	if s.cfg.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range all {
			g.Go(func() error { return run(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			logger.Error("fixture generation failed",
				slog.String("artifact", utils.ArtifactOf(err)),
				slog.Any("error", err))
			return Summary{}, err
		}
	} else {
		for i := range all {
			if err := run(ctx, i); err != nil {
				logger.Error("fixture generation failed",
					slog.String("artifact", utils.ArtifactOf(err)),
					slog.Any("error", err))
				return Summary{}, err
			}
		}
	}
	sum.Artifacts = results

	if s.cfg.Output.Bundle {
		names := make([]string, 0, len(results))
		for _, r := range all {
			names = append(names, fileOf(s.cfg, r.Name()))
		}
		dest := output.BundlePath(dir)
		size, err := output.Bundle(dest, dir, names)
		if err != nil {
			return Summary{}, utils.NewAppError("bundle", dest, err)
		}
		sum.BundlePath = dest
		logger.Info("fixture bundle written", slog.String("path", dest), slog.Int64("bytes", size))
	}

	if path := s.cfg.Telemetry.Textfile; path != "" {
		if err := metrics.WriteTextfile(path, s.gatherer); err != nil {
			return Summary{}, utils.NewAppError("telemetry", path, err)
		}
		logger.Debug("telemetry textfile written", slog.String("path", path))
	}

	logger.Info("fixtures generated", slog.Int("artifacts", len(results)))
	return sum, nil
}

func (s *FixtureService) runProducer(logger *slog.Logger, i int, p producers.Producer, seed int64, now time.Time) (ArtifactResult, error) {
	name := p.Name()
	s.progressf("%d. Creating %s...", i+1, fileOf(s.cfg, name))

	start := time.Now()
	artifact, err := p.Produce(producers.NewRand(seed, name), now)
	if err != nil {
		metrics.ObserveArtifact(name, 0, 0, time.Since(start), metrics.OutcomeError)
		return ArtifactResult{}, utils.NewArtifactError("render", name, "producer failed", err)
	}

	path, err := output.WriteFile(s.cfg.Output.Dir, artifact.File, artifact.Data)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveArtifact(name, 0, 0, duration, metrics.OutcomeError)
		return ArtifactResult{}, utils.NewArtifactError("write", name, path, err)
	}
	metrics.ObserveArtifact(name, artifact.Records, len(artifact.Data), duration, metrics.OutcomeSuccess)

	s.progressf("   Created %s (%s)", path, describe(artifact))
	logger.Debug("artifact written",
		slog.String("artifact", name),
		slog.String("path", path),
		slog.Int("records", artifact.Records),
		slog.Int("lines", artifact.Lines),
		slog.Duration("took", duration))

	return ArtifactResult{
		Name:     name,
		Path:     path,
		Records:  artifact.Records,
		Lines:    artifact.Lines,
		Bytes:    len(artifact.Data),
		Duration: duration,
	}, nil
}

func (s *FixtureService) progressf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.progress, format+"\n", args...)
}

func fileOf(cfg *config.Config, name string) string {
	switch name {
	case producers.NameLogs:
		return cfg.Output.LogFile
	case producers.NameManifests:
		return cfg.Output.ManifestFile
	case producers.NamePlan:
		return cfg.Output.PlanFile
	case producers.NameMetrics:
		return cfg.Output.MetricsFile
	}
	return name
}

func describe(a models.Artifact) string {
	switch a.Name {
	case producers.NameLogs:
		return fmt.Sprintf("%d lines", a.Lines)
	case producers.NameManifests:
		return fmt.Sprintf("%d documents", a.Records)
	case producers.NamePlan:
		return fmt.Sprintf("%d resources", a.Records)
	default:
		return fmt.Sprintf("%d records", a.Records)
	}
}
