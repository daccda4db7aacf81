package producers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miradorstack/mirador-fixtures/internal/assets"
	"github.com/miradorstack/mirador-fixtures/internal/models"
	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

// WeightedLevel pairs a level with its relative frequency.
type WeightedLevel struct {
	Level  models.Level
	Weight int
}

// LogOptions shapes a LogProducer run.
type LogOptions struct {
	Count               int
	Lookback            time.Duration
	Step                time.Duration
	Jitter              time.Duration
	TraceProbability    float64
	CausedByProbability float64
	// UUIDRequestIDs switches request ids from req-NNNNN to random UUIDs.
	UUIDRequestIDs bool
	Weights        []WeightedLevel
}

// DefaultLogOptions mirrors the stock fixture log.
func DefaultLogOptions() LogOptions {
	return LogOptions{
		Count:               8000,
		Lookback:            3 * time.Hour,
		Step:                1200 * time.Millisecond,
		Jitter:              500 * time.Millisecond,
		TraceProbability:    0.4,
		CausedByProbability: 0.5,
		Weights: []WeightedLevel{
			{models.LevelInfo, 4},
			{models.LevelWarn, 1},
			{models.LevelError, 1},
			{models.LevelDebug, 1},
		},
	}
}

// LogProducer synthesizes an application log with occasional Java-style
// stack traces after ERROR records.
type LogProducer struct {
	file  string
	opts  LogOptions
	total int
}

// NewLogProducer creates a log producer writing to file.
func NewLogProducer(file string, opts LogOptions) *LogProducer {
	total := 0
	for _, w := range opts.Weights {
		total += w.Weight
	}
	return &LogProducer{file: file, opts: opts, total: total}
}

// Name implements Producer.
func (p *LogProducer) Name() string { return NameLogs }

// Records generates Count records starting at start. Timestamps advance by
// Step plus up to Jitter, so they never decrease while Jitter < Step.
func (p *LogProducer) Records(rng *rand.Rand, start time.Time) ([]models.LogRecord, error) {
	if p.total <= 0 {
		return nil, fmt.Errorf("log level weights sum to zero")
	}

	records := make([]models.LogRecord, 0, p.opts.Count)
	for i := 0; i < p.opts.Count; i++ {
		offset := time.Duration(i) * p.opts.Step
		if p.opts.Jitter > 0 {
			offset += time.Duration(rng.Float64() * float64(p.opts.Jitter))
		}

		level := p.level(rng)
		service := pick(rng, assets.Services)
		rec := models.LogRecord{
			Timestamp: start.Add(offset),
			Level:     level,
			Service:   service,
			Message:   pick(rng, assets.Messages[level]),
		}

		id, err := p.requestID(rng)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec.RequestID = id

		if level == models.LevelError && rng.Float64() < p.opts.TraceProbability {
			rec.StackTrace = stackTrace(rng, service, p.opts.CausedByProbability)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Produce implements Producer.
func (p *LogProducer) Produce(rng *rand.Rand, now time.Time) (models.Artifact, error) {
	records, err := p.Records(rng, now.Add(-p.opts.Lookback))
	if err != nil {
		return models.Artifact{}, err
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, FormatLogLine(rec))
		lines = append(lines, rec.StackTrace...)
	}

	return models.Artifact{
		Name:    NameLogs,
		File:    p.file,
		Data:    []byte(strings.Join(lines, "\n")),
		Records: len(records),
		Lines:   len(lines),
	}, nil
}

// FormatLogLine renders the first line of a record.
func FormatLogLine(rec models.LogRecord) string {
	return fmt.Sprintf("%s [%s] [%s] [%s] %s",
		utils.FormatISO(rec.Timestamp), rec.Level, rec.Service, rec.RequestID, rec.Message)
}

func (p *LogProducer) level(rng *rand.Rand) models.Level {
	n := rng.Intn(p.total)
	for _, w := range p.opts.Weights {
		if n < w.Weight {
			return w.Level
		}
		n -= w.Weight
	}
	return p.opts.Weights[len(p.opts.Weights)-1].Level
}

func (p *LogProducer) requestID(rng *rand.Rand) (string, error) {
	if p.opts.UUIDRequestIDs {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return "", fmt.Errorf("request id: %w", err)
		}
		return id.String(), nil
	}
	return fmt.Sprintf("req-%d", randInt(rng, 10000, 99999)), nil
}

func stackTrace(rng *rand.Rand, service string, causedByProbability float64) []string {
	pkg := strings.ReplaceAll(service, "-", ".")
	frames := []string{
		fmt.Sprintf("    at com.example.%s.Handler.process(Handler.java:%d)", pkg, randInt(rng, 50, 200)),
		fmt.Sprintf("    at com.example.%s.Service.execute(Service.java:%d)", pkg, randInt(rng, 100, 300)),
		fmt.Sprintf("    at com.example.common.BaseController.handle(BaseController.java:%d)", randInt(rng, 30, 80)),
	}
	if rng.Float64() < causedByProbability {
		frames = append(frames, assets.CausedByLine, assets.CausedByFrameLine)
	}
	return frames
}
