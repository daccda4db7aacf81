package producers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/miradorstack/mirador-fixtures/internal/assets"
	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// MetricsOptions shapes a MetricsProducer run.
type MetricsOptions struct {
	Count    int
	Lookback time.Duration
	Step     time.Duration
	Shape    MetricShape
}

// DefaultMetricsOptions mirrors the stock metrics stream.
func DefaultMetricsOptions() MetricsOptions {
	return MetricsOptions{
		Count:    2000,
		Lookback: time.Hour,
		Step:     1800 * time.Millisecond,
		Shape:    DefaultShape(),
	}
}

// MetricsProducer emits a JSONL stream of per-tick service metrics with
// planted incidents.
type MetricsProducer struct {
	file string
	opts MetricsOptions
}

// NewMetricsProducer creates a metrics producer writing to file.
func NewMetricsProducer(file string, opts MetricsOptions) *MetricsProducer {
	return &MetricsProducer{file: file, opts: opts}
}

// Name implements Producer.
func (p *MetricsProducer) Name() string { return NameMetrics }

// Records generates Count records spaced exactly Step apart from start.
func (p *MetricsProducer) Records(rng *rand.Rand, start time.Time) []models.MetricRecord {
	shape := p.opts.Shape
	records := make([]models.MetricRecord, 0, p.opts.Count)
	for i := 0; i < p.opts.Count; i++ {
		cpu := shape.CPU(i, rng.Float64(), rng.Float64())
		mem := shape.Memory(i, rng.Float64())
		errRate := shape.ErrorRateAt(i, rng.Float64())

		records = append(records, models.MetricRecord{
			Timestamp: models.Timestamp(start.Add(time.Duration(i) * p.opts.Step)),
			Service:   pick(rng, assets.Services),
			Metrics: models.MetricValues{
				CPUPercent:        cpu.Value,
				MemoryPercent:     mem.Value,
				RequestCount:      randInt(rng, 100, 500),
				ErrorRate:         errRate.Value,
				LatencyP50Ms:      randInt(rng, 20, 80),
				LatencyP99Ms:      randInt(rng, 150, 500),
				ActiveConnections: randInt(rng, 50, 200),
			},
		})
	}
	return records
}

// Produce implements Producer. Lines are joined without a trailing newline.
func (p *MetricsProducer) Produce(rng *rand.Rand, now time.Time) (models.Artifact, error) {
	records := p.Records(rng, now.Add(-p.opts.Lookback))

	var buf bytes.Buffer
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return models.Artifact{}, fmt.Errorf("encode metric %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}

	return models.Artifact{
		Name:    NameMetrics,
		File:    p.file,
		Data:    buf.Bytes(),
		Records: len(records),
		Lines:   len(records),
	}, nil
}
