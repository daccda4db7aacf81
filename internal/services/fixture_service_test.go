package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/miradorstack/mirador-fixtures/internal/config"
	"github.com/miradorstack/mirador-fixtures/internal/metrics"
	"github.com/miradorstack/mirador-fixtures/internal/models"
	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "context")
	seed := int64(1234)
	cfg.Seed = &seed
	return &cfg
}

func newService(cfg *config.Config, progress *bytes.Buffer) *FixtureService {
	opts := Options{Clock: func() time.Time { return fixedNow }}
	if progress != nil {
		opts.Progress = progress
	}
	return NewFixtureService(utils.NewLogger("error", false, nil), cfg, opts)
}

func TestGenerateDefaults(t *testing.T) {
	cfg := testConfig(t)
	var progress bytes.Buffer

	sum, err := newService(cfg, &progress).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, sum.Artifacts, 4)
	require.NotEmpty(t, sum.RunID)
	require.Equal(t, int64(1234), sum.Seed)

	entries, err := os.ReadDir(cfg.Output.Dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"k8s-manifests.yaml", "metrics.jsonl", "sample_app.log", "terraform-plan.json"}, names)

	metricsData, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "metrics.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(string(metricsData), "\n")
	require.Len(t, lines, 2000)
	var p fastjson.Parser
	for i, line := range lines {
		_, err := p.Parse(line)
		require.NoError(t, err, "metrics line %d", i)
	}

	logData, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "sample_app.log"))
	require.NoError(t, err)
	logLines := strings.Split(string(logData), "\n")
	assert.Greater(t, len(logLines), 8000, "stack traces add lines beyond the 8000 records")
	base := 0
	for _, line := range logLines {
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "Caused by:") {
			base++
		}
	}
	assert.Equal(t, 8000, base)

	planData, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "terraform-plan.json"))
	require.NoError(t, err)
	var plan models.PlanDocument
	require.NoError(t, json.Unmarshal(planData, &plan))
	assert.Len(t, plan.Resources(), 5)
	assert.Len(t, plan.ResourceChanges, 5)

	out := progress.String()
	assert.Contains(t, out, "1. Creating sample_app.log...")
	assert.Contains(t, out, "4. Creating metrics.jsonl...")
	assert.Contains(t, out, "(2000 records)")
	assert.Contains(t, out, "(5 resources)")
}

func TestGenerateIdempotentDirectory(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Output.Dir, 0o755))
	_, err := newService(cfg, nil).Generate(context.Background())
	require.NoError(t, err)
	_, err = newService(cfg, nil).Generate(context.Background())
	require.NoError(t, err)
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	seq := testConfig(t)
	par := testConfig(t)
	par.Parallel = true

	_, err := newService(seq, nil).Generate(context.Background())
	require.NoError(t, err)
	_, err = newService(par, nil).Generate(context.Background())
	require.NoError(t, err)

	for _, name := range []string{seq.Output.LogFile, seq.Output.ManifestFile, seq.Output.PlanFile, seq.Output.MetricsFile} {
		a, err := os.ReadFile(filepath.Join(seq.Output.Dir, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(par.Output.Dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a, b), "%s differs between sequential and parallel runs", name)
	}
}

func TestGenerateRejectsInvalidConfigBeforeWriting(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logs.Count = -1

	_, err := newService(cfg, nil).Generate(context.Background())
	require.ErrorIs(t, err, config.ErrInvalid)

	_, statErr := os.Stat(cfg.Output.Dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "output dir must not be created")
}

func TestGenerateFailsWhenDirIsAFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Output.Dir, []byte("occupied"), 0o644))

	_, err := newService(cfg, nil).Generate(context.Background())
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "generate", appErr.Op)
}

func TestGenerateWriteFailureNamesArtifact(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logs.Count = 10
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Output.Dir, cfg.Output.LogFile), 0o755))

	_, err := newService(cfg, nil).Generate(context.Background())
	require.ErrorIs(t, err, utils.ErrArtifact)
	assert.Equal(t, "logs", utils.ArtifactOf(err))
	assert.Contains(t, err.Error(), "write logs: ")
}

func TestGenerateSeedZeroIsReproducible(t *testing.T) {
	first := testConfig(t)
	second := testConfig(t)
	for _, cfg := range []*config.Config{first, second} {
		zero := int64(0)
		cfg.Seed = &zero
		cfg.Logs.Count = 200
		cfg.Metrics.Count = 200
	}

	sum, err := newService(first, nil).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum.Seed)
	_, err = newService(second, nil).Generate(context.Background())
	require.NoError(t, err)

	for _, name := range []string{first.Output.LogFile, first.Output.MetricsFile} {
		a, err := os.ReadFile(filepath.Join(first.Output.Dir, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second.Output.Dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a, b), "%s differs between runs seeded with 0", name)
	}
}

func TestGenerateCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(cfg, nil).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateBundleAndTelemetry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logs.Count = 100
	cfg.Metrics.Count = 100
	cfg.Output.Bundle = true
	cfg.Telemetry.Textfile = filepath.Join(t.TempDir(), "fixtures.prom")

	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	svc := NewFixtureService(nil, cfg, Options{Clock: func() time.Time { return fixedNow }, Gatherer: reg})
	sum, err := svc.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, cfg.Output.Dir+".tar.zst", sum.BundlePath)
	info, err := os.Stat(sum.BundlePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	entries, err := os.ReadDir(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "bundle is written beside the directory, not inside it")

	prom, err := os.ReadFile(cfg.Telemetry.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `mirador_fixtures_artifacts_total{artifact="plan",outcome="success"}`)
}

func TestGenerateUUIDRequestIDs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logs.Count = 20
	cfg.Logs.RequestIDStyle = config.RequestIDUUID

	_, err := newService(cfg, nil).Generate(context.Background())
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(cfg.Output.Dir, cfg.Output.LogFile))
	require.NoError(t, err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	require.True(t, sc.Scan())
	fields := strings.Fields(sc.Text())
	require.GreaterOrEqual(t, len(fields), 4)
	assert.Len(t, strings.Trim(fields[3], "[]"), 36)
}

func TestWriteSummary(t *testing.T) {
	sum := Summary{
		Seed: 7,
		Artifacts: []ArtifactResult{
			{Name: "logs", Path: "context/sample_app.log"},
			{Name: "manifests", Path: "context/k8s-manifests.yaml"},
			{Name: "plan", Path: "context/terraform-plan.json"},
			{Name: "metrics", Path: "context/metrics.jsonl"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sum))

	out := buf.String()
	assert.Contains(t, out, "Sample data generation complete!")
	assert.Contains(t, out, "  - context/sample_app.log       (Application logs with errors)")
	assert.Contains(t, out, `/rlm context=context/terraform-plan.json query="Review for AWS best practices"`)
	assert.Contains(t, out, "--seed 7")
	assert.NotContains(t, out, "Bundle:")
}
