package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/miradorstack/mirador-fixtures/internal/producers"
)

var artifactBlurbs = map[string]string{
	producers.NameLogs:      "Application logs with errors",
	producers.NameManifests: "K8s manifests with issues",
	producers.NamePlan:      "Terraform plan with security issues",
	producers.NameMetrics:   "Time-series metrics with anomalies",
}

var exampleQueries = []struct {
	artifact string
	query    string
}{
	{producers.NameLogs, "Find all errors"},
	{producers.NameManifests, "Find security issues"},
	{producers.NamePlan, "Review for AWS best practices"},
}

// WriteSummary prints the closing report of a run, including example
// queries for the downstream RLM tool.
func WriteSummary(w io.Writer, sum Summary) error {
	rule := strings.Repeat("=", 60)

	width := 0
	for _, a := range sum.Artifacts {
		if n := len(filepath.ToSlash(a.Path)); n > width {
			width = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nSample data generation complete!\n%s\n", rule, rule)
	fmt.Fprintf(&b, "\nCreated files:\n")
	paths := make(map[string]string, len(sum.Artifacts))
	for _, a := range sum.Artifacts {
		path := filepath.ToSlash(a.Path)
		paths[a.Name] = path
		fmt.Fprintf(&b, "  - %-*s  (%s)\n", width, path, artifactBlurbs[a.Name])
	}
	if sum.BundlePath != "" {
		fmt.Fprintf(&b, "\nBundle: %s\n", filepath.ToSlash(sum.BundlePath))
	}
	fmt.Fprintf(&b, "\nSeed: %d (pass --seed %d to reproduce the random values; timestamps follow the clock)\n", sum.Seed, sum.Seed)

	fmt.Fprintf(&b, "\nYou can now test RLM with commands like:\n")
	for _, q := range exampleQueries {
		path, ok := paths[q.artifact]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  /rlm context=%s query=%q\n", path, q.query)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
