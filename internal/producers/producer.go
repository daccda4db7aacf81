// Package producers renders the four fixture artifacts. Every producer takes
// its random source and reference clock as arguments so runs are seedable.
package producers

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// Stable producer names, used for logs, metric labels and seed derivation.
const (
	NameLogs      = "logs"
	NameManifests = "manifests"
	NamePlan      = "plan"
	NameMetrics   = "metrics"
)

// Producer renders one artifact.
type Producer interface {
	Name() string
	Produce(rng *rand.Rand, now time.Time) (models.Artifact, error)
}

// NewRand derives an independent source for the named producer from the run
// seed, so output does not depend on producer ordering.
func NewRand(seed int64, name string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
