package producers

import (
	"math/rand"
	"strings"
	"time"

	"github.com/miradorstack/mirador-fixtures/internal/assets"
	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// ManifestEmitter writes the embedded manifest bundle verbatim.
type ManifestEmitter struct {
	file string
}

// NewManifestEmitter creates a manifest emitter writing to file.
func NewManifestEmitter(file string) *ManifestEmitter {
	return &ManifestEmitter{file: file}
}

// Name implements Producer.
func (e *ManifestEmitter) Name() string { return NameManifests }

// Produce implements Producer.
func (e *ManifestEmitter) Produce(_ *rand.Rand, _ time.Time) (models.Artifact, error) {
	return models.Artifact{
		Name:    NameManifests,
		File:    e.file,
		Data:    []byte(assets.Manifests),
		Records: assets.ManifestDocumentCount(),
		Lines:   strings.Count(assets.Manifests, "\n"),
	}, nil
}
