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

// PlanEmitter writes the Terraform plan fixture. Output is not random.
type PlanEmitter struct {
	file string
}

// NewPlanEmitter creates a plan emitter writing to file.
func NewPlanEmitter(file string) *PlanEmitter {
	return &PlanEmitter{file: file}
}

// Name implements Producer.
func (e *PlanEmitter) Name() string { return NamePlan }

// Document assembles the plan from the static resource assets.
func (e *PlanEmitter) Document() models.PlanDocument {
	resources := assets.PlanResources()
	return models.PlanDocument{
		FormatVersion:    assets.PlanFormatVersion,
		TerraformVersion: assets.TerraformVersion,
		PlannedValues: models.PlannedValues{
			RootModule: models.RootModule{Resources: resources},
		},
		ResourceChanges: ChangesFor(resources, "create"),
	}
}

// ChangesFor returns one change per resource, in resource order.
func ChangesFor(resources []models.PlanResource, actions ...string) []models.ResourceChange {
	changes := make([]models.ResourceChange, 0, len(resources))
	for _, r := range resources {
		changes = append(changes, models.ResourceChange{
			Address: r.Address,
			Change:  models.Change{Actions: append([]string(nil), actions...)},
		})
	}
	return changes
}

// CheckCorrespondence verifies that resource addresses are unique and that
// changes map onto them one to one.
func CheckCorrespondence(doc models.PlanDocument) error {
	resources := doc.Resources()
	if len(resources) != len(doc.ResourceChanges) {
		return fmt.Errorf("plan has %d resources but %d changes", len(resources), len(doc.ResourceChanges))
	}

	pending := make(map[string]bool, len(resources))
	for _, r := range resources {
		if _, dup := pending[r.Address]; dup {
			return fmt.Errorf("duplicate resource address %q", r.Address)
		}
		pending[r.Address] = true
	}
	for _, c := range doc.ResourceChanges {
		open, ok := pending[c.Address]
		if !ok {
			return fmt.Errorf("change %q has no matching resource", c.Address)
		}
		if !open {
			return fmt.Errorf("resource %q has more than one change", c.Address)
		}
		pending[c.Address] = false
	}
	return nil
}

// Produce implements Producer. rng and now are unused.
func (e *PlanEmitter) Produce(_ *rand.Rand, _ time.Time) (models.Artifact, error) {
	doc := e.Document()
	if err := CheckCorrespondence(doc); err != nil {
		return models.Artifact{}, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return models.Artifact{}, fmt.Errorf("encode plan: %w", err)
	}

	return models.Artifact{
		Name:    NamePlan,
		File:    e.file,
		Data:    buf.Bytes(),
		Records: len(doc.Resources()),
		Lines:   bytes.Count(buf.Bytes(), []byte("\n")),
	}, nil
}
