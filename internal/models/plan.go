package models

// PlanDocument mirrors the subset of `terraform show -json` output the
// fixtures need.
type PlanDocument struct {
	FormatVersion    string           `json:"format_version"`
	TerraformVersion string           `json:"terraform_version"`
	PlannedValues    PlannedValues    `json:"planned_values"`
	ResourceChanges  []ResourceChange `json:"resource_changes"`
}

// PlannedValues wraps the root module of a plan.
type PlannedValues struct {
	RootModule RootModule `json:"root_module"`
}

// RootModule lists planned resources.
type RootModule struct {
	Resources []PlanResource `json:"resources"`
}

// PlanResource is a single planned resource. Address is unique per plan.
type PlanResource struct {
	Address      string         `json:"address"`
	Mode         string         `json:"mode"`
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	ProviderName string         `json:"provider_name"`
	Values       map[string]any `json:"values"`
}

// ResourceChange records the actions planned for one resource address.
type ResourceChange struct {
	Address string `json:"address"`
	Change  Change `json:"change"`
}

// Change holds planned actions such as "create".
type Change struct {
	Actions []string `json:"actions"`
}

// Resources is shorthand for the planned root module resources.
func (d PlanDocument) Resources() []PlanResource {
	return d.PlannedValues.RootModule.Resources
}
