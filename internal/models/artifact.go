package models

// Artifact is the rendered output of one producer.
type Artifact struct {
	// Name is the stable producer name used in logs and metric labels.
	Name string
	// File is the base name written inside the output directory.
	File string
	Data []byte
	// Records counts modelled entities; Lines counts physical lines.
	Records int
	Lines   int
}
