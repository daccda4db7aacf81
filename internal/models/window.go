package models

// Window is a half-open tick range [Start, End) within which a metric formula
// is overridden to simulate an incident.
type Window struct {
	Start int `yaml:"start" env:"START"`
	End   int `yaml:"end" env:"END"`
}

// Contains reports whether tick falls inside the window.
func (w Window) Contains(tick int) bool {
	return tick >= w.Start && tick < w.End
}

// Len returns the number of ticks covered by the window.
func (w Window) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}
