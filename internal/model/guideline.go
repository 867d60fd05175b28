package model

// Guideline is an external accessibility standard reference.
type Guideline struct {
	Title string `json:"title" yaml:"title"`
	Link  string `json:"link" yaml:"link"`
}
