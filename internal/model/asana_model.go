// Package model defines the data structures used throughout the Yoga Day application.
package model

// Placeholder content for a freshly created asana.
const (
	AsanaDefaultName = "New Asana"
	AsanaDefaultNote = "Click to add notes"
)

// Asana represents a single posture card.
type Asana struct {
	ID       int64    `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Note     string   `json:"note" yaml:"note"`
	ImageURL string   `json:"imageUrl" yaml:"imageUrl"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// AsanaPatch holds the fields of an asana update. Nil fields are left untouched;
// a non-nil Tags replaces the tag sequence wholesale.
type AsanaPatch struct {
	Name     *string  `json:"name,omitempty"`
	Note     *string  `json:"note,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p AsanaPatch) Empty() bool {
	return p.Name == nil && p.Note == nil && p.ImageURL == nil && p.Tags == nil
}

// Clone returns a deep copy of the asana.
func (a Asana) Clone() Asana {
	c := a
	c.Tags = append([]string{}, a.Tags...)
	return c
}

// TagList returns the asana tags, used by the generic tag filter.
func (a Asana) TagList() []string {
	return a.Tags
}
