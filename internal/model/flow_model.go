package model

// Placeholder content for a freshly created flow.
const (
	FlowDefaultName        = "New Flow"
	FlowDefaultDescription = "Click to add description"
	FlowDefaultDuration    = 30
)

// Flow represents an ordered sequence of asanas with its own metadata.
// AsanaIDs may reference asanas that no longer exist; readers skip those.
type Flow struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Duration    int      `json:"duration" yaml:"duration"`
	Tags        []string `json:"tags" yaml:"tags"`
	AsanaIDs    []int64  `json:"asanaIds" yaml:"asanaIds"`
}

// FlowPatch holds the fields of a flow update. Tags and AsanaIDs replace the
// stored sequences wholesale when non-nil.
type FlowPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	AsanaIDs    []int64  `json:"asanaIds,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p FlowPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Duration == nil && p.Tags == nil && p.AsanaIDs == nil
}

// Clone returns a deep copy of the flow.
func (f Flow) Clone() Flow {
	c := f
	c.Tags = append([]string{}, f.Tags...)
	c.AsanaIDs = append([]int64{}, f.AsanaIDs...)
	return c
}

// TagList returns the flow tags, used by the generic tag filter.
func (f Flow) TagList() []string {
	return f.Tags
}
