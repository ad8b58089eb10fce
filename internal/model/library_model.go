package model

// ExportDocument is the file format of a full library export.
// Checksum is optional on import; when present it must match the payload.
type ExportDocument struct {
	Asanas    []Asana  `json:"asanas" yaml:"asanas"`
	Flows     []Flow   `json:"flows" yaml:"flows"`
	AsanaTags []string `json:"asanaTags" yaml:"asanaTags"`
	FlowTags  []string `json:"flowTags" yaml:"flowTags"`
	Checksum  string   `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// DropAcceptsAsana is the payload kind a flow drop zone declares.
const DropAcceptsAsana = "asana"

// DropTarget describes where a dragged asana was released.
// A flow drop zone sets Accepts and FlowID; an asana card sets AsanaID.
type DropTarget struct {
	Accepts string `json:"accepts,omitempty"`
	FlowID  int64  `json:"flowId,omitempty"`
	AsanaID int64  `json:"asanaId,omitempty"`
}

// MutationKind is the outcome of resolving a drop.
type MutationKind int

const (
	MutationNone MutationKind = iota
	MutationAssign
	MutationReorder
)

// String returns the name of the mutation kind.
func (k MutationKind) String() string {
	switch k {
	case MutationAssign:
		return "assign"
	case MutationReorder:
		return "reorder"
	default:
		return "none"
	}
}

// Mutation is the state change a drop translates into.
type Mutation struct {
	Kind    MutationKind `json:"kind"`
	AsanaID int64        `json:"asanaId,omitempty"`
	FlowID  int64        `json:"flowId,omitempty"`
	From    int          `json:"from"`
	To      int          `json:"to"`
}

// View is the collection a session currently displays.
type View string

const (
	ViewCards View = "cards"
	ViewFlows View = "flows"
)

// Domain returns the tag domain that backs the view.
func (v View) Domain() TagDomain {
	if v == ViewFlows {
		return DomainFlow
	}
	return DomainAsana
}
