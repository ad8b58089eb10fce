package data

import (
	"context"
	"fmt"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// ResolveDrop translates a finished drag of an asana into the mutation it
// implies. A flow drop zone assigns the asana to that flow; another asana card
// reorders the asana list. Anything else, including a nil target, is no change.
func ResolveDrop(asanas []model.Asana, flows []model.Flow, draggedID int64, target *model.DropTarget) model.Mutation {
	none := model.Mutation{Kind: model.MutationNone, AsanaID: draggedID}
	if target == nil {
		return none
	}

	from := -1
	for i, a := range asanas {
		if a.ID == draggedID {
			from = i
			break
		}
	}
	if from < 0 {
		return none
	}

	if target.Accepts == model.DropAcceptsAsana && target.FlowID != 0 {
		for _, f := range flows {
			if f.ID == target.FlowID {
				return model.Mutation{Kind: model.MutationAssign, AsanaID: draggedID, FlowID: f.ID}
			}
		}
		return none
	}

	if target.AsanaID == 0 || target.AsanaID == draggedID {
		return none
	}
	for to, a := range asanas {
		if a.ID == target.AsanaID {
			return model.Mutation{Kind: model.MutationReorder, AsanaID: draggedID, From: from, To: to}
		}
	}
	return none
}

// Drop resolves a drop against the current library and applies it
func (m *DataManager) Drop(draggedID int64, target *model.DropTarget) (model.Mutation, error) {
	mut := ResolveDrop(m.asanas, m.flows, draggedID, target)
	return mut, m.DropApply(mut)
}

// DropApply performs a resolved mutation
func (m *DataManager) DropApply(mut model.Mutation) error {
	ctx := context.Background()
	m.Logger.Debug(ctx, "Applying drop", log.Fields{"kind": mut.Kind.String(), "asanaID": mut.AsanaID})

	switch mut.Kind {
	case model.MutationNone:
		return nil
	case model.MutationAssign:
		_, err := m.FlowAsanaAdd(mut.FlowID, mut.AsanaID)
		return err
	case model.MutationReorder:
		return m.AsanaMove(mut.From, mut.To)
	default:
		return fmt.Errorf("unknown mutation kind: %d", mut.Kind)
	}
}
