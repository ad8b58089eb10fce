package data

import (
	"context"
	"strings"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// FlowOperations defines the interface for flow-related operations
type FlowOperations interface {
	FlowAdd() model.Flow
	FlowGet(id int64) (model.Flow, error)
	FlowList() []model.Flow
	FlowUpdate(id int64, patch model.FlowPatch) (model.Flow, error)
	FlowDelete(id int64) error
	FlowAsanaAdd(flowID, asanaID int64) (bool, error)
	FlowAsanaRemove(flowID int64, index int) error
	FlowAsanaRemoveID(flowID, asanaID int64) error
	FlowAsanas(flowID int64) ([]model.Asana, error)
}

// FlowAdd appends a flow with placeholder content and puts it in edit focus.
func (m *DataManager) FlowAdd() model.Flow {
	f := model.Flow{
		ID:          m.ids.next(),
		Name:        model.FlowDefaultName,
		Description: model.FlowDefaultDescription,
		Duration:    model.FlowDefaultDuration,
		Tags:        []string{},
		AsanaIDs:    []int64{},
	}
	m.flows = append(m.flows, f)
	m.publishFlows()
	m.editBegin(model.DomainFlow, f.ID)

	m.Logger.Info(context.Background(), "Flow added", log.Fields{"flowID": f.ID})
	return f.Clone()
}

// FlowGet returns a copy of the flow with the given id
func (m *DataManager) FlowGet(id int64) (model.Flow, error) {
	i := m.flowIndex(id)
	if i < 0 {
		return model.Flow{}, ErrFlowNotFound
	}
	return m.flows[i].Clone(), nil
}

// FlowList returns a copy of all flows in display order
func (m *DataManager) FlowList() []model.Flow {
	return cloneFlows(m.flows)
}

// FlowUpdate merges the patch into the flow. Tags and AsanaIDs replace the
// stored sequences; replacing AsanaIDs is how a flow is reordered. New tags
// must exist in the flow registry. Negative durations are stored as 0.
func (m *DataManager) FlowUpdate(id int64, patch model.FlowPatch) (model.Flow, error) {
	i := m.flowIndex(id)
	if i < 0 {
		return model.Flow{}, ErrFlowNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Flow{}, ErrNameEmpty
	}
	if patch.Tags != nil {
		if err := m.tagsRegistered(model.DomainFlow, m.flows[i].Tags, patch.Tags); err != nil {
			m.Logger.Warn(context.Background(), "Flow update rejected", log.Fields{"flowID": id, "error": err})
			return model.Flow{}, err
		}
	}
	if patch.Empty() {
		return m.flows[i].Clone(), nil
	}

	f := &m.flows[i]
	if patch.Name != nil {
		f.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Duration != nil {
		f.Duration = max(*patch.Duration, 0)
	}
	if patch.Tags != nil {
		f.Tags = storage.NormalizeTags(patch.Tags)
	}
	if patch.AsanaIDs != nil {
		f.AsanaIDs = append([]int64{}, patch.AsanaIDs...)
	}
	m.publishFlows()

	m.Logger.Info(context.Background(), "Flow updated", log.Fields{"flowID": id})
	return f.Clone(), nil
}

// FlowDelete removes a flow
func (m *DataManager) FlowDelete(id int64) error {
	i := m.flowIndex(id)
	if i < 0 {
		return ErrFlowNotFound
	}

	m.flows = append(m.flows[:i], m.flows[i+1:]...)
	m.editDrop(model.DomainFlow, id)
	m.publishFlows()

	m.Logger.Info(context.Background(), "Flow deleted", log.Fields{"flowID": id})
	return nil
}

// FlowAsanaAdd appends an asana to a flow unless it is already a member.
// It reports whether the flow changed.
func (m *DataManager) FlowAsanaAdd(flowID, asanaID int64) (bool, error) {
	i := m.flowIndex(flowID)
	if i < 0 {
		return false, ErrFlowNotFound
	}
	if m.asanaIndex(asanaID) < 0 {
		return false, ErrAsanaNotFound
	}

	f := &m.flows[i]
	for _, id := range f.AsanaIDs {
		if id == asanaID {
			return false, nil
		}
	}
	f.AsanaIDs = append(f.AsanaIDs, asanaID)
	m.editFollowMembership(flowID)
	m.publishFlows()

	m.Logger.Info(context.Background(), "Asana added to flow", log.Fields{"flowID": flowID, "asanaID": asanaID})
	return true, nil
}

// FlowAsanaRemove removes the membership entry at index.
func (m *DataManager) FlowAsanaRemove(flowID int64, index int) error {
	i := m.flowIndex(flowID)
	if i < 0 {
		return ErrFlowNotFound
	}
	f := &m.flows[i]
	if index < 0 || index >= len(f.AsanaIDs) {
		return ErrIndexRange
	}

	removed := f.AsanaIDs[index]
	f.AsanaIDs = append(f.AsanaIDs[:index], f.AsanaIDs[index+1:]...)
	m.editFollowMembership(flowID)
	m.publishFlows()

	m.Logger.Info(context.Background(), "Asana removed from flow", log.Fields{"flowID": flowID, "asanaID": removed, "index": index})
	return nil
}

// FlowAsanaRemoveID removes the first occurrence of asanaID from the flow.
func (m *DataManager) FlowAsanaRemoveID(flowID, asanaID int64) error {
	i := m.flowIndex(flowID)
	if i < 0 {
		return ErrFlowNotFound
	}
	for idx, id := range m.flows[i].AsanaIDs {
		if id == asanaID {
			return m.FlowAsanaRemove(flowID, idx)
		}
	}
	return ErrNotMember
}

// FlowAsanas resolves the flow's membership to asanas in flow order,
// skipping identifiers of deleted asanas.
func (m *DataManager) FlowAsanas(flowID int64) ([]model.Asana, error) {
	i := m.flowIndex(flowID)
	if i < 0 {
		return nil, ErrFlowNotFound
	}

	out := make([]model.Asana, 0, len(m.flows[i].AsanaIDs))
	for _, id := range m.flows[i].AsanaIDs {
		if j := m.asanaIndex(id); j >= 0 {
			out = append(out, m.asanas[j].Clone())
		}
	}
	return out, nil
}
