// Package data provides library state management for the Yoga Day application.
// This file contains the edit focus: at most one asana and one flow being
// edited, each with the snapshot taken when editing began.
package data

import (
	"context"

	"yogaday/local-app/internal/event"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// editFocus remembers the entity being edited and its pre-edit values.
type editFocus struct {
	id    int64
	asana model.Asana
	flow  model.Flow
}

// EditChange is the payload of EditFocusChanged. ID is 0 when focus was cleared.
type EditChange struct {
	Kind model.EntityKind
	ID   int64
}

// EditOperations defines the interface for edit focus operations
type EditOperations interface {
	EditBegin(kind model.EntityKind, id int64) error
	EditSave(kind model.EntityKind) error
	EditCancel(kind model.EntityKind) error
	Editing(kind model.EntityKind) (int64, bool)
}

// EditBegin puts the entity in edit focus. Any entity of the same kind that
// was being edited leaves focus with its current values.
func (m *DataManager) EditBegin(kind model.EntityKind, id int64) error {
	switch kind {
	case model.DomainFlow:
		if m.flowIndex(id) < 0 {
			return ErrFlowNotFound
		}
	default:
		if m.asanaIndex(id) < 0 {
			return ErrAsanaNotFound
		}
	}
	m.editBegin(kind, id)
	return nil
}

func (m *DataManager) editBegin(kind model.EntityKind, id int64) {
	f := &editFocus{id: id}
	if kind == model.DomainFlow {
		f.flow = m.flows[m.flowIndex(id)].Clone()
	} else {
		f.asana = m.asanas[m.asanaIndex(id)].Clone()
	}
	m.focus[kind] = f
	m.publishFocus(kind, id)
}

// Editing returns the id in edit focus for the kind
func (m *DataManager) Editing(kind model.EntityKind) (int64, bool) {
	f, ok := m.focus[kind]
	if !ok {
		return 0, false
	}
	return f.id, true
}

// EditSave keeps the current values and leaves edit focus
func (m *DataManager) EditSave(kind model.EntityKind) error {
	f, ok := m.focus[kind]
	if !ok {
		return ErrNotEditing
	}
	delete(m.focus, kind)
	m.publishFocus(kind, 0)

	m.Logger.Info(context.Background(), "Edit saved", log.Fields{"kind": string(kind), "id": f.id})
	return nil
}

// EditCancel restores the values the entity had when EditBegin ran, except for
// tag cascades and flow membership changes made since, and leaves edit focus.
func (m *DataManager) EditCancel(kind model.EntityKind) error {
	f, ok := m.focus[kind]
	if !ok {
		return ErrNotEditing
	}
	delete(m.focus, kind)

	if kind == model.DomainFlow {
		if i := m.flowIndex(f.id); i >= 0 {
			m.flows[i] = f.flow.Clone()
			m.publishFlows()
		}
	} else {
		if i := m.asanaIndex(f.id); i >= 0 {
			m.asanas[i] = f.asana.Clone()
			m.publishAsanas()
		}
	}
	m.publishFocus(kind, 0)

	m.Logger.Info(context.Background(), "Edit cancelled", log.Fields{"kind": string(kind), "id": f.id})
	return nil
}

// editFollowTag applies a tag rename (newName set) or removal to the snapshot
// of the entity in focus, so cancelling never brings back a tag the registry
// no longer has.
func (m *DataManager) editFollowTag(domain model.TagDomain, oldName, newName string) {
	f, ok := m.focus[domain]
	if !ok {
		return
	}
	if domain == model.DomainFlow {
		if indexOf(f.flow.Tags, oldName) >= 0 {
			f.flow.Tags = replaceTag(f.flow.Tags, oldName, newName)
		}
		return
	}
	if indexOf(f.asana.Tags, oldName) >= 0 {
		f.asana.Tags = replaceTag(f.asana.Tags, oldName, newName)
	}
}

// editFollowMembership copies the membership of the flow in focus into its
// snapshot. Drops and removals are not part of the edit.
func (m *DataManager) editFollowMembership(flowID int64) {
	f, ok := m.focus[model.DomainFlow]
	if !ok || f.id != flowID {
		return
	}
	if i := m.flowIndex(flowID); i >= 0 {
		f.flow.AsanaIDs = append([]int64{}, m.flows[i].AsanaIDs...)
	}
}

// editDrop clears the focus of kind when it refers to id.
func (m *DataManager) editDrop(kind model.EntityKind, id int64) {
	if f, ok := m.focus[kind]; ok && f.id == id {
		delete(m.focus, kind)
		m.publishFocus(kind, 0)
	}
}

func (m *DataManager) editClear() {
	for kind := range m.focus {
		delete(m.focus, kind)
		m.publishFocus(kind, 0)
	}
}

func (m *DataManager) publishFocus(kind model.EntityKind, id int64) {
	m.EventManager.Publish(event.Event{Type: event.EditFocusChanged, Data: EditChange{Kind: kind, ID: id}})
}
