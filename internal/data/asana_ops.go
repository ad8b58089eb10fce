package data

import (
	"context"
	"strings"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// AsanaOperations defines the interface for asana-related operations
type AsanaOperations interface {
	AsanaAdd() model.Asana
	AsanaGet(id int64) (model.Asana, error)
	AsanaList() []model.Asana
	AsanaUpdate(id int64, patch model.AsanaPatch) (model.Asana, error)
	AsanaDelete(id int64) error
	AsanaMove(from, to int) error
}

// AsanaAdd appends an asana with placeholder content and puts it in edit focus.
func (m *DataManager) AsanaAdd() model.Asana {
	a := model.Asana{
		ID:   m.ids.next(),
		Name: model.AsanaDefaultName,
		Note: model.AsanaDefaultNote,
		Tags: []string{},
	}
	m.asanas = append(m.asanas, a)
	m.publishAsanas()
	m.editBegin(model.DomainAsana, a.ID)

	m.Logger.Info(context.Background(), "Asana added", log.Fields{"asanaID": a.ID})
	return a.Clone()
}

// AsanaGet returns a copy of the asana with the given id
func (m *DataManager) AsanaGet(id int64) (model.Asana, error) {
	i := m.asanaIndex(id)
	if i < 0 {
		return model.Asana{}, ErrAsanaNotFound
	}
	return m.asanas[i].Clone(), nil
}

// AsanaList returns a copy of all asanas in display order
func (m *DataManager) AsanaList() []model.Asana {
	return cloneAsanas(m.asanas)
}

// AsanaUpdate merges the patch into the asana. A Tags field replaces the tag
// sequence wholesale and may only add tags from the asana registry; a blank
// name is rejected.
func (m *DataManager) AsanaUpdate(id int64, patch model.AsanaPatch) (model.Asana, error) {
	ctx := context.Background()
	i := m.asanaIndex(id)
	if i < 0 {
		return model.Asana{}, ErrAsanaNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Asana{}, ErrNameEmpty
	}
	if patch.Tags != nil {
		if err := m.tagsRegistered(model.DomainAsana, m.asanas[i].Tags, patch.Tags); err != nil {
			m.Logger.Warn(ctx, "Asana update rejected", log.Fields{"asanaID": id, "error": err})
			return model.Asana{}, err
		}
	}
	if patch.Empty() {
		return m.asanas[i].Clone(), nil
	}

	a := &m.asanas[i]
	if patch.Name != nil {
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Note != nil {
		a.Note = *patch.Note
	}
	if patch.ImageURL != nil {
		a.ImageURL = *patch.ImageURL
	}
	if patch.Tags != nil {
		a.Tags = storage.NormalizeTags(patch.Tags)
	}
	m.publishAsanas()

	m.Logger.Info(ctx, "Asana updated", log.Fields{"asanaID": id})
	return a.Clone(), nil
}

// AsanaDelete removes an asana. Flows keep their reference to it; readers
// skip identifiers that no longer resolve.
func (m *DataManager) AsanaDelete(id int64) error {
	i := m.asanaIndex(id)
	if i < 0 {
		return ErrAsanaNotFound
	}

	m.asanas = append(m.asanas[:i], m.asanas[i+1:]...)
	m.editDrop(model.DomainAsana, id)
	m.publishAsanas()

	m.Logger.Info(context.Background(), "Asana deleted", log.Fields{"asanaID": id})
	return nil
}

// AsanaMove moves the asana at index from to index to, shifting the others.
func (m *DataManager) AsanaMove(from, to int) error {
	if from < 0 || from >= len(m.asanas) || to < 0 || to >= len(m.asanas) {
		return ErrIndexRange
	}
	if from == to {
		return nil
	}

	m.asanas = arrayMove(m.asanas, from, to)
	m.publishAsanas()

	m.Logger.Info(context.Background(), "Asana moved", log.Fields{"from": from, "to": to})
	return nil
}

// arrayMove returns a new slice with the element at from relocated to to.
func arrayMove[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}
