package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/model"
)

func TestResolveDrop(t *testing.T) {
	asanas := []model.Asana{{ID: 1}, {ID: 2}, {ID: 3}}
	flows := []model.Flow{{ID: 10}}

	tests := []struct {
		name    string
		dragged int64
		target  *model.DropTarget
		want    model.Mutation
	}{
		{"nil target", 1, nil, model.Mutation{Kind: model.MutationNone, AsanaID: 1}},
		{"assign", 2, &model.DropTarget{Accepts: model.DropAcceptsAsana, FlowID: 10},
			model.Mutation{Kind: model.MutationAssign, AsanaID: 2, FlowID: 10}},
		{"unknown flow", 2, &model.DropTarget{Accepts: model.DropAcceptsAsana, FlowID: 99},
			model.Mutation{Kind: model.MutationNone, AsanaID: 2}},
		{"zone without accepts", 2, &model.DropTarget{FlowID: 10},
			model.Mutation{Kind: model.MutationNone, AsanaID: 2}},
		{"reorder", 1, &model.DropTarget{AsanaID: 3},
			model.Mutation{Kind: model.MutationReorder, AsanaID: 1, From: 0, To: 2}},
		{"onto itself", 2, &model.DropTarget{AsanaID: 2}, model.Mutation{Kind: model.MutationNone, AsanaID: 2}},
		{"unknown target", 1, &model.DropTarget{AsanaID: 7}, model.Mutation{Kind: model.MutationNone, AsanaID: 1}},
		{"unknown dragged", 8, &model.DropTarget{AsanaID: 1}, model.Mutation{Kind: model.MutationNone, AsanaID: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDrop(asanas, flows, tt.dragged, tt.target))
		})
	}
}

func TestDropAssignScenario(t *testing.T) {
	m, _ := newTestManager(t)
	a1 := m.AsanaAdd()
	f1 := m.FlowAdd()
	target := &model.DropTarget{Accepts: model.DropAcceptsAsana, FlowID: f1.ID}

	mut, err := m.Drop(a1.ID, target)
	require.NoError(t, err)
	assert.Equal(t, model.MutationAssign, mut.Kind)
	got, _ := m.FlowGet(f1.ID)
	assert.Equal(t, []int64{a1.ID}, got.AsanaIDs)

	_, err = m.Drop(a1.ID, target)
	require.NoError(t, err)
	got, _ = m.FlowGet(f1.ID)
	assert.Equal(t, []int64{a1.ID}, got.AsanaIDs, "no duplicate")
}

func TestDropReorderScenario(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AsanaAdd()
	b := m.AsanaAdd()
	c := m.AsanaAdd()

	mut, err := m.Drop(a.ID, &model.DropTarget{AsanaID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, model.MutationReorder, mut.Kind)
	assert.Equal(t, []int64{b.ID, c.ID, a.ID}, ids(m.AsanaList()))
}

func TestDropCancelledChangesNothing(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AsanaAdd()
	b := m.AsanaAdd()
	before := m.LibraryExport()

	mut, err := m.Drop(a.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.MutationNone, mut.Kind)
	_, err = m.Drop(b.ID, &model.DropTarget{AsanaID: b.ID})
	require.NoError(t, err)

	assert.Equal(t, before, m.LibraryExport())
}
