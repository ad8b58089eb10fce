package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/model"
)

func TestFilterByTags(t *testing.T) {
	items := []model.Asana{
		{ID: 1, Tags: []string{"a", "b"}},
		{ID: 2, Tags: []string{"b"}},
		{ID: 3, Tags: []string{"b", "a", "c"}},
		{ID: 4, Tags: []string{}},
	}

	tests := []struct {
		name     string
		selected []string
		want     []int64
	}{
		{"empty selection keeps all", nil, []int64{1, 2, 3, 4}},
		{"single tag", []string{"b"}, []int64{1, 2, 3}},
		{"and semantics", []string{"a", "b"}, []int64{1, 3}},
		{"order of selection irrelevant", []string{"c", "a"}, []int64{3}},
		{"no match", []string{"z"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(filterByTags(items, tt.selected)))
		})
	}
}

func TestToggleTagSymmetricDifference(t *testing.T) {
	sel := toggleTag(nil, "a")
	assert.Equal(t, []string{"a"}, sel)
	sel = toggleTag(sel, "b")
	assert.Equal(t, []string{"a", "b"}, sel)
	sel = toggleTag(sel, "a")
	assert.Equal(t, []string{"b"}, sel)
	assert.Equal(t, []string{"b"}, toggleTag(toggleTag(sel, "c"), "c"), "toggling twice is identity")
}

func TestManagerFilters(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.TagCreate(model.DomainAsana, "standing"))
	require.NoError(t, m.TagCreate(model.DomainFlow, "short"))
	a1 := m.AsanaAdd()
	a2 := m.AsanaAdd()
	f1 := m.FlowAdd()
	m.FlowAdd()
	_, _ = m.AsanaUpdate(a2.ID, model.AsanaPatch{Tags: []string{"standing"}})
	_, _ = m.FlowUpdate(f1.ID, model.FlowPatch{Tags: []string{"short"}})

	assert.Equal(t, []int64{a1.ID, a2.ID}, ids(m.FilterAsanas()))

	sel, err := m.TagToggle(model.DomainAsana, "standing")
	require.NoError(t, err)
	assert.Equal(t, []string{"standing"}, sel)
	assert.Equal(t, []int64{a2.ID}, ids(m.FilterAsanas()))
	assert.Len(t, m.FilterFlows(), 2, "flow view has its own selection")

	_, err = m.TagToggle(model.DomainFlow, "short")
	require.NoError(t, err)
	flows := m.FilterFlows()
	require.Len(t, flows, 1)
	assert.Equal(t, f1.ID, flows[0].ID)

	_, err = m.TagToggle(model.DomainAsana, "unknown")
	assert.ErrorIs(t, err, ErrTagNotFound)

	m.SelectionClear(model.DomainAsana)
	assert.Empty(t, m.Selection(model.DomainAsana))
	assert.Len(t, m.FilterAsanas(), 2)
}
