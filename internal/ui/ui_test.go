package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"yogaday/local-app/internal/model"
)

func TestAsanaList(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)

	u.AsanaList(nil, 0)
	assert.Contains(t, buf.String(), "No asanas")

	buf.Reset()
	u.AsanaList([]model.Asana{
		{ID: 11, Name: "Tree Pose", Tags: []string{"standing", "balance"}},
		{ID: 12, Name: "Crow", ImageURL: "data:image/png;base64,AAAA"},
	}, 11)
	out := buf.String()
	assert.Contains(t, out, "Tree Pose")
	assert.Contains(t, out, "standing, balance")
	assert.Contains(t, out, "embedded image/png")
	assert.NotContains(t, out, "\x1b[")
}

func TestFlowView(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)

	f := model.Flow{ID: 5, Name: "Morning", Description: "Wake up", Duration: 20}
	u.FlowView(f, nil)
	assert.Contains(t, buf.String(), "Drag asanas here")

	buf.Reset()
	u.FlowView(f, []model.Asana{{ID: 1, Name: "Mountain"}, {ID: 2, Name: "Chair"}})
	out := buf.String()
	assert.Contains(t, out, "Morning")
	assert.Contains(t, out, "20 min")
	assert.Contains(t, out, "Mountain")
	assert.Contains(t, out, "Chair")
}

func TestTagListMarksSelection(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)

	u.TagList("asana", []string{"standing", "seated"}, []string{"seated"})
	assert.Contains(t, buf.String(), "standing [seated]")

	buf.Reset()
	u.TagList("flow", nil, nil)
	assert.Contains(t, buf.String(), "No flow tags")
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)

	u.Error("boom")
	u.Warning("careful")
	u.MutationView(model.Mutation{Kind: model.MutationAssign, AsanaID: 3, FlowID: 7})
	u.MutationView(model.Mutation{Kind: model.MutationNone})
	assert.Equal(t, "! boom\n? careful\nAsana 3 added to flow 7\nNothing changed\n", buf.String())
	assert.Equal(t, "yogaday > ", u.PromptString("yogaday > "))
}
