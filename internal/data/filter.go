package data

import (
	"strings"

	"yogaday/local-app/internal/model"
)

// tagged is implemented by entities that carry a tag sequence
type tagged interface {
	TagList() []string
}

// filterByTags keeps the items carrying every selected tag, in their original
// order. An empty selection keeps everything.
func filterByTags[T tagged](items []T, selected []string) []T {
	if len(selected) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if hasAllTags(item.TagList(), selected) {
			out = append(out, item)
		}
	}
	return out
}

func hasAllTags(tags, selected []string) bool {
	for _, s := range selected {
		if indexOf(tags, s) < 0 {
			return false
		}
	}
	return true
}

// toggleTag returns the symmetric difference of the selection and {tag}.
func toggleTag(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == tag {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

// FilterAsanas returns the asanas matching the asana tag selection
func (m *DataManager) FilterAsanas() []model.Asana {
	return filterByTags(m.AsanaList(), m.selected[model.DomainAsana])
}

// FilterFlows returns the flows matching the flow tag selection
func (m *DataManager) FilterFlows() []model.Flow {
	return filterByTags(m.FlowList(), m.selected[model.DomainFlow])
}

// TagToggle adds the tag to the domain's selection, or takes it out when it is
// already selected. Only registered tags can be selected.
func (m *DataManager) TagToggle(domain model.TagDomain, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	sel := m.selected[domain]
	if indexOf(sel, tag) < 0 && indexOf(m.tags[domain], tag) < 0 {
		return m.Selection(domain), ErrTagNotFound
	}
	m.selected[domain] = toggleTag(sel, tag)
	return m.Selection(domain), nil
}

// SelectionClear empties the domain's selection
func (m *DataManager) SelectionClear(domain model.TagDomain) {
	delete(m.selected, domain)
}

// Selection returns the tags currently selected in the domain
func (m *DataManager) Selection(domain model.TagDomain) []string {
	return append([]string{}, m.selected[domain]...)
}
