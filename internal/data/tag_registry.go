package data

import (
	"context"
	"fmt"
	"strings"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// TagOperations defines the interface for tag registry operations
type TagOperations interface {
	TagCreate(domain model.TagDomain, name string) error
	TagRename(domain model.TagDomain, oldName, newName string) error
	TagRemove(domain model.TagDomain, name string) error
	TagList(domain model.TagDomain) []string
}

// TagList returns a copy of the domain's registry in order
func (m *DataManager) TagList(domain model.TagDomain) []string {
	return append([]string{}, m.tags[domain]...)
}

// TagCreate appends a new tag to the domain's registry.
func (m *DataManager) TagCreate(domain model.TagDomain, name string) error {
	ctx := context.Background()
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrTagEmpty
	}
	if indexOf(m.tags[domain], name) >= 0 {
		m.Logger.Warn(ctx, "Tag already exists", log.Fields{"domain": string(domain), "tag": name})
		return ErrTagExists
	}

	m.tags[domain] = append(m.tags[domain], name)
	m.publishTags(domain)

	m.Logger.Info(ctx, "Tag created", log.Fields{"domain": string(domain), "tag": name})
	return nil
}

// TagRename replaces oldName with newName in the registry, in every entity of
// the domain and in the domain's filter selection. The new name goes to the
// end of the registry and of the selection.
func (m *DataManager) TagRename(domain model.TagDomain, oldName, newName string) error {
	ctx := context.Background()
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)

	registry := m.tags[domain]
	switch {
	case indexOf(registry, oldName) < 0:
		return ErrTagNotFound
	case newName == "":
		return ErrTagEmpty
	case newName == oldName:
		return ErrTagUnchanged
	case indexOf(registry, newName) >= 0:
		return ErrTagExists
	}

	touched := m.cascadeTag(domain, oldName, newName)

	m.publishTags(domain)
	if touched > 0 {
		m.publishDomain(domain)
	}

	m.Logger.Info(ctx, "Tag renamed", log.Fields{
		"domain":   string(domain),
		"from":     oldName,
		"to":       newName,
		"entities": touched,
	})
	return nil
}

// TagRemove deletes a tag from the registry, from every entity of the domain
// and from the filter selection. Callers confirm with the user beforehand.
func (m *DataManager) TagRemove(domain model.TagDomain, name string) error {
	ctx := context.Background()
	name = strings.TrimSpace(name)
	if indexOf(m.tags[domain], name) < 0 {
		return ErrTagNotFound
	}

	touched := m.cascadeTag(domain, name, "")

	m.publishTags(domain)
	if touched > 0 {
		m.publishDomain(domain)
	}

	m.Logger.Info(ctx, "Tag removed", log.Fields{"domain": string(domain), "tag": name, "entities": touched})
	return nil
}

// cascadeTag applies a rename (newName set) or a removal (newName empty) to
// the registry, the domain's entities and the selection in one step. It
// returns the number of entities whose tags changed.
func (m *DataManager) cascadeTag(domain model.TagDomain, oldName, newName string) int {
	m.tags[domain] = replaceTag(m.tags[domain], oldName, "")
	if newName != "" {
		m.tags[domain] = append(m.tags[domain], newName)
	}

	touched := 0
	if domain == model.DomainFlow {
		for i := range m.flows {
			if indexOf(m.flows[i].Tags, oldName) >= 0 {
				m.flows[i].Tags = replaceTag(m.flows[i].Tags, oldName, newName)
				touched++
			}
		}
	} else {
		for i := range m.asanas {
			if indexOf(m.asanas[i].Tags, oldName) >= 0 {
				m.asanas[i].Tags = replaceTag(m.asanas[i].Tags, oldName, newName)
				touched++
			}
		}
	}

	m.editFollowTag(domain, oldName, newName)

	if sel := m.selected[domain]; indexOf(sel, oldName) >= 0 {
		sel = replaceTag(sel, oldName, "")
		if newName != "" && indexOf(sel, newName) < 0 {
			sel = append(sel, newName)
		}
		m.selected[domain] = sel
	}
	return touched
}

// tagsRegistered checks that every tag in next is either in the domain's
// registry or already carried by the entity (current).
func (m *DataManager) tagsRegistered(domain model.TagDomain, current, next []string) error {
	for _, t := range storage.NormalizeTags(next) {
		if indexOf(current, t) < 0 && indexOf(m.tags[domain], t) < 0 {
			return fmt.Errorf("%w: %s", ErrTagNotFound, t)
		}
	}
	return nil
}

// replaceTag returns a copy of tags with oldName swapped for newName in place,
// or dropped when newName is empty. A newName already present is not repeated.
func replaceTag(tags []string, oldName, newName string) []string {
	out := make([]string, 0, len(tags))
	present := newName != "" && indexOf(tags, newName) >= 0
	for _, t := range tags {
		if t != oldName {
			out = append(out, t)
			continue
		}
		if newName != "" && !present {
			out = append(out, newName)
			present = true
		}
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
