package model

import "fmt"

// TagDomain names one of the independent tag vocabularies.
type TagDomain string

const (
	DomainAsana TagDomain = "asana"
	DomainFlow  TagDomain = "flow"
)

// ParseTagDomain converts user input into a TagDomain.
func ParseTagDomain(s string) (TagDomain, error) {
	switch s {
	case "asana", "asanas", "card", "cards":
		return DomainAsana, nil
	case "flow", "flows":
		return DomainFlow, nil
	default:
		return "", fmt.Errorf("unknown tag domain: %s", s)
	}
}

// EntityKind identifies the entity collection an edit focus refers to.
type EntityKind = TagDomain
