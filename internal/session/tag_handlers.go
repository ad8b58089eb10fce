package session

import (
	"context"
	"fmt"
	"strings"

	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// TagListing is a domain's registry together with its filter selection
type TagListing struct {
	Domain   model.TagDomain `json:"domain"`
	Tags     []string        `json:"tags"`
	Selected []string        `json:"selected"`
}

// initTagCommandHandlers initializes tag command handlers
func initTagCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleTagAdd,
		"rename": handleTagRename,
		"remove": handleTagRemove,
		"list":   handleTagList,
	}
}

// initFilterCommandHandlers initializes filter command handlers
func initFilterCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"toggle": handleFilterToggle,
		"clear":  handleFilterClear,
		"show":   handleFilterShow,
	}
}

// domainArgs splits off the leading domain argument. Without one the
// session's current view decides.
func domainArgs(s *Session, cmd model.Command, want int) (model.TagDomain, []string, error) {
	args := cmd.Positional()
	if len(args) == want+1 {
		domain, err := model.ParseTagDomain(args[0])
		if err != nil {
			return "", nil, usage("%v", err)
		}
		return domain, args[1:], nil
	}
	if len(args) == want {
		return s.View.Domain(), args, nil
	}
	return "", nil, fmt.Errorf("%w: wrong number of arguments", ErrUsage)
}

func listing(s *Session, domain model.TagDomain) TagListing {
	return TagListing{
		Domain:   domain,
		Tags:     s.DataManager.TagList(domain),
		Selected: s.DataManager.Selection(domain),
	}
}

// handleTagAdd handles the tag add command
func handleTagAdd(s *Session, cmd model.Command) (interface{}, error) {
	domain, args, err := domainArgs(s, cmd, 1)
	if err != nil {
		return nil, fmt.Errorf("tag add [asana|flow] <name>: %w", err)
	}
	if err := s.DataManager.TagCreate(domain, args[0]); err != nil {
		return nil, fmt.Errorf("failed to add tag: %w", err)
	}
	return listing(s, domain), nil
}

// handleTagRename handles the tag rename command
func handleTagRename(s *Session, cmd model.Command) (interface{}, error) {
	domain, args, err := domainArgs(s, cmd, 2)
	if err != nil {
		return nil, fmt.Errorf("tag rename [asana|flow] <old> <new>: %w", err)
	}
	if err := s.DataManager.TagRename(domain, args[0], args[1]); err != nil {
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return listing(s, domain), nil
}

// handleTagRemove removes a tag after the user confirms
func handleTagRemove(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	domain, args, err := domainArgs(s, cmd, 1)
	if err != nil {
		return nil, fmt.Errorf("tag remove [asana|flow] <name> [--yes]: %w", err)
	}
	name := strings.TrimSpace(args[0])

	// Check before asking so the prompt is never shown for a missing tag
	if !containsTag(s.DataManager.TagList(domain), name) {
		return nil, fmt.Errorf("failed to remove tag: %w", data.ErrTagNotFound)
	}

	ok, err := s.confirm(cmd, fmt.Sprintf("Remove %s tag %q from the registry and every %s?", domain, name, domain))
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info(ctx, "Tag removal declined", log.Fields{"domain": string(domain), "tag": name})
		return "Tag removal cancelled", nil
	}

	if err := s.DataManager.TagRemove(domain, name); err != nil {
		return nil, fmt.Errorf("failed to remove tag: %w", err)
	}
	return listing(s, domain), nil
}

// handleTagList handles the tag list command
func handleTagList(s *Session, cmd model.Command) (interface{}, error) {
	domain, _, err := domainArgs(s, cmd, 0)
	if err != nil {
		return nil, fmt.Errorf("tag list [asana|flow]: %w", err)
	}
	return listing(s, domain), nil
}

// handleFilterToggle handles the filter toggle command
func handleFilterToggle(s *Session, cmd model.Command) (interface{}, error) {
	domain, args, err := domainArgs(s, cmd, 1)
	if err != nil {
		return nil, fmt.Errorf("filter toggle [asana|flow] <tag>: %w", err)
	}
	if _, err := s.DataManager.TagToggle(domain, args[0]); err != nil {
		return nil, fmt.Errorf("failed to toggle filter: %w", err)
	}
	return listing(s, domain), nil
}

// handleFilterClear handles the filter clear command
func handleFilterClear(s *Session, cmd model.Command) (interface{}, error) {
	domain, _, err := domainArgs(s, cmd, 0)
	if err != nil {
		return nil, fmt.Errorf("filter clear [asana|flow]: %w", err)
	}
	s.DataManager.SelectionClear(domain)
	return listing(s, domain), nil
}

// handleFilterShow returns the selections of both domains
func handleFilterShow(s *Session, cmd model.Command) (interface{}, error) {
	return []TagListing{listing(s, model.DomainAsana), listing(s, model.DomainFlow)}, nil
}

func containsTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}
