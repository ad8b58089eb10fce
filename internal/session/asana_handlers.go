package session

import (
	"context"
	"fmt"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// initAsanaCommandHandlers initializes asana command handlers
func initAsanaCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleAsanaAdd,
		"list":   handleAsanaList,
		"show":   handleAsanaShow,
		"update": handleAsanaUpdate,
		"delete": handleAsanaDelete,
		"move":   handleAsanaMove,
		"image":  handleAsanaImage,
		"edit":   handleAsanaEdit,
		"save":   handleEditSave,
		"cancel": handleEditCancel,
	}
}

// handleAsanaAdd handles the asana add command
func handleAsanaAdd(s *Session, cmd model.Command) (interface{}, error) {
	return s.DataManager.AsanaAdd(), nil
}

// handleAsanaList returns the asanas passing the current tag filter, or all of them with --all
func handleAsanaList(s *Session, cmd model.Command) (interface{}, error) {
	if cmd.HasFlag("--all") {
		return s.DataManager.AsanaList(), nil
	}
	return s.DataManager.FilterAsanas(), nil
}

// handleAsanaShow handles the asana show command
func handleAsanaShow(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 1 {
		return nil, usage("asana show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return s.DataManager.AsanaGet(id)
}

// handleAsanaUpdate handles the asana update command
func handleAsanaUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	args := cmd.Positional()
	if len(args) < 1 {
		return nil, usage("asana update <id> [name=..] [note=..] [image=..] [tags=a,b]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}

	patch, ok := cmd.Payload.(model.AsanaPatch)
	if !ok {
		fields, err := parseFields(args[1:], "name", "note", "image", "tags")
		if err != nil {
			return nil, err
		}
		patch = asanaPatchFromFields(fields)
	}

	asana, err := s.DataManager.AsanaUpdate(id, patch)
	if err != nil {
		s.logger.Warn(ctx, "Asana update rejected", log.Fields{"asanaID": id, "error": err})
		return nil, fmt.Errorf("failed to update asana: %w", err)
	}
	return asana, nil
}

func asanaPatchFromFields(fields map[string]string) model.AsanaPatch {
	var patch model.AsanaPatch
	if v, ok := fields["name"]; ok {
		patch.Name = &v
	}
	if v, ok := fields["note"]; ok {
		patch.Note = &v
	}
	if v, ok := fields["image"]; ok {
		patch.ImageURL = &v
	}
	if v, ok := fields["tags"]; ok {
		patch.Tags = splitList(v)
	}
	return patch
}

// handleAsanaDelete handles the asana delete command
func handleAsanaDelete(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 1 {
		return nil, usage("asana delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.AsanaDelete(id); err != nil {
		return nil, fmt.Errorf("failed to delete asana: %w", err)
	}
	return fmt.Sprintf("Asana %d deleted", id), nil
}

// handleAsanaMove handles the asana move command
func handleAsanaMove(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 2 {
		return nil, usage("asana move <from> <to>")
	}
	from, err := parseIndex(args[0])
	if err != nil {
		return nil, err
	}
	to, err := parseIndex(args[1])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.AsanaMove(from, to); err != nil {
		return nil, fmt.Errorf("failed to move asana: %w", err)
	}
	return s.DataManager.AsanaList(), nil
}

// handleAsanaImage starts reading an image file for an asana. The image is
// attached once the read finishes.
func handleAsanaImage(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 2 {
		return nil, usage("asana image <id> <path>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.ImageLoad(s.Context(), id, args[1]); err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return fmt.Sprintf("Loading image for asana %d", id), nil
}

// handleAsanaEdit handles the asana edit command
func handleAsanaEdit(s *Session, cmd model.Command) (interface{}, error) {
	return handleEditBegin(s, cmd, model.DomainAsana)
}

func handleEditBegin(s *Session, cmd model.Command, kind model.EntityKind) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 1 {
		return nil, usage("%s edit <id>", kind)
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.EditBegin(kind, id); err != nil {
		return nil, fmt.Errorf("failed to edit %s: %w", kind, err)
	}
	return fmt.Sprintf("Editing %s %d", kind, id), nil
}

// handleEditSave ends editing, keeping the current values
func handleEditSave(s *Session, cmd model.Command) (interface{}, error) {
	kind := model.EntityKind(cmd.Scope)
	id, _ := s.DataManager.Editing(kind)
	if err := s.DataManager.EditSave(kind); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Saved %s %d", kind, id), nil
}

// handleEditCancel ends editing, restoring the values from before the edit
func handleEditCancel(s *Session, cmd model.Command) (interface{}, error) {
	kind := model.EntityKind(cmd.Scope)
	id, _ := s.DataManager.Editing(kind)
	if err := s.DataManager.EditCancel(kind); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Reverted %s %d", kind, id), nil
}
