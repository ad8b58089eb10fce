package session

import (
	"context"
	"fmt"
	"strings"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// DropRequest is the structured form of a drop command
type DropRequest struct {
	AsanaID int64             `json:"asanaId"`
	Target  *model.DropTarget `json:"target"`
}

// ExitSignal is returned by the exit command
type ExitSignal struct{}

// Status summarizes the library for the status command
type Status struct {
	SessionID string     `json:"sessionId"`
	View      model.View `json:"view"`
	Asanas    int        `json:"asanas"`
	Flows     int        `json:"flows"`
	AsanaTags int        `json:"asanaTags"`
	FlowTags  int        `json:"flowTags"`
	Editing   []string   `json:"editing,omitempty"`
}

// initLibraryCommandHandlers initializes library command handlers
func initLibraryCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"export":   handleLibraryExport,
		"import":   handleLibraryImport,
		"document": handleLibraryDocument,
	}
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"status": handleSystemStatus,
		"exit":   handleSystemExit,
		"quit":   handleSystemExit,
	}
}

// parseDropTarget reads flow:<id>, asana:<id> or none.
func parseDropTarget(s string) (*model.DropTarget, error) {
	if strings.EqualFold(s, "none") {
		return nil, nil
	}
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil, usage("drop target must be flow:<id>, asana:<id> or none")
	}
	id, err := parseID(value)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(kind) {
	case "flow":
		return &model.DropTarget{Accepts: model.DropAcceptsAsana, FlowID: id}, nil
	case "asana":
		return &model.DropTarget{AsanaID: id}, nil
	default:
		return nil, usage("unknown drop target %q", kind)
	}
}

// handleDrop applies a finished drag of an asana
func handleDrop(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	req, ok := cmd.Payload.(DropRequest)
	if !ok {
		args := cmd.Positional()
		if len(args) != 2 {
			return nil, usage("drop <asana-id> flow:<id>|asana:<id>|none")
		}
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		target, err := parseDropTarget(args[1])
		if err != nil {
			return nil, err
		}
		req = DropRequest{AsanaID: id, Target: target}
	}

	mut, err := s.DataManager.Drop(req.AsanaID, req.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to apply drop: %w", err)
	}
	s.logger.Info(ctx, "Drop resolved", log.Fields{"asanaID": req.AsanaID, "mutation": mut.Kind.String()})
	return mut, nil
}

// handleView switches the session between the card and flow views
func handleView(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) == 0 {
		return s.View, nil
	}
	switch strings.ToLower(args[0]) {
	case "cards", "card", "asanas", "asana":
		s.View = model.ViewCards
	case "flows", "flow":
		s.View = model.ViewFlows
	default:
		return nil, usage("view cards|flows")
	}
	return s.View, nil
}

// fileAndFormat resolves the file and format arguments of export and import.
func fileAndFormat(s *Session, args []string) (string, storage.Format, error) {
	cfg := s.DataManager.Config
	path := cfg.ExportFile
	if len(args) > 0 {
		path = args[0]
	}

	formatName := ""
	switch {
	case len(args) > 1:
		formatName = args[1]
	case len(args) == 0:
		formatName = cfg.ExportFormat
	}
	if formatName == "" {
		return path, storage.FormatFromPath(path), nil
	}
	format, err := storage.ParseFormat(formatName)
	if err != nil {
		return "", "", usage("%v", err)
	}
	return path, format, nil
}

// handleLibraryExport writes the library to a file
func handleLibraryExport(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) > 2 {
		return nil, usage("library export [file] [json|yaml]")
	}
	path, format, err := fileAndFormat(s, args)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.LibraryExportFile(path, format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Library exported to %s", path), nil
}

// handleLibraryImport replaces the library from a file or a structured document
func handleLibraryImport(s *Session, cmd model.Command) (interface{}, error) {
	if doc, ok := cmd.Payload.(model.ExportDocument); ok {
		if err := s.DataManager.LibraryImport(doc); err != nil {
			return nil, fmt.Errorf("failed to import library: %w", err)
		}
		return handleSystemStatus(s, cmd)
	}

	args := cmd.Positional()
	if len(args) < 1 || len(args) > 2 {
		return nil, usage("library import <file> [json|yaml]")
	}
	path, format, err := fileAndFormat(s, args)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.LibraryImportFile(path, format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Library imported from %s", path), nil
}

// handleLibraryDocument returns the export document with its checksum
func handleLibraryDocument(s *Session, cmd model.Command) (interface{}, error) {
	doc := s.DataManager.LibraryExport()
	sum, err := storage.DocumentChecksum(doc)
	if err != nil {
		return nil, err
	}
	doc.Checksum = sum
	return doc, nil
}

// handleSystemStatus handles the system status command
func handleSystemStatus(s *Session, cmd model.Command) (interface{}, error) {
	dm := s.DataManager
	st := Status{
		SessionID: s.ID,
		View:      s.View,
		Asanas:    len(dm.AsanaList()),
		Flows:     len(dm.FlowList()),
		AsanaTags: len(dm.TagList(model.DomainAsana)),
		FlowTags:  len(dm.TagList(model.DomainFlow)),
	}
	for _, kind := range []model.EntityKind{model.DomainAsana, model.DomainFlow} {
		if id, ok := dm.Editing(kind); ok {
			st.Editing = append(st.Editing, fmt.Sprintf("%s %d", kind, id))
		}
	}
	return st, nil
}

// handleSystemExit handles the exit and quit commands
func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	return ExitSignal{}, nil
}
