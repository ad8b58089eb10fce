package data

import (
	"context"
	"fmt"

	"yogaday/local-app/internal/event"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// LibraryExport returns the persisted fields of the whole library
func (m *DataManager) LibraryExport() model.ExportDocument {
	return model.ExportDocument{
		Asanas:    m.AsanaList(),
		Flows:     m.FlowList(),
		AsanaTags: m.TagList(model.DomainAsana),
		FlowTags:  m.TagList(model.DomainFlow),
	}
}

// LibraryExportFile writes the library to a file
func (m *DataManager) LibraryExportFile(path string, format storage.Format) error {
	ctx := context.Background()
	if err := storage.FileExport(path, m.LibraryExport(), format); err != nil {
		m.Logger.Error(ctx, "Library export failed", log.Fields{"path": path, "error": err})
		return fmt.Errorf("failed to export library: %w", err)
	}
	m.Logger.Info(ctx, "Library exported", log.Fields{"path": path, "format": string(format)})
	return nil
}

// LibraryImportFile reads a file and replaces the library with it
func (m *DataManager) LibraryImportFile(path string, format storage.Format) error {
	doc, err := storage.FileImport(path, format)
	if err != nil {
		m.Logger.Error(context.Background(), "Library import failed", log.Fields{"path": path, "error": err})
		return fmt.Errorf("failed to import library: %w", err)
	}
	return m.LibraryImport(doc)
}

// LibraryImport validates the document and only then replaces all four
// collections. Edit focus is cleared and selections keep only surviving tags.
func (m *DataManager) LibraryImport(doc model.ExportDocument) error {
	ctx := context.Background()
	if err := storage.VerifyChecksum(doc); err != nil {
		m.Logger.Error(ctx, "Library import rejected", log.Fields{"error": err})
		return fmt.Errorf("%w: %w", ErrInvalidLibrary, err)
	}

	doc = storage.NormalizeDocument(doc)
	if err := validateDocument(doc); err != nil {
		m.Logger.Error(ctx, "Library import rejected", log.Fields{"error": err})
		return err
	}

	lib := storage.Library{
		Asanas:    doc.Asanas,
		Flows:     doc.Flows,
		AsanaTags: doc.AsanaTags,
		FlowTags:  doc.FlowTags,
	}
	m.editClear()
	m.hydrate(lib)
	for domain, sel := range m.selected {
		kept := make([]string, 0, len(sel))
		for _, t := range sel {
			if indexOf(m.tags[domain], t) >= 0 {
				kept = append(kept, t)
			}
		}
		m.selected[domain] = kept
	}

	m.EventManager.Publish(event.Event{Type: event.LibraryReplaced, Data: storage.Library{
		Asanas:    cloneAsanas(m.asanas),
		Flows:     cloneFlows(m.flows),
		AsanaTags: m.TagList(model.DomainAsana),
		FlowTags:  m.TagList(model.DomainFlow),
	}})

	m.Logger.Info(ctx, "Library imported", log.Fields{"asanas": len(m.asanas), "flows": len(m.flows)})
	return nil
}

// validateDocument checks that every asana and flow has a unique non-zero id.
func validateDocument(doc model.ExportDocument) error {
	seen := make(map[int64]bool, len(doc.Asanas))
	for i, a := range doc.Asanas {
		if a.ID == 0 {
			return fmt.Errorf("%w: asana %d has no id", ErrInvalidLibrary, i)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate asana id %d", ErrInvalidLibrary, a.ID)
		}
		seen[a.ID] = true
	}

	seen = make(map[int64]bool, len(doc.Flows))
	for i, f := range doc.Flows {
		if f.ID == 0 {
			return fmt.Errorf("%w: flow %d has no id", ErrInvalidLibrary, i)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate flow id %d", ErrInvalidLibrary, f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}
