package data

import (
	"context"

	"yogaday/local-app/internal/event"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// TagsChange is the payload of the tag registry events.
type TagsChange struct {
	Domain model.TagDomain
	Tags   []string
}

// persister writes published changes to the library store. Saves are best
// effort: a failure is logged and the in-memory state stays authoritative.
type persister struct {
	store  *storage.LibraryStore
	logger *log.Logger
}

func (p *persister) report(ctx context.Context, key string, err error) {
	if err != nil {
		p.logger.Error(ctx, "Failed to persist collection", log.Fields{"key": key, "error": err})
		return
	}
	p.logger.Debug(ctx, "Collection persisted", log.Fields{"key": key})
}

func (p *persister) handleAsanasChanged(e event.Event) {
	ctx := context.Background()
	asanas, ok := e.Data.([]model.Asana)
	if !ok {
		p.logger.Error(ctx, "Invalid event data for AsanasChanged", nil)
		return
	}
	p.report(ctx, storage.KeyAsanas, p.store.SaveAsanas(ctx, asanas))
}

func (p *persister) handleFlowsChanged(e event.Event) {
	ctx := context.Background()
	flows, ok := e.Data.([]model.Flow)
	if !ok {
		p.logger.Error(ctx, "Invalid event data for FlowsChanged", nil)
		return
	}
	p.report(ctx, storage.KeyFlows, p.store.SaveFlows(ctx, flows))
}

func (p *persister) handleTagsChanged(e event.Event) {
	ctx := context.Background()
	change, ok := e.Data.(TagsChange)
	if !ok {
		p.logger.Error(ctx, "Invalid event data for "+e.Type.String(), nil)
		return
	}
	p.report(ctx, storage.TagsKey(change.Domain), p.store.SaveTags(ctx, change.Domain, change.Tags))
}

func (p *persister) handleLibraryReplaced(e event.Event) {
	ctx := context.Background()
	lib, ok := e.Data.(storage.Library)
	if !ok {
		p.logger.Error(ctx, "Invalid event data for LibraryReplaced", nil)
		return
	}
	p.report(ctx, "library", p.store.SaveLibrary(ctx, lib))
}
