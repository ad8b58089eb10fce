// Package data provides the library state for the Yoga Day application.
// It owns the asana and flow collections, both tag registries, the filter
// selections and the edit focus, and publishes a change for every mutation.
package data

import (
	"context"
	"fmt"

	"yogaday/local-app/internal/event"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

// imageQueueSize bounds the number of finished image reads waiting to be applied.
const imageQueueSize = 16

// DataManager is the library aggregate. It is not safe for concurrent use;
// the session manager runs every call on a single goroutine.
type DataManager struct {
	EventManager *event.EventManager
	Config       *model.Config
	Logger       *log.Logger

	persister *persister

	asanas   []model.Asana
	flows    []model.Flow
	tags     map[model.TagDomain][]string
	selected map[model.TagDomain][]string
	focus    map[model.EntityKind]*editFocus

	ids    *idAllocator
	images chan ImageResult
}

// NewDataManager creates a DataManager hydrated from the library store
func NewDataManager(store *storage.LibraryStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new DataManager", nil)

	if store == nil {
		logger.Error(ctx, "LibraryStore not initialized", nil)
		return nil, fmt.Errorf("library store not initialized")
	}
	if cfg == nil {
		logger.Error(ctx, "Config not initialized", nil)
		return nil, fmt.Errorf("config not initialized")
	}

	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
		persister:    &persister{store: store, logger: logger},
		tags:         make(map[model.TagDomain][]string),
		selected:     make(map[model.TagDomain][]string),
		focus:        make(map[model.EntityKind]*editFocus),
		ids:          newIDAllocator(),
		images:       make(chan ImageResult, imageQueueSize),
	}

	m.hydrate(store.LoadLibrary(ctx))

	// Persist every change as soon as it is published
	eventManager.Subscribe(event.AsanasChanged, m.persister.handleAsanasChanged)
	eventManager.Subscribe(event.FlowsChanged, m.persister.handleFlowsChanged)
	eventManager.Subscribe(event.AsanaTagsChanged, m.persister.handleTagsChanged)
	eventManager.Subscribe(event.FlowTagsChanged, m.persister.handleTagsChanged)
	eventManager.Subscribe(event.LibraryReplaced, m.persister.handleLibraryReplaced)

	logger.Info(ctx, "DataManager created successfully", nil)
	return m, nil
}

// hydrate replaces the in-memory collections and registers their identifiers.
func (m *DataManager) hydrate(lib storage.Library) {
	m.asanas = lib.Asanas
	m.flows = lib.Flows
	m.tags[model.DomainAsana] = lib.AsanaTags
	m.tags[model.DomainFlow] = lib.FlowTags
	for _, a := range m.asanas {
		m.ids.observe(a.ID)
	}
	for _, f := range m.flows {
		m.ids.observe(f.ID)
	}
}

// Close releases the underlying store
func (m *DataManager) Close() error {
	return m.persister.store.Close()
}

func (m *DataManager) publishAsanas() {
	m.EventManager.Publish(event.Event{Type: event.AsanasChanged, Data: cloneAsanas(m.asanas)})
}

func (m *DataManager) publishFlows() {
	m.EventManager.Publish(event.Event{Type: event.FlowsChanged, Data: cloneFlows(m.flows)})
}

func (m *DataManager) publishTags(domain model.TagDomain) {
	t := event.AsanaTagsChanged
	if domain == model.DomainFlow {
		t = event.FlowTagsChanged
	}
	m.EventManager.Publish(event.Event{Type: t, Data: TagsChange{Domain: domain, Tags: m.TagList(domain)}})
}

// publishDomain announces a change to the entity collection backing a tag domain.
func (m *DataManager) publishDomain(domain model.TagDomain) {
	if domain == model.DomainFlow {
		m.publishFlows()
		return
	}
	m.publishAsanas()
}

func (m *DataManager) asanaIndex(id int64) int {
	for i := range m.asanas {
		if m.asanas[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *DataManager) flowIndex(id int64) int {
	for i := range m.flows {
		if m.flows[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAsanas(asanas []model.Asana) []model.Asana {
	out := make([]model.Asana, len(asanas))
	for i, a := range asanas {
		out[i] = a.Clone()
	}
	return out
}

func cloneFlows(flows []model.Flow) []model.Flow {
	out := make([]model.Flow, len(flows))
	for i, f := range flows {
		out[i] = f.Clone()
	}
	return out
}
