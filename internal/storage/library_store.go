package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// Keys under which the library collections are persisted.
const (
	KeyAsanas    = "asanas"
	KeyFlows     = "flows"
	KeyAsanaTags = "asanaTags"
	KeyFlowTags  = "flowTags"
	// KeyLegacyTags held a single vocabulary shared by both domains.
	KeyLegacyTags = "tags"
)

// Library is the full persisted state.
type Library struct {
	Asanas    []model.Asana
	Flows     []model.Flow
	AsanaTags []string
	FlowTags  []string
}

// LibraryStore encodes library collections into a KVStore
type LibraryStore struct {
	kv     KVStore
	logger *log.Logger
}

// NewLibraryStore creates a new LibraryStore instance
func NewLibraryStore(kv KVStore, logger *log.Logger) (*LibraryStore, error) {
	if kv == nil {
		return nil, errors.New("kv store is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	return &LibraryStore{kv: kv, logger: logger}, nil
}

// TagsKey returns the storage key of a domain's tag registry
func TagsKey(domain model.TagDomain) string {
	if domain == model.DomainFlow {
		return KeyFlowTags
	}
	return KeyAsanaTags
}

// load fetches a key and hands it to decode. Missing keys, read failures and
// corrupt values all yield found=false; the latter two are logged.
func (s *LibraryStore) load(ctx context.Context, key string, decode func([]byte) error) bool {
	data, ok, err := s.kv.Load(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "Failed to read stored collection", log.Fields{"key": key, "error": err})
		return false
	}
	if !ok {
		return false
	}
	if err := decode(data); err != nil {
		s.logger.Warn(ctx, "Stored collection is corrupt, using empty", log.Fields{"key": key, "error": err})
		return false
	}
	return true
}

// LoadAsanas returns the stored asanas, or an empty slice
func (s *LibraryStore) LoadAsanas(ctx context.Context) []model.Asana {
	asanas := []model.Asana{}
	s.load(ctx, KeyAsanas, func(data []byte) error {
		decoded, err := decodeAsanas(data)
		if err == nil {
			asanas = decoded
		}
		return err
	})
	return asanas
}

// LoadFlows returns the stored flows, or an empty slice
func (s *LibraryStore) LoadFlows(ctx context.Context) []model.Flow {
	flows := []model.Flow{}
	s.load(ctx, KeyFlows, func(data []byte) error {
		decoded, err := decodeFlows(data)
		if err == nil {
			flows = decoded
		}
		return err
	})
	return flows
}

// LoadTags returns the stored registry of a domain. When the domain key has
// never been written, the legacy shared registry is used instead.
func (s *LibraryStore) LoadTags(ctx context.Context, domain model.TagDomain) []string {
	tags := []string{}
	decode := func(data []byte) error {
		decoded, err := decodeTags(data)
		if err == nil {
			tags = decoded
		}
		return err
	}

	key := TagsKey(domain)
	if _, ok, err := s.kv.Load(ctx, key); err == nil && !ok {
		if s.load(ctx, KeyLegacyTags, decode) {
			s.logger.Info(ctx, "Seeded tag registry from legacy key", log.Fields{"domain": string(domain), "count": len(tags)})
		}
		return tags
	}
	s.load(ctx, key, decode)
	return tags
}

// LoadLibrary loads all four collections
func (s *LibraryStore) LoadLibrary(ctx context.Context) Library {
	lib := Library{
		Asanas:    s.LoadAsanas(ctx),
		Flows:     s.LoadFlows(ctx),
		AsanaTags: s.LoadTags(ctx, model.DomainAsana),
		FlowTags:  s.LoadTags(ctx, model.DomainFlow),
	}
	s.logger.Info(ctx, "Library loaded", log.Fields{
		"asanas":    len(lib.Asanas),
		"flows":     len(lib.Flows),
		"asanaTags": len(lib.AsanaTags),
		"flowTags":  len(lib.FlowTags),
	})
	return lib
}

func (s *LibraryStore) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.kv.Save(ctx, key, data)
}

// SaveAsanas replaces the stored asanas
func (s *LibraryStore) SaveAsanas(ctx context.Context, asanas []model.Asana) error {
	return s.save(ctx, KeyAsanas, NormalizeAsanas(asanas))
}

// SaveFlows replaces the stored flows
func (s *LibraryStore) SaveFlows(ctx context.Context, flows []model.Flow) error {
	return s.save(ctx, KeyFlows, NormalizeFlows(flows))
}

// SaveTags replaces the stored registry of a domain
func (s *LibraryStore) SaveTags(ctx context.Context, domain model.TagDomain, tags []string) error {
	return s.save(ctx, TagsKey(domain), NormalizeTags(tags))
}

// SaveLibrary writes every collection and joins the failures
func (s *LibraryStore) SaveLibrary(ctx context.Context, lib Library) error {
	return errors.Join(
		s.SaveAsanas(ctx, lib.Asanas),
		s.SaveFlows(ctx, lib.Flows),
		s.SaveTags(ctx, model.DomainAsana, lib.AsanaTags),
		s.SaveTags(ctx, model.DomainFlow, lib.FlowTags),
	)
}

// Close closes the underlying store
func (s *LibraryStore) Close() error {
	return s.kv.Close()
}
