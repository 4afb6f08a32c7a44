package uow

import (
	"context"
	"time"

	"github.com/ddanilin/virtshop/internal/cache"
)

// MemoryManager is an in-process Manager double for service tests. It records
// persisted and deleted entities, counts outermost commits and applies staged
// cache ops to the given Cache only when the scope exits cleanly.
type MemoryManager struct {
	Cache cache.Cache

	// PersistErr, when set, is consulted per entity to inject failures.
	PersistErr func(entity any) error

	Persisted []any
	Deleted   []any
	Commits   int
}

func NewMemory(c cache.Cache) *MemoryManager {
	return &MemoryManager{Cache: c}
}

type memScopeKey struct{}

type memoryScope struct {
	m         *MemoryManager
	persisted []any
	deleted   []any
	ops       []cacheOp
}

func (m *MemoryManager) Do(ctx context.Context, fn func(ctx context.Context, s Scope) error) error {
	if s, ok := ctx.Value(memScopeKey{}).(*memoryScope); ok {
		// Nested level: share the root staging; an inner error propagates
		// and discards everything when the outermost Do returns it.
		return fn(ctx, s)
	}

	s := &memoryScope{m: m}
	err := fn(context.WithValue(ctx, memScopeKey{}, s), s)
	if err != nil {
		return err
	}

	m.Commits++
	m.Persisted = append(m.Persisted, s.persisted...)
	m.Deleted = append(m.Deleted, s.deleted...)
	for _, op := range s.ops {
		switch op.kind {
		case opSet:
			if err := m.Cache.Set(ctx, op.key, op.value, op.ttl); err != nil {
				return err
			}
		case opDelete:
			if err := m.Cache.Delete(ctx, op.key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *memoryScope) Persist(_ context.Context, entities ...any) error {
	for _, entity := range entities {
		if s.m.PersistErr != nil {
			if err := s.m.PersistErr(entity); err != nil {
				return err
			}
		}
		s.persisted = append(s.persisted, entity)
	}
	return nil
}

func (s *memoryScope) Delete(_ context.Context, entities ...any) error {
	s.deleted = append(s.deleted, entities...)
	return nil
}

func (s *memoryScope) CacheSet(key string, value string, ttl time.Duration) {
	s.ops = append(s.ops, cacheOp{kind: opSet, key: key, value: value, ttl: ttl})
}

func (s *memoryScope) CacheDelete(key string) {
	s.ops = append(s.ops, cacheOp{kind: opDelete, key: key})
}
