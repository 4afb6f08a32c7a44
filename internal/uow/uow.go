package uow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ddanilin/virtshop/internal/cache"
	"github.com/ddanilin/virtshop/internal/pg"
)

// ErrScopeAborted is returned when the outermost scope body completes without
// an error even though a nested scope already rolled the transaction back.
var ErrScopeAborted = errors.New("unit of work: scope aborted by nested rollback")

type opKind int

const (
	opSet opKind = iota
	opDelete
)

// cacheOp is a staged cache command. Staged ops are executed in staging
// order, strictly after the outermost commit succeeds.
type cacheOp struct {
	kind  opKind
	key   string
	value string
	ttl   time.Duration
}

// Scope is one open unit-of-work level. Entity writes hit the transaction
// immediately (visible to reads within it); cache writes are deferred until
// the outermost scope commits, so the cache never runs ahead of the store.
type Scope interface {
	Persist(ctx context.Context, entities ...any) error
	Delete(ctx context.Context, entities ...any) error
	CacheSet(key string, value string, ttl time.Duration)
	CacheDelete(key string)
}

// Manager runs functions inside a unit-of-work scope. Calling Do again from
// within a running scope opens a nested level backed by a savepoint.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context, s Scope) error) error
}

type scopeKey struct{}

func withScope(ctx context.Context, s *txScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func scopeFrom(ctx context.Context) *txScope {
	s, _ := ctx.Value(scopeKey{}).(*txScope)
	return s
}

// TxManager is the pgx-backed Manager. One transaction per request; a request
// is handled by a single goroutine, so scope state needs no locking.
type TxManager struct {
	db    pg.TxBeginner
	cache cache.Cache
}

func NewTxManager(db pg.TxBeginner, c cache.Cache) *TxManager {
	return &TxManager{db: db, cache: c}
}

type txScope struct {
	tx    pgx.Tx
	root  *rootState
	cache cache.Cache
}

// rootState lives on the outermost scope: the staged cache-operation queue
// and the poisoned flag shared by every nested level. Nesting itself is
// detected through the context-carried scope.
type rootState struct {
	ops      []cacheOp
	poisoned bool
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context, s Scope) error) error {
	if parent := scopeFrom(ctx); parent != nil {
		return parent.nested(ctx, fn)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	s := &txScope{tx: tx, root: &rootState{}, cache: m.cache}
	ctx = withScope(pg.WithTx(ctx, tx), s)

	err = fn(ctx, s)

	if err != nil || s.root.poisoned {
		s.root.ops = nil
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.L().Error("rollback failed", zap.Error(rbErr))
		}
		if err == nil {
			err = ErrScopeAborted
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.root.ops = nil
		return fmt.Errorf("commit transaction: %w", err)
	}
	return s.flush(ctx)
}

// nested opens a savepoint-backed level under the receiver.
func (s *txScope) nested(ctx context.Context, fn func(ctx context.Context, s Scope) error) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}

	inner := &txScope{tx: sp, root: s.root, cache: s.cache}
	ctx = withScope(pg.WithTx(ctx, sp), inner)

	err = fn(ctx, inner)

	if err != nil {
		// The savepoint alone is not enough: a nested failure aborts every
		// enclosing level, and its staged ops must never run.
		s.root.poisoned = true
		s.root.ops = nil
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			zap.L().Error("savepoint rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		s.root.poisoned = true
		s.root.ops = nil
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// flush executes the staged cache queue after the commit is durable. A flush
// failure is surfaced: the idempotency record is then absent and the client
// retries against already-committed state.
func (s *txScope) flush(ctx context.Context) error {
	for _, op := range s.root.ops {
		var err error
		switch op.kind {
		case opSet:
			err = s.cache.Set(ctx, op.key, op.value, op.ttl)
		case opDelete:
			err = s.cache.Delete(ctx, op.key)
		}
		if err != nil {
			zap.L().Error("cache flush failed after commit",
				zap.String("key", op.key), zap.Error(err))
			s.root.ops = nil
			return fmt.Errorf("flush cache operations: %w", err)
		}
	}
	s.root.ops = nil
	return nil
}

func (s *txScope) CacheSet(key string, value string, ttl time.Duration) {
	s.root.ops = append(s.root.ops, cacheOp{kind: opSet, key: key, value: value, ttl: ttl})
}

func (s *txScope) CacheDelete(key string) {
	s.root.ops = append(s.root.ops, cacheOp{kind: opDelete, key: key})
}
