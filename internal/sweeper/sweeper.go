package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ddanilin/virtshop/internal/cache"
)

const deleteConcurrency = 8

// Service periodically purges cached inventory views. TTLs already bound
// staleness per key; the sweep bounds the total footprint of views belonging
// to users who stopped reading them.
type Service struct {
	cache    cache.Cache
	pattern  string
	interval time.Duration
}

func New(c cache.Cache, interval time.Duration) *Service {
	return &Service{
		cache:    c,
		pattern:  "inventory:*",
		interval: interval,
	}
}

// Start runs the sweep loop until the context is canceled. Callers that want
// it off the main goroutine start it in one; shutdown then waits for any
// in-flight sweep through that goroutine.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Cache sweeper started", zap.Duration("interval", s.interval))
	s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				zap.L().Error("Cache sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep deletes every key matching the inventory view pattern.
func (s *Service) Sweep(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(deleteConcurrency)

	var swept int
	it := s.cache.Iter(ctx, s.pattern, 100)
	for it.Next(ctx) {
		key := it.Key()
		swept++
		g.Go(func() error {
			return s.cache.Delete(ctx, key)
		})
	}
	if err := it.Err(); err != nil {
		g.Wait()
		return err
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("Cache sweep finished", zap.Int("keys", swept))
	return nil
}
