package fundsservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ddanilin/virtshop/internal/apperrors"
	"github.com/ddanilin/virtshop/internal/cache"
	"github.com/ddanilin/virtshop/internal/domain"
	"github.com/ddanilin/virtshop/internal/uow"
)

type UserRepo interface {
	FindUser(ctx context.Context, userID int) (*domain.User, error)
}

const idempotencyTTL = 5 * time.Minute

type Service struct {
	userRepo    UserRepo
	uow         uow.Manager
	cache       cache.Cache
	maxFundsAdd int

	// group coalesces concurrent requests carrying the same idempotency
	// hash, so duplicates racing past the cache-miss check execute once
	// per process and share the reply.
	group singleflight.Group
}

func New(userRepo UserRepo, m uow.Manager, c cache.Cache, maxFundsAdd int) *Service {
	return &Service{
		userRepo:    userRepo,
		uow:         m,
		cache:       c,
		maxFundsAdd: maxFundsAdd,
	}
}

type AddFundsResult struct {
	Message         string `json:"message"`
	UserID          int    `json:"user_id"`
	PreviousBalance int    `json:"previous_balance"`
	CurrentBalance  int    `json:"current_balance"`
}

func (s *Service) AddFunds(ctx context.Context, userID, amount int, idempotencyHash string) (*AddFundsResult, error) {
	v, err, _ := s.group.Do(idempotencyHash, func() (any, error) {
		return s.addFunds(ctx, userID, amount, idempotencyHash)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AddFundsResult), nil
}

func (s *Service) addFunds(ctx context.Context, userID, amount int, idempotencyHash string) (*AddFundsResult, error) {
	var result *AddFundsResult

	err := s.uow.Do(ctx, func(ctx context.Context, scope uow.Scope) error {
		cached, err := s.cache.Get(ctx, idempotencyHash)
		if err == nil {
			result = &AddFundsResult{}
			return json.Unmarshal([]byte(cached), result)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return err
		}

		user, err := s.userRepo.FindUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}

		prevBalance := user.Balance
		if err := user.AddFunds(amount, s.maxFundsAdd); err != nil {
			return err
		}

		if err := scope.Persist(ctx, user); err != nil {
			return err
		}

		result = &AddFundsResult{
			Message:         "Funds added",
			UserID:          user.ID,
			PreviousBalance: prevBalance,
			CurrentBalance:  user.Balance,
		}
		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}
		scope.CacheSet(idempotencyHash, string(payload), idempotencyTTL)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			zap.L().Error("failed to add funds", zap.Int("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}
