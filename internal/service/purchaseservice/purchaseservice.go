package purchaseservice

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
	"github.com/ddanilin/virtshop/internal/service/inventoryservice"
	"github.com/ddanilin/virtshop/internal/uow"
)

type UserRepo interface {
	FindUser(ctx context.Context, userID int) (*domain.User, error)
}

type ProductRepo interface {
	FindProduct(ctx context.Context, productID int) (*domain.Product, error)
}

type InventoryRepo interface {
	FindInventory(ctx context.Context, productID, userID int) (*domain.Inventory, error)
	ListInventory(ctx context.Context, userID int) ([]domain.Inventory, error)
}

const idempotencyTTL = 5 * time.Minute

type Service struct {
	userRepo      UserRepo
	productRepo   ProductRepo
	inventoryRepo InventoryRepo
	uow           uow.Manager
	cache         cache.Cache

	// group coalesces concurrent requests carrying the same idempotency
	// hash, so duplicates racing past the cache-miss check execute once
	// per process and share the reply.
	group singleflight.Group
}

func New(userRepo UserRepo, productRepo ProductRepo, inventoryRepo InventoryRepo, m uow.Manager, c cache.Cache) *Service {
	return &Service{
		userRepo:      userRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		uow:           m,
		cache:         c,
	}
}

type PurchaseResult struct {
	Message   string `json:"message"`
	ProductID int    `json:"product_id"`
	Price     int    `json:"price"`
	Balance   int    `json:"balance"`
}

type ConsumeResult struct {
	Message          string `json:"message"`
	ProductID        int    `json:"product_id"`
	ProductName      string `json:"product_name"`
	PreviousQuantity int    `json:"previous_quantity"`
	CurrentQuantity  int    `json:"current_quantity"`
}

// AddPurchase charges the user the product price and grants the requested
// units, creating the inventory row on first purchase or bumping its quantity
// on repeat purchases. The user, inventory and transaction rows commit
// together with the refreshed inventory view and the idempotency record.
func (s *Service) AddPurchase(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*PurchaseResult, error) {
	v, err, _ := s.group.Do(idempotencyHash, func() (any, error) {
		return s.addPurchase(ctx, productID, userID, quantity, idempotencyHash)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PurchaseResult), nil
}

func (s *Service) addPurchase(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := s.uow.Do(ctx, func(ctx context.Context, scope uow.Scope) error {
		cached, err := s.cache.Get(ctx, idempotencyHash)
		if err == nil {
			result = &PurchaseResult{}
			return json.Unmarshal([]byte(cached), result)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return err
		}

		product, err := s.productRepo.FindProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return apperrors.ErrProductNotFound
		}

		user, err := s.userRepo.FindUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}

		inventory, err := s.inventoryRepo.FindInventory(ctx, productID, userID)
		if err != nil {
			return err
		}
		if inventory != nil {
			if err := inventory.UpdateQuantity(user, quantity); err != nil {
				return err
			}
		} else {
			inventory = domain.NewInventory(user, product, quantity)
		}

		if err := user.RemoveFunds(product.Price); err != nil {
			return err
		}

		// The charge settles in-process for now, so the transaction is
		// recorded completed right away instead of passing through PENDING.
		// Amount holds purchased units; purchase-count analytics sum it.
		txn := &domain.Transaction{
			UserID:    user.ID,
			ProductID: product.ID,
			Amount:    quantity,
			Status:    domain.CompletedTransaction,
		}

		if err := scope.Persist(ctx, user, inventory, txn); err != nil {
			return err
		}

		// Refresh the inventory view inside a nested scope: the savepoint
		// keeps the read consistent with the rows persisted above while the
		// staged cache write still waits for the outermost commit.
		err = s.uow.Do(ctx, func(ctx context.Context, nested uow.Scope) error {
			rows, err := s.inventoryRepo.ListInventory(ctx, userID)
			if err != nil {
				return err
			}
			view, err := json.Marshal(inventoryservice.NewView(rows))
			if err != nil {
				return err
			}
			nested.CacheSet(inventoryservice.InventoryKey(userID), string(view), inventoryservice.InventoryTTL)
			return nil
		})
		if err != nil {
			return err
		}

		result = &PurchaseResult{
			Message:   "Product purchased",
			ProductID: product.ID,
			Price:     product.Price,
			Balance:   user.Balance,
		}
		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}
		scope.CacheSet(idempotencyHash, string(payload), idempotencyTTL)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			zap.L().Error("failed to add purchase",
				zap.Int("user_id", userID), zap.Int("product_id", productID), zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}

// ConsumeProduct spends owned units of a product and refreshes the cached
// inventory view in the same scope.
func (s *Service) ConsumeProduct(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*ConsumeResult, error) {
	v, err, _ := s.group.Do(idempotencyHash, func() (any, error) {
		return s.consumeProduct(ctx, productID, userID, quantity, idempotencyHash)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ConsumeResult), nil
}

func (s *Service) consumeProduct(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*ConsumeResult, error) {
	var result *ConsumeResult

	err := s.uow.Do(ctx, func(ctx context.Context, scope uow.Scope) error {
		cached, err := s.cache.Get(ctx, idempotencyHash)
		if err == nil {
			result = &ConsumeResult{}
			return json.Unmarshal([]byte(cached), result)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return err
		}

		inventory, err := s.inventoryRepo.FindInventory(ctx, productID, userID)
		if err != nil {
			return err
		}
		if inventory == nil {
			return apperrors.ErrInventoryNotFound
		}

		prevQuantity := inventory.Quantity
		if err := inventory.DecreaseQuantity(quantity); err != nil {
			return err
		}

		if inventory.Quantity >= 0 {
			if err := scope.Persist(ctx, inventory); err != nil {
				return err
			}
		} else {
			// Unreachable while DecreaseQuantity floors at zero.
			// TODO: drop the delete branch once quantity audits confirm no negative rows.
			if err := scope.Delete(ctx, inventory); err != nil {
				return err
			}
		}

		rows, err := s.inventoryRepo.ListInventory(ctx, userID)
		if err != nil {
			return err
		}
		view, err := json.Marshal(inventoryservice.NewView(rows))
		if err != nil {
			return err
		}
		scope.CacheSet(inventoryservice.InventoryKey(userID), string(view), inventoryservice.InventoryTTL)

		result = &ConsumeResult{
			Message:          "Product consumed",
			ProductID:        inventory.ProductID,
			ProductName:      inventory.Product.Name,
			PreviousQuantity: prevQuantity,
			CurrentQuantity:  inventory.Quantity,
		}
		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}
		scope.CacheSet(idempotencyHash, string(payload), idempotencyTTL)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			zap.L().Error("failed to consume product",
				zap.Int("user_id", userID), zap.Int("product_id", productID), zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}
