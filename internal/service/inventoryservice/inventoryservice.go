package inventoryservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ddanilin/virtshop/internal/cache"
	"github.com/ddanilin/virtshop/internal/domain"
)

type InventoryRepo interface {
	ListInventory(ctx context.Context, userID int) ([]domain.Inventory, error)
}

type ProductRepo interface {
	FindPopularProducts(ctx context.Context, startDate time.Time, limit int) ([]domain.PopularProduct, error)
}

const (
	// InventoryTTL caps how long a cached user inventory may serve reads.
	InventoryTTL = 5 * time.Minute
	popularTTL   = time.Hour

	defaultPopularLimit = 5
	defaultPopularDays  = 7
)

// InventoryKey is the cache key of a user's serialized inventory view. It is
// written by purchase/consume flows and read here, so the derivation is shared.
func InventoryKey(userID int) string {
	return fmt.Sprintf("inventory:%d", userID)
}

func popularProductsKey(startDate time.Time, limit int) string {
	return fmt.Sprintf("popular_products:%s:%d", startDate.Format("2006-01-02"), limit)
}

// InventoryItem is the cached, JSON-stable projection of one inventory row.
type InventoryItem struct {
	ProductID   int       `json:"product_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Price       int       `json:"price"`
	Quantity    int       `json:"quantity"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// NewView projects inventory rows into the cacheable item list.
func NewView(inventory []domain.Inventory) []InventoryItem {
	items := make([]InventoryItem, len(inventory))
	for i, inv := range inventory {
		items[i] = InventoryItem{
			ProductID:   inv.ProductID,
			Name:        inv.Product.Name,
			Type:        inv.Product.Type,
			Price:       inv.Product.Price,
			Quantity:    inv.Quantity,
			PurchasedAt: inv.PurchasedAt,
		}
	}
	return items
}

type Service struct {
	inventoryRepo InventoryRepo
	productRepo   ProductRepo
	cache         cache.Cache
}

func New(inventoryRepo InventoryRepo, productRepo ProductRepo, c cache.Cache) *Service {
	return &Service{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		cache:         c,
	}
}

// ShowInventory reads through the cache: hit serves the stored view, miss
// queries the repository and repopulates the key.
func (s *Service) ShowInventory(ctx context.Context, userID int) ([]InventoryItem, error) {
	key := InventoryKey(userID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var items []InventoryItem
		if err := json.Unmarshal([]byte(cached), &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}

	inventory, err := s.inventoryRepo.ListInventory(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list inventory", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	items := NewView(inventory)
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, string(payload), InventoryTTL); err != nil {
		zap.L().Error("failed to cache inventory view", zap.Error(err))
	}
	return items, nil
}

// ShowPopularProducts serves the aggregated purchase ranking, cached per
// (start date, limit) pair. Zero arguments select the defaults: top 5 over
// the last 7 days.
func (s *Service) ShowPopularProducts(ctx context.Context, limit int, startDate time.Time) ([]domain.PopularProduct, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if startDate.IsZero() {
		startDate = time.Now().AddDate(0, 0, -defaultPopularDays)
	}
	key := popularProductsKey(startDate, limit)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var products []domain.PopularProduct
		if err := json.Unmarshal([]byte(cached), &products); err != nil {
			return nil, err
		}
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}

	products, err := s.productRepo.FindPopularProducts(ctx, startDate, limit)
	if err != nil {
		zap.L().Error("failed to find popular products", zap.Error(err))
		return nil, err
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, string(payload), popularTTL); err != nil {
		zap.L().Error("failed to cache popular products", zap.Error(err))
	}
	return products, nil
}
