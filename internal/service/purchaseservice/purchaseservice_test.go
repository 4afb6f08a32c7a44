package purchaseservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/ddanilin/virtshop/internal/apperrors"
	"github.com/ddanilin/virtshop/internal/cache"
	"github.com/ddanilin/virtshop/internal/domain"
	"github.com/ddanilin/virtshop/internal/service/inventoryservice"
	"github.com/ddanilin/virtshop/internal/uow"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockProductRepo, *MockInventoryRepo, *uow.MemoryManager, *cache.MemoryCache) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	productRepo := NewMockProductRepo(ctrl)
	inventoryRepo := NewMockInventoryRepo(ctrl)
	memCache := cache.NewMemory()
	manager := uow.NewMemory(memCache)
	service := New(userRepo, productRepo, inventoryRepo, manager, memCache)
	t.Cleanup(ctrl.Finish)
	return service, userRepo, productRepo, inventoryRepo, manager, memCache
}

func persistedTransaction(t *testing.T, manager *uow.MemoryManager) *domain.Transaction {
	t.Helper()
	for _, entity := range manager.Persisted {
		if txn, ok := entity.(*domain.Transaction); ok {
			return txn
		}
	}
	t.Fatal("no transaction persisted")
	return nil
}

func potion() *domain.Product {
	return &domain.Product{ID: 2, Name: "Health potion", Price: 100, Type: domain.ConsumableProduct, IsActive: true}
}

func sword() *domain.Product {
	return &domain.Product{ID: 5, Name: "Sword", Price: 500, Type: domain.PermanentProduct, IsActive: true}
}

func TestAddPurchase(t *testing.T) {
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		prepareMock    func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo)
		expectedError  error
		expectedResult *PurchaseResult
	}{
		{
			name: "First purchase creates the inventory row",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
				userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)
				inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
					{ID: 10, UserID: 1, ProductID: 2, Quantity: 1, PurchasedAt: purchasedAt, Product: potion()},
				}, nil)
			},
			expectedResult: &PurchaseResult{Message: "Product purchased", ProductID: 2, Price: 100, Balance: 900},
		},
		{
			name: "Repeat purchase bumps the quantity",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
				userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 900}, nil)
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
					ID: 10, UserID: 1, ProductID: 2, Quantity: 1, PurchasedAt: purchasedAt, Product: potion(),
				}, nil)
				inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
					{ID: 10, UserID: 1, ProductID: 2, Quantity: 2, PurchasedAt: purchasedAt, Product: potion()},
				}, nil)
			},
			expectedResult: &PurchaseResult{Message: "Product purchased", ProductID: 2, Price: 100, Balance: 800},
		},
		{
			name: "Unknown product",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(nil, nil)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
		{
			name: "Inactive product",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				inactive := potion()
				inactive.IsActive = false
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(inactive, nil)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
		{
			name: "Unknown user",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
				userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name: "Insufficient balance",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
				userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 50}, nil)
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)
			},
			expectedError: apperrors.ErrInsufficientBalance,
		},
		{
			name: "Permanent product already owned",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 5).Return(sword(), nil)
				userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 5, 1).Return(&domain.Inventory{
					ID: 11, UserID: 1, ProductID: 5, Quantity: 1, PurchasedAt: purchasedAt, Product: sword(),
				}, nil)
			},
			expectedError: apperrors.ErrAlreadyOwned,
		},
		{
			name: "Repository error",
			prepareMock: func(userRepo *MockUserRepo, productRepo *MockProductRepo, inventoryRepo *MockInventoryRepo) {
				productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, productRepo, inventoryRepo, manager, _ := NewMock(t)
			tt.prepareMock(userRepo, productRepo, inventoryRepo)

			productID := 2
			if tt.name == "Permanent product already owned" {
				productID = 5
			}
			result, err := service.AddPurchase(context.Background(), productID, 1, 1, "hash-"+tt.name)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
				assert.Zero(t, manager.Commits)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
				assert.Equal(t, 1, manager.Commits)
				assert.Len(t, manager.Persisted, 3)
				assert.Equal(t, 1, persistedTransaction(t, manager).Amount)
			}
		})
	}
}

func TestAddPurchase_RepeatedPurchases(t *testing.T) {
	service, userRepo, productRepo, inventoryRepo, manager, memCache := NewMock(t)
	ctx := context.Background()
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil).Times(2)
	userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
	userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 900}, nil)
	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)
	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
		ID: 10, UserID: 1, ProductID: 2, Quantity: 1, PurchasedAt: purchasedAt, Product: potion(),
	}, nil)
	inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
		{ID: 10, UserID: 1, ProductID: 2, Quantity: 1, PurchasedAt: purchasedAt, Product: potion()},
	}, nil)
	inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
		{ID: 10, UserID: 1, ProductID: 2, Quantity: 2, PurchasedAt: purchasedAt, Product: potion()},
	}, nil)

	first, err := service.AddPurchase(ctx, 2, 1, 1, "purchase-1")
	assert.NoError(t, err)
	assert.Equal(t, 900, first.Balance)

	second, err := service.AddPurchase(ctx, 2, 1, 1, "purchase-2")
	assert.NoError(t, err)
	assert.Equal(t, 800, second.Balance)

	assert.Equal(t, 2, manager.Commits)

	// The cached view reflects the second purchase.
	cached, err := memCache.Get(ctx, inventoryservice.InventoryKey(1))
	assert.NoError(t, err)
	var items []inventoryservice.InventoryItem
	assert.NoError(t, json.Unmarshal([]byte(cached), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddPurchase_MultiUnit(t *testing.T) {
	service, userRepo, productRepo, inventoryRepo, manager, _ := NewMock(t)
	ctx := context.Background()
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
	userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)
	inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
		{ID: 10, UserID: 1, ProductID: 2, Quantity: 3, PurchasedAt: purchasedAt, Product: potion()},
	}, nil)

	result, err := service.AddPurchase(ctx, 2, 1, 3, "purchase-multi-1")
	assert.NoError(t, err)

	// The price is charged once per purchase regardless of units.
	assert.Equal(t, 900, result.Balance)

	// The transaction amount records units, so summing amounts over
	// completed transactions counts purchases for the popularity ranking.
	assert.Equal(t, 3, persistedTransaction(t, manager).Amount)

	var inv *domain.Inventory
	for _, entity := range manager.Persisted {
		if i, ok := entity.(*domain.Inventory); ok {
			inv = i
		}
	}
	assert.NotNil(t, inv)
	assert.Equal(t, 3, inv.Quantity)
}

func TestAddPurchase_IdempotentReplay(t *testing.T) {
	service, userRepo, productRepo, inventoryRepo, manager, memCache := NewMock(t)
	ctx := context.Background()
	hash := "purchase-idem-1"

	productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil).Times(1)
	userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil).Times(1)
	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil).Times(1)
	inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{}, nil).Times(1)

	first, err := service.AddPurchase(ctx, 2, 1, 1, hash)
	assert.NoError(t, err)

	cached, err := memCache.Get(ctx, hash)
	assert.NoError(t, err)
	expected, _ := json.Marshal(first)
	assert.JSONEq(t, string(expected), cached)

	// Replay charges nothing: no second transaction, no second commit.
	second, err := service.AddPurchase(ctx, 2, 1, 1, hash)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, manager.Commits)
	assert.Len(t, manager.Persisted, 3)
}

func TestAddPurchase_PersistFailureLeavesCacheCold(t *testing.T) {
	service, userRepo, productRepo, inventoryRepo, manager, memCache := NewMock(t)
	ctx := context.Background()
	hash := "purchase-fail-1"

	productRepo.EXPECT().FindProduct(gomock.Any(), 2).Return(potion(), nil)
	userRepo.EXPECT().FindUser(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)

	manager.PersistErr = func(entity any) error {
		if _, ok := entity.(*domain.Inventory); ok {
			return apperrors.ErrPurchaseConflict
		}
		return nil
	}

	_, err := service.AddPurchase(ctx, 2, 1, 1, hash)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, manager.Commits)

	_, err = memCache.Get(ctx, hash)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = memCache.Get(ctx, inventoryservice.InventoryKey(1))
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestConsumeProduct(t *testing.T) {
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		quantity       int
		prepareMock    func(inventoryRepo *MockInventoryRepo)
		expectedError  error
		expectedResult *ConsumeResult
	}{
		{
			name:     "Consume one unit",
			quantity: 1,
			prepareMock: func(inventoryRepo *MockInventoryRepo) {
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
					ID: 10, UserID: 1, ProductID: 2, Quantity: 3, PurchasedAt: purchasedAt, Product: potion(),
				}, nil)
				inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
					{ID: 10, UserID: 1, ProductID: 2, Quantity: 2, PurchasedAt: purchasedAt, Product: potion()},
				}, nil)
			},
			expectedResult: &ConsumeResult{
				Message: "Product consumed", ProductID: 2, ProductName: "Health potion",
				PreviousQuantity: 3, CurrentQuantity: 2,
			},
		},
		{
			name:     "Consume down to zero",
			quantity: 3,
			prepareMock: func(inventoryRepo *MockInventoryRepo) {
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
					ID: 10, UserID: 1, ProductID: 2, Quantity: 3, PurchasedAt: purchasedAt, Product: potion(),
				}, nil)
				inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
					{ID: 10, UserID: 1, ProductID: 2, Quantity: 0, PurchasedAt: purchasedAt, Product: potion()},
				}, nil)
			},
			expectedResult: &ConsumeResult{
				Message: "Product consumed", ProductID: 2, ProductName: "Health potion",
				PreviousQuantity: 3, CurrentQuantity: 0,
			},
		},
		{
			name:     "Not owned",
			quantity: 1,
			prepareMock: func(inventoryRepo *MockInventoryRepo) {
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, nil)
			},
			expectedError: apperrors.ErrInventoryNotFound,
		},
		{
			name:     "Insufficient quantity",
			quantity: 5,
			prepareMock: func(inventoryRepo *MockInventoryRepo) {
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
					ID: 10, UserID: 1, ProductID: 2, Quantity: 3, PurchasedAt: purchasedAt, Product: potion(),
				}, nil)
			},
			expectedError: apperrors.ErrInsufficientStock,
		},
		{
			name:     "Repository error",
			quantity: 1,
			prepareMock: func(inventoryRepo *MockInventoryRepo) {
				inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, inventoryRepo, manager, _ := NewMock(t)
			tt.prepareMock(inventoryRepo)

			result, err := service.ConsumeProduct(context.Background(), 2, 1, tt.quantity, "hash-"+tt.name)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
				assert.Zero(t, manager.Commits)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
				assert.Equal(t, 1, manager.Commits)
				assert.Len(t, manager.Persisted, 1)
				assert.Empty(t, manager.Deleted)
			}
		})
	}
}

func TestConsumeProduct_RefreshesInventoryView(t *testing.T) {
	service, _, _, inventoryRepo, _, memCache := NewMock(t)
	ctx := context.Background()
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// A stale view is already cached; consuming must replace it.
	stale, _ := json.Marshal([]inventoryservice.InventoryItem{{ProductID: 2, Quantity: 3}})
	assert.NoError(t, memCache.Set(ctx, inventoryservice.InventoryKey(1), string(stale), inventoryservice.InventoryTTL))

	inventoryRepo.EXPECT().FindInventory(gomock.Any(), 2, 1).Return(&domain.Inventory{
		ID: 10, UserID: 1, ProductID: 2, Quantity: 3, PurchasedAt: purchasedAt, Product: potion(),
	}, nil)
	inventoryRepo.EXPECT().ListInventory(gomock.Any(), 1).Return([]domain.Inventory{
		{ID: 10, UserID: 1, ProductID: 2, Quantity: 2, PurchasedAt: purchasedAt, Product: potion()},
	}, nil)

	_, err := service.ConsumeProduct(ctx, 2, 1, 1, "consume-view-1")
	assert.NoError(t, err)

	cached, err := memCache.Get(ctx, inventoryservice.InventoryKey(1))
	assert.NoError(t, err)
	var items []inventoryservice.InventoryItem
	assert.NoError(t, json.Unmarshal([]byte(cached), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
