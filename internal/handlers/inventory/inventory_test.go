package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/ddanilin/virtshop/internal/domain"
	"github.com/ddanilin/virtshop/internal/dto"
	"github.com/ddanilin/virtshop/internal/service/inventoryservice"
	"github.com/ddanilin/virtshop/pkg/auth"
)

func NewMock(t *testing.T) (*InventoryHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	t.Cleanup(ctrl.Finish)
	return handler, service
}

func newInventoryRequest(userID int, pathUserID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/users/"+pathUserID+"/inventory", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", pathUserID)
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestGetInventoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	purchasedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		pathUserID   string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:       "Inventory returned",
			pathUserID: "1",
			prepareMock: func() {
				service.EXPECT().
					ShowInventory(gomock.Any(), 1).
					Return([]inventoryservice.InventoryItem{
						{ProductID: 2, Name: "Health potion", Type: domain.ConsumableProduct, Price: 100, Quantity: 3, PurchasedAt: purchasedAt},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:       "Empty inventory",
			pathUserID: "1",
			prepareMock: func() {
				service.EXPECT().
					ShowInventory(gomock.Any(), 1).
					Return([]inventoryservice.InventoryItem{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "Foreign user inventory",
			pathUserID:   "2",
			prepareMock:  func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Invalid user id",
			pathUserID:   "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:       "Internal server error",
			pathUserID: "1",
			prepareMock: func() {
				service.EXPECT().
					ShowInventory(gomock.Any(), 1).
					Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.GetInventory(w, newInventoryRequest(1, tt.pathUserID))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.InventoryItemResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestGetPopularProductsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:  "Defaults applied",
			query: "",
			prepareMock: func() {
				service.EXPECT().
					ShowPopularProducts(gomock.Any(), 0, time.Time{}).
					Return([]domain.PopularProduct{
						{ProductID: 2, Name: "Health potion", Price: 100, Type: domain.ConsumableProduct, PurchaseCount: 900},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:  "Explicit window",
			query: "?limit=3&start_date=2024-03-01",
			prepareMock: func() {
				service.EXPECT().
					ShowPopularProducts(gomock.Any(), 3, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
					Return([]domain.PopularProduct{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "Invalid limit",
			query:        "?limit=abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Non-positive limit",
			query:        "?limit=0",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid start_date",
			query:        "?start_date=01-03-2024",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Internal server error",
			query: "",
			prepareMock: func() {
				service.EXPECT().
					ShowPopularProducts(gomock.Any(), 0, time.Time{}).
					Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/analytics/popular-products"+tt.query, nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.GetPopularProducts(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.PopularProductResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}
