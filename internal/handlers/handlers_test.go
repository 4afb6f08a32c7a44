package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/ddanilin/virtshop/docs"
	"github.com/ddanilin/virtshop/internal/handlers/funds"
	"github.com/ddanilin/virtshop/internal/handlers/inventory"
	"github.com/ddanilin/virtshop/internal/handlers/shop"
	"github.com/ddanilin/virtshop/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		FundsService:     funds.NewMockService(ctrl),
		PurchaseService:  shop.NewMockService(ctrl),
		InventoryService: inventory.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFundsHandler := NewMockFundsHandler(ctrl)
	mockShopHandler := NewMockShopHandler(ctrl)
	mockInventoryHandler := NewMockInventoryHandler(ctrl)

	mockFundsHandler.EXPECT().AddFunds(gomock.Any(), gomock.Any()).AnyTimes()
	mockShopHandler.EXPECT().Purchase(gomock.Any(), gomock.Any()).AnyTimes()
	mockShopHandler.EXPECT().Consume(gomock.Any(), gomock.Any()).AnyTimes()
	mockInventoryHandler.EXPECT().GetInventory(gomock.Any(), gomock.Any()).AnyTimes()
	mockInventoryHandler.EXPECT().GetPopularProducts(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		FundsHandler:     mockFundsHandler,
		ShopHandler:      mockShopHandler,
		InventoryHandler: mockInventoryHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/users/1/add-funds", http.StatusUnauthorized},
		{"GET", "/api/users/1/inventory", http.StatusUnauthorized},
		{"POST", "/api/products/2/purchase", http.StatusUnauthorized},
		{"POST", "/api/products/2/use", http.StatusUnauthorized},
		{"GET", "/api/analytics/popular-products", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
