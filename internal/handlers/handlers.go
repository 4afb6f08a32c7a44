package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ddanilin/virtshop/docs"
	fundshandlers "github.com/ddanilin/virtshop/internal/handlers/funds"
	inventoryhandlers "github.com/ddanilin/virtshop/internal/handlers/inventory"
	shophandlers "github.com/ddanilin/virtshop/internal/handlers/shop"
	"github.com/ddanilin/virtshop/internal/service"
	"github.com/ddanilin/virtshop/pkg/auth"
)

type FundsHandler interface {
	AddFunds(w http.ResponseWriter, r *http.Request)
}

type ShopHandler interface {
	Purchase(w http.ResponseWriter, r *http.Request)
	Consume(w http.ResponseWriter, r *http.Request)
}

type InventoryHandler interface {
	GetInventory(w http.ResponseWriter, r *http.Request)
	GetPopularProducts(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	FundsHandler     FundsHandler
	ShopHandler      ShopHandler
	InventoryHandler InventoryHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		FundsHandler:     fundshandlers.New(s.FundsService),
		ShopHandler:      shophandlers.New(s.PurchaseService),
		InventoryHandler: inventoryhandlers.New(s.InventoryService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/users/{user_id}", func(r chi.Router) {
				r.Post("/add-funds", h.FundsHandler.AddFunds)
				r.Get("/inventory", h.InventoryHandler.GetInventory)
			})
			r.Route("/products/{product_id}", func(r chi.Router) {
				r.Post("/purchase", h.ShopHandler.Purchase)
				r.Post("/use", h.ShopHandler.Consume)
			})
			r.Get("/analytics/popular-products", h.InventoryHandler.GetPopularProducts)
		})
	})

	return r
}
