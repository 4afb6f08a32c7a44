package service

import (
	"github.com/ddanilin/virtshop/internal/handlers/funds"
	"github.com/ddanilin/virtshop/internal/handlers/inventory"
	"github.com/ddanilin/virtshop/internal/handlers/shop"

	"github.com/ddanilin/virtshop/internal/cache"
	"github.com/ddanilin/virtshop/internal/repo"
	fundsservice "github.com/ddanilin/virtshop/internal/service/fundsservice"
	inventoryservice "github.com/ddanilin/virtshop/internal/service/inventoryservice"
	purchaseservice "github.com/ddanilin/virtshop/internal/service/purchaseservice"
	"github.com/ddanilin/virtshop/internal/uow"
)

type Services struct {
	FundsService     funds.Service
	PurchaseService  shop.Service
	InventoryService inventory.Service
}

func New(repos *repo.Repositories, m uow.Manager, c cache.Cache, maxFundsAdd int) *Services {
	return &Services{
		FundsService:     fundsservice.New(repos.UserRepo, m, c, maxFundsAdd),
		PurchaseService:  purchaseservice.New(repos.UserRepo, repos.ProductRepo, repos.InventoryRepo, m, c),
		InventoryService: inventoryservice.New(repos.InventoryRepo, repos.ProductRepo, c),
	}
}
