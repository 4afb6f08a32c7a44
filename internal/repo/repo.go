package repo

import (
	"github.com/ddanilin/virtshop/internal/pg"
	inventoryrepo "github.com/ddanilin/virtshop/internal/repo/inventory-repo"
	productrepo "github.com/ddanilin/virtshop/internal/repo/product-repo"
	userrepo "github.com/ddanilin/virtshop/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo      *userrepo.Repository
	ProductRepo   *productrepo.Repository
	InventoryRepo *inventoryrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:      userrepo.New(conn),
		ProductRepo:   productrepo.New(conn),
		InventoryRepo: inventoryrepo.New(conn),
	}
}
