package inventoryrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ddanilin/virtshop/internal/domain"
	"github.com/ddanilin/virtshop/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// FindInventory loads the (user, product) inventory row together with its
// active product. Returns (nil, nil) when the user does not own the product.
func (r *Repository) FindInventory(ctx context.Context, productID, userID int) (*domain.Inventory, error) {
	query := `
        SELECT i.id, i.user_id, i.product_id, i.quantity, i.purchased_at,
               p.id, p.name, p.description, p.price, p.type, p.is_active, p.created_at
        FROM inventories i
        JOIN products p ON p.id = i.product_id
        WHERE i.product_id = $1 AND i.user_id = $2 AND p.is_active = TRUE
    `
	row := r.db.QueryRow(ctx, query, productID, userID)
	inv, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to find inventory", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

// ListInventory returns everything the user owns, largest stock first.
func (r *Repository) ListInventory(ctx context.Context, userID int) ([]domain.Inventory, error) {
	query := `
        SELECT i.id, i.user_id, i.product_id, i.quantity, i.purchased_at,
               p.id, p.name, p.description, p.price, p.type, p.is_active, p.created_at
        FROM inventories i
        JOIN products p ON p.id = i.product_id
        WHERE i.user_id = $1
        ORDER BY i.quantity DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to query inventory list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Inventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			zap.L().Error("failed to scan inventory", zap.Error(err))
			return nil, err
		}
		items = append(items, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanInventory(row pgx.Row) (*domain.Inventory, error) {
	var inv domain.Inventory
	var product domain.Product
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ProductID, &inv.Quantity, &inv.PurchasedAt,
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Type, &product.IsActive, &product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Product = &product
	return &inv, nil
}
