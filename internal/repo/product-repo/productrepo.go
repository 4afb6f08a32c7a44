package productrepo

import (
	"context"
	"errors"
	"time"

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

func (r *Repository) FindProduct(ctx context.Context, productID int) (*domain.Product, error) {
	query := `
        SELECT id, name, description, price, type, is_active, created_at
        FROM products
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, productID)
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Type,
		&product.IsActive,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to find product", zap.Error(err))
		return nil, err
	}
	return &product, nil
}

// FindPopularProducts aggregates completed purchases since startDate, most
// purchased first.
func (r *Repository) FindPopularProducts(ctx context.Context, startDate time.Time, limit int) ([]domain.PopularProduct, error) {
	query := `
        SELECT p.id, p.name, p.price, p.type, SUM(t.amount) AS purchase_count
        FROM products p
        JOIN transactions t ON p.id = t.product_id
        WHERE t.status = 'COMPLETED' AND t.created_at >= $1
        GROUP BY p.id, p.name, p.price, p.type
        ORDER BY purchase_count DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, startDate, limit)
	if err != nil {
		zap.L().Error("failed to query popular products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.PopularProduct, 0)
	for rows.Next() {
		var p domain.PopularProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price, &p.Type, &p.PurchaseCount); err != nil {
			zap.L().Error("failed to scan popular product", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
