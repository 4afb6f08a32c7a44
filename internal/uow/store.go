package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/ddanilin/virtshop/internal/apperrors"
	"github.com/ddanilin/virtshop/internal/domain"
)

// Persist writes entities into the scope's transaction. The writes become
// externally visible only when the outermost scope commits.
func (s *txScope) Persist(ctx context.Context, entities ...any) error {
	for _, entity := range entities {
		if err := persistEntity(ctx, s.tx, entity); err != nil {
			zap.L().Error("failed to persist entity", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *txScope) Delete(ctx context.Context, entities ...any) error {
	for _, entity := range entities {
		if err := deleteEntity(ctx, s.tx, entity); err != nil {
			zap.L().Error("failed to delete entity", zap.Error(err))
			return err
		}
	}
	return nil
}

func persistEntity(ctx context.Context, tx pgx.Tx, entity any) error {
	switch e := entity.(type) {
	case *domain.User:
		return persistUser(ctx, tx, e)
	case *domain.Inventory:
		return persistInventory(ctx, tx, e)
	case *domain.Transaction:
		return persistTransaction(ctx, tx, e)
	default:
		return fmt.Errorf("uow: unsupported entity type %T", entity)
	}
}

func deleteEntity(ctx context.Context, tx pgx.Tx, entity any) error {
	switch e := entity.(type) {
	case *domain.Inventory:
		_, err := tx.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, e.ID)
		return err
	default:
		return fmt.Errorf("uow: unsupported entity type for delete %T", entity)
	}
}

func persistUser(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	if user.ID == 0 {
		query := `
            INSERT INTO users (username, email, balance)
            VALUES ($1, $2, $3)
            RETURNING id
        `
		return tx.QueryRow(ctx, query, user.Username, user.Email, user.Balance).Scan(&user.ID)
	}
	query := `
        UPDATE users
        SET username = $1, email = $2, balance = $3
        WHERE id = $4
    `
	_, err := tx.Exec(ctx, query, user.Username, user.Email, user.Balance, user.ID)
	return err
}

func persistInventory(ctx context.Context, tx pgx.Tx, inv *domain.Inventory) error {
	if inv.ID == 0 {
		query := `
            INSERT INTO inventories (user_id, product_id, quantity, purchased_at)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `
		err := tx.QueryRow(ctx, query, inv.UserID, inv.ProductID, inv.Quantity, inv.PurchasedAt).Scan(&inv.ID)
		if isUniqueViolation(err) {
			// Another request created the (user, product) row first. The
			// caller retries against the updated state.
			return apperrors.ErrPurchaseConflict
		}
		return err
	}
	query := `
        UPDATE inventories
        SET quantity = $1
        WHERE id = $2
    `
	_, err := tx.Exec(ctx, query, inv.Quantity, inv.ID)
	return err
}

func persistTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	query := `
        INSERT INTO transactions (user_id, product_id, amount, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return tx.QueryRow(ctx, query, txn.UserID, txn.ProductID, txn.Amount, txn.Status, txn.CreatedAt).Scan(&txn.ID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
