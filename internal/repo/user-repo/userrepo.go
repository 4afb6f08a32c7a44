package userrepo

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

// FindUser returns the user or (nil, nil) when no such row exists; the
// caller decides whether absence is an error.
func (r *Repository) FindUser(ctx context.Context, userID int) (*domain.User, error) {
	query := `
        SELECT id, username, email, balance, created_at
        FROM users
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Balance, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
