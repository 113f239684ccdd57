package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

type AdminRepo struct {
	db *bun.DB
}

func NewAdminRepo(db *bun.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) GetAdminByUsername(ctx context.Context, username string) (domain.AdminUser, error) {
	var a domain.AdminUser
	err := r.db.NewSelect().
		Model(&a).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdminUser{}, store.ErrNotFound
		}
		return domain.AdminUser{}, err
	}
	return a, nil
}

func (r *AdminRepo) CreateAdmin(ctx context.Context, a domain.AdminUser) (domain.AdminUser, error) {
	m := domain.AdminUser{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.AdminUser{}, translateUniqueViolation(err)
	}
	return m, nil
}
