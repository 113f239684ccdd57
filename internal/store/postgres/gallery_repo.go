package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

type GalleryRepo struct {
	db *bun.DB
}

func NewGalleryRepo(db *bun.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

// ListGallery returns every item when category is empty.
func (r *GalleryRepo) ListGallery(ctx context.Context, category domain.GalleryCategory) ([]domain.GalleryItem, error) {
	var rows []domain.GalleryItem
	q := r.db.NewSelect().Model(&rows)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GalleryRepo) GetGalleryItem(ctx context.Context, id int64) (domain.GalleryItem, error) {
	var item domain.GalleryItem
	err := r.db.NewSelect().
		Model(&item).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GalleryItem{}, store.ErrNotFound
		}
		return domain.GalleryItem{}, err
	}
	return item, nil
}

func (r *GalleryRepo) CreateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
	m := domain.GalleryItem{
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
	}
	if _, err := r.db.NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return domain.GalleryItem{}, err
	}
	return m, nil
}

func (r *GalleryRepo) UpdateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
	m := item
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("title", "description", "category", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.GalleryItem{}, err
	}
	if err := expectAffected(res); err != nil {
		return domain.GalleryItem{}, err
	}
	return m, nil
}

func (r *GalleryRepo) DeleteGalleryItem(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.GalleryItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
