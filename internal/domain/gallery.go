package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type GalleryCategory string

const (
	GalleryCategoryWedding    GalleryCategory = "wedding"
	GalleryCategoryCorporate  GalleryCategory = "corporate"
	GalleryCategoryConference GalleryCategory = "conference"
	GalleryCategorySocial     GalleryCategory = "social"
)

var GalleryCategories = []GalleryCategory{
	GalleryCategoryWedding,
	GalleryCategoryCorporate,
	GalleryCategoryConference,
	GalleryCategorySocial,
}

func (c GalleryCategory) Valid() bool {
	for _, known := range GalleryCategories {
		if c == known {
			return true
		}
	}
	return false
}

type GalleryItem struct {
	bun.BaseModel `bun:"table:gallery_items"`

	ID          int64           `bun:"id,pk,autoincrement" json:"id"`
	Title       string          `bun:"title,notnull" json:"title"`
	Description string          `bun:"description,notnull" json:"description"`
	Category    GalleryCategory `bun:"category,notnull" json:"category"`
	CreatedAt   time.Time       `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time       `bun:"updated_at,notnull" json:"updated_at"`
}

func (g *GalleryItem) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		if g.UpdatedAt.IsZero() {
			g.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		g.UpdatedAt = now
	}
	return nil
}
