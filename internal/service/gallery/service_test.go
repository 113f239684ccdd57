package gallery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

type fakeRepo struct {
	listFn   func(ctx context.Context, category domain.GalleryCategory) ([]domain.GalleryItem, error)
	getFn    func(ctx context.Context, id int64) (domain.GalleryItem, error)
	createFn func(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error)
	updateFn func(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeRepo) ListGallery(ctx context.Context, category domain.GalleryCategory) ([]domain.GalleryItem, error) {
	if f.listFn == nil {
		panic("ListGallery not configured")
	}
	return f.listFn(ctx, category)
}

func (f *fakeRepo) GetGalleryItem(ctx context.Context, id int64) (domain.GalleryItem, error) {
	if f.getFn == nil {
		panic("GetGalleryItem not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeRepo) CreateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
	if f.createFn == nil {
		panic("CreateGalleryItem not configured")
	}
	return f.createFn(ctx, item)
}

func (f *fakeRepo) UpdateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
	if f.updateFn == nil {
		panic("UpdateGalleryItem not configured")
	}
	return f.updateFn(ctx, item)
}

func (f *fakeRepo) DeleteGalleryItem(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("DeleteGalleryItem not configured")
	}
	return f.deleteFn(ctx, id)
}

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestList_CategoryFilter(t *testing.T) {
	var got []domain.GalleryCategory
	svc := newTestService(t, &fakeRepo{
		listFn: func(ctx context.Context, category domain.GalleryCategory) ([]domain.GalleryItem, error) {
			got = append(got, category)
			return nil, nil
		},
	})

	for _, in := range []string{"", "all", "ALL", " Wedding "} {
		if _, err := svc.List(context.Background(), in); err != nil {
			t.Fatalf("List(%q) error: %v", in, err)
		}
	}
	want := []domain.GalleryCategory{"", "", "", domain.GalleryCategoryWedding}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var vErr *ValidationError
	if _, err := svc.List(context.Background(), "funeral"); !errors.As(err, &vErr) {
		t.Fatalf("unknown category: error = %v, want *ValidationError", err)
	}
}

func TestCreate_RequiresAllFields(t *testing.T) {
	var stored domain.GalleryItem
	svc := newTestService(t, &fakeRepo{
		createFn: func(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
			stored = item
			item.ID = 10
			return item, nil
		},
	})

	cases := []struct {
		name string
		in   CreateInput
		want string
	}{
		{"title", CreateInput{Description: "d", Category: "social"}, "title is required"},
		{"description", CreateInput{Title: "t", Category: "social"}, "description is required"},
		{"category", CreateInput{Title: "t", Description: "d"}, "category is required"},
		{"bad category", CreateInput{Title: "t", Description: "d", Category: "rave"}, "category must be one of: wedding, corporate, conference, social"},
		{"blank title", CreateInput{Title: "   ", Description: "d", Category: "social"}, "title is required"},
		{"long title", CreateInput{Title: strings.Repeat("x", 201), Description: "d", Category: "social"}, "title must be at most 200 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Error() != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}

	item, err := svc.Create(context.Background(), CreateInput{Title: " Gala ", Description: "Evening", Category: "Social"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.ID != 10 || stored.Title != "Gala" || stored.Category != domain.GalleryCategorySocial {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestUpdate_Partial(t *testing.T) {
	existing := domain.GalleryItem{ID: 3, Title: "Old", Description: "Keep", Category: domain.GalleryCategoryCorporate}
	var stored domain.GalleryItem
	svc := newTestService(t, &fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.GalleryItem, error) {
			if id != 3 {
				return domain.GalleryItem{}, store.ErrNotFound
			}
			return existing, nil
		},
		updateFn: func(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error) {
			stored = item
			return item, nil
		},
	})

	title := "New"
	if _, err := svc.Update(context.Background(), 3, UpdateInput{Title: &title}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if stored.Title != "New" || stored.Description != "Keep" || stored.Category != domain.GalleryCategoryCorporate {
		t.Fatalf("stored = %+v", stored)
	}

	if _, err := svc.Update(context.Background(), 4, UpdateInput{Title: &title}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing: error = %v, want ErrNotFound", err)
	}

	bad := "rave"
	var vErr *ValidationError
	if _, err := svc.Update(context.Background(), 3, UpdateInput{Category: &bad}); !errors.As(err, &vErr) {
		t.Fatalf("bad category: error = %v", err)
	}
}

func TestDelete_RejectsBadID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	var vErr *ValidationError
	if err := svc.Delete(context.Background(), 0); !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestUpdate_RejectsBlankFieldsBeforeLoading(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	blank := "  "
	cases := []struct {
		name string
		in   UpdateInput
		want string
	}{
		{"title", UpdateInput{Title: &blank}, "title must not be empty"},
		{"description", UpdateInput{Description: &blank}, "description must not be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), 3, tc.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Error() != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}
}
