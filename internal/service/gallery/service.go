package gallery

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"venuebook/internal/domain"
	"venuebook/internal/store"
	"venuebook/internal/validate"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	repo     store.GalleryRepository
	validate *validator.Validate
}

func NewService(repo store.GalleryRepository) (*Service, error) {
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, validate: v}, nil
}

// List filters by category; "all" or an empty category returns everything.
func (s *Service) List(ctx context.Context, category string) ([]domain.GalleryItem, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == "all" {
		return s.repo.ListGallery(ctx, "")
	}
	if !domain.GalleryCategory(c).Valid() {
		return nil, validationError("unknown gallery category " + category)
	}
	return s.repo.ListGallery(ctx, domain.GalleryCategory(c))
}

type CreateInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Category    string `json:"category" validate:"required,gallery_category"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.GalleryItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := s.validateStruct(in); err != nil {
		return domain.GalleryItem{}, err
	}
	return s.repo.CreateGalleryItem(ctx, domain.GalleryItem{
		Title:       in.Title,
		Description: in.Description,
		Category:    domain.GalleryCategory(in.Category),
	})
}

type UpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Category    *string `json:"category" validate:"omitempty,gallery_category"`
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (domain.GalleryItem, error) {
	if id <= 0 {
		return domain.GalleryItem{}, validationError("gallery item id is required")
	}
	in.Title = trimmed(in.Title, false)
	in.Description = trimmed(in.Description, false)
	in.Category = trimmed(in.Category, true)
	if err := s.validateStruct(in); err != nil {
		return domain.GalleryItem{}, err
	}

	item, err := s.repo.GetGalleryItem(ctx, id)
	if err != nil {
		return domain.GalleryItem{}, err
	}
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = domain.GalleryCategory(*in.Category)
	}
	return s.repo.UpdateGalleryItem(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationError("gallery item id is required")
	}
	return s.repo.DeleteGalleryItem(ctx, id)
}

func (s *Service) validateStruct(in any) error {
	msg, invalid, err := validate.Message(s.validate, in)
	if err != nil {
		return err
	}
	if invalid {
		return validationError(msg)
	}
	return nil
}

func trimmed(p *string, lower bool) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if lower {
		v = strings.ToLower(v)
	}
	return &v
}
