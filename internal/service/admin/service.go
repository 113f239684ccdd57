package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"venuebook/internal/auth"
	"venuebook/internal/domain"
	"venuebook/internal/store"
	"venuebook/internal/validate"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Admin     domain.AdminUser `json:"admin"`
}

type Service struct {
	repo     store.AdminRepository
	tokens   *auth.TokenIssuer
	log      *slog.Logger
	validate *validator.Validate
	// verified against when the username is unknown so both paths cost the same
	dummyHash string
}

func NewService(repo store.AdminRepository, tokens *auth.TokenIssuer, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	dummy, err := auth.HashPassword("venuebook-dummy-password")
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:      repo,
		tokens:    tokens,
		log:       log.With(slog.String("component", "admin")),
		validate:  v,
		dummyHash: dummy,
	}, nil
}

type credentials struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if err := s.validateStruct(credentials{Username: username, Password: password}); err != nil {
		return Session{}, err
	}

	a, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = auth.VerifyPassword(password, s.dummyHash)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	ok, err := auth.VerifyPassword(password, a.PasswordHash)
	if err != nil {
		s.log.Error("stored password hash unreadable", slog.String("username", a.Username), slog.Any("err", err))
		return Session{}, ErrInvalidCredentials
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(a.ID.String(), a.Username)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expires, Admin: a}, nil
}

type CreateAdminInput struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=10,max=256"`
}

func (s *Service) CreateAdmin(ctx context.Context, in CreateAdminInput) (domain.AdminUser, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validateStruct(in); err != nil {
		return domain.AdminUser{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.AdminUser{}, err
	}
	return s.repo.CreateAdmin(ctx, domain.AdminUser{Username: in.Username, PasswordHash: hash})
}

// Authenticate validates a bearer token and returns its claims.
func (s *Service) Authenticate(token string) (auth.Claims, error) {
	return s.tokens.Verify(token)
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
