package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"venuebook/internal/auth"
	"venuebook/internal/domain"
	"venuebook/internal/store"
)

type fakeRepo struct {
	getFn    func(ctx context.Context, username string) (domain.AdminUser, error)
	createFn func(ctx context.Context, a domain.AdminUser) (domain.AdminUser, error)
}

func (f *fakeRepo) GetAdminByUsername(ctx context.Context, username string) (domain.AdminUser, error) {
	if f.getFn == nil {
		panic("GetAdminByUsername not configured")
	}
	return f.getFn(ctx, username)
}

func (f *fakeRepo) CreateAdmin(ctx context.Context, a domain.AdminUser) (domain.AdminUser, error) {
	if f.createFn == nil {
		panic("CreateAdmin not configured")
	}
	return f.createFn(ctx, a)
}

func newTestService(t *testing.T, repo store.AdminRepository) *Service {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	svc, err := NewService(repo, tokens, nil)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	stored := domain.AdminUser{ID: uuid.New(), Username: "marge", PasswordHash: hash}
	svc := newTestService(t, &fakeRepo{
		getFn: func(ctx context.Context, username string) (domain.AdminUser, error) {
			if username != "marge" {
				return domain.AdminUser{}, store.ErrNotFound
			}
			return stored, nil
		},
	})

	session, err := svc.Login(context.Background(), " marge ", "s3cret-password")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	claims, err := svc.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if claims.Subject != stored.ID.String() || claims.Username != "marge" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := svc.Login(context.Background(), "marge", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "homer", "s3cret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}

	var vErr *ValidationError
	if _, err := svc.Login(context.Background(), "", ""); !errors.As(err, &vErr) {
		t.Fatalf("empty: error = %v, want *ValidationError", err)
	}
}

func TestLogin_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("db down")
	svc := newTestService(t, &fakeRepo{
		getFn: func(ctx context.Context, username string) (domain.AdminUser, error) {
			return domain.AdminUser{}, storeErr
		},
	})
	if _, err := svc.Login(context.Background(), "marge", "pw"); !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want %v", err, storeErr)
	}
}

func TestCreateAdmin_HashesPassword(t *testing.T) {
	var got domain.AdminUser
	svc := newTestService(t, &fakeRepo{
		createFn: func(ctx context.Context, a domain.AdminUser) (domain.AdminUser, error) {
			got = a
			return a, nil
		},
	})

	if _, err := svc.CreateAdmin(context.Background(), CreateAdminInput{Username: " marge ", Password: "long-enough-pw"}); err != nil {
		t.Fatalf("CreateAdmin error: %v", err)
	}
	if got.PasswordHash == "long-enough-pw" {
		t.Fatalf("password stored in plaintext")
	}
	if ok, err := auth.VerifyPassword("long-enough-pw", got.PasswordHash); err != nil || !ok {
		t.Fatalf("VerifyPassword = %v, %v", ok, err)
	}

	if got.Username != "marge" {
		t.Fatalf("username = %q, want trimmed", got.Username)
	}
}

func TestCreateAdmin_Validation(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	cases := []struct {
		name string
		in   CreateAdminInput
		want string
	}{
		{"missing username", CreateAdminInput{Password: "long-enough-pw"}, "username is required"},
		{"short username", CreateAdminInput{Username: "m", Password: "long-enough-pw"}, "username must be 3-64 characters of letters, digits, '.', '_' or '-'"},
		{"spaces in username", CreateAdminInput{Username: "ma rge", Password: "long-enough-pw"}, "username must be 3-64 characters of letters, digits, '.', '_' or '-'"},
		{"short password", CreateAdminInput{Username: "marge", Password: "short"}, "password must be at least 10 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAdmin(context.Background(), tc.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Error() != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLogin_RequiresCredentials(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	var vErr *ValidationError
	if _, err := svc.Login(context.Background(), "  ", "pw"); !errors.As(err, &vErr) || vErr.Error() != "username is required" {
		t.Fatalf("blank username: error = %v", err)
	}
	if _, err := svc.Login(context.Background(), "marge", ""); !errors.As(err, &vErr) || vErr.Error() != "password is required" {
		t.Fatalf("blank password: error = %v", err)
	}
}
