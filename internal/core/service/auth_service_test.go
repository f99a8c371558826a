package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/filmmemories/backend/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository keyed by normalized email.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		for _, user := range r.users {
			if user.ID == id {
				clone := *user
				out[id] = &clone
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

// stubIssuer returns a deterministic token for assertions.
type stubIssuer struct {
	err error
}

func (s *stubIssuer) Issue(userID, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + userID, nil
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, &stubIssuer{}, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Register(context.Background(), "Alice", "Alice@Example.COM", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, user.Role)
	}
	if user.Avatar != domain.DefaultAvatar {
		t.Fatalf("expected default avatar, got %s", user.Avatar)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("stored hash does not match the password")
	}
	if token != "token-"+user.ID {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _, err := svc.Register(context.Background(), "", "", "")
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected error to name %q, got %q", field, err.Error())
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	// The duplicate check is case-insensitive.
	_, _, err := svc.Register(context.Background(), "Other Alice", "ALICE@example.com", "different")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	registered, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "Alice@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	_, _, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, _, err := svc.Register(context.Background(), "User", email, "s3cret"); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
