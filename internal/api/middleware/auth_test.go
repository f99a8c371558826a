package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/ports"
)

// stubVerifier returns canned claims keyed by token string.
type stubVerifier struct {
	claims map[string]*ports.TokenClaims
	err    error
}

func (v *stubVerifier) Verify(token string) (*ports.TokenClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	claims, ok := v.claims[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// stubPrincipalRepo resolves user records by id only; the other lookups are
// not exercised by the middleware.
type stubPrincipalRepo struct {
	users map[string]*domain.User
}

func (r *stubPrincipalRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubPrincipalRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubPrincipalRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *stubPrincipalRepo) FindByIDs(context.Context, []string) (map[string]*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubPrincipalRepo) FindAll(context.Context) ([]domain.User, error) {
	return nil, errors.New("not implemented")
}

func authTestSetup(authHeader string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func TestAuth_MissingHeader(t *testing.T) {
	mw := Auth(&stubVerifier{}, &stubPrincipalRepo{})
	c, rec, e := authTestSetup("")

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidScheme(t *testing.T) {
	mw := Auth(&stubVerifier{}, &stubPrincipalRepo{})
	c, rec, e := authTestSetup("Basic dXNlcjpwYXNz")

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw := Auth(&stubVerifier{err: domain.ErrInvalidToken}, &stubPrincipalRepo{})
	c, rec, e := authTestSetup("Bearer garbage")

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw := Auth(&stubVerifier{err: domain.ErrTokenExpired}, &stubPrincipalRepo{})
	c, _, _ := authTestSetup("Bearer expired")

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := handler(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
	if httpErr.Message != "token expired" {
		t.Fatalf("unexpected message: %v", httpErr.Message)
	}
}

func TestAuth_VanishedPrincipal(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*ports.TokenClaims{
		"valid": {UserID: "user_gone", Email: "gone@example.com"},
	}}
	mw := Auth(verifier, &stubPrincipalRepo{users: map[string]*domain.User{}})
	c, rec, e := authTestSetup("Bearer valid")

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_SetsPrincipal(t *testing.T) {
	alice := &domain.User{ID: "user_1", Email: "alice@example.com", Role: domain.RoleUser}
	verifier := &stubVerifier{claims: map[string]*ports.TokenClaims{
		"valid": {UserID: "user_1", Email: "alice@example.com"},
	}}
	mw := Auth(verifier, &stubPrincipalRepo{users: map[string]*domain.User{"user_1": alice}})
	c, rec, _ := authTestSetup("Bearer valid")

	var seen *domain.User
	handler := mw(func(c echo.Context) error {
		seen, _ = c.Get("principal").(*domain.User)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != "user_1" {
		t.Fatalf("expected principal user_1, got %+v", seen)
	}
}
