package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/ports"
)

// stubMovieService records the last Create input for assertions.
type stubMovieService struct {
	lastCreate ports.CreateMovieInput
	createErr  error
	getErr     error
	detail     *ports.MovieDetail
	details    []ports.MovieDetail
}

func (s *stubMovieService) Create(_ context.Context, in ports.CreateMovieInput) (*ports.MovieDetail, error) {
	s.lastCreate = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.detail, nil
}

func (s *stubMovieService) List(context.Context) ([]ports.MovieDetail, error) {
	return s.details, nil
}

func (s *stubMovieService) ListByCreator(_ context.Context, creatorID string) ([]ports.MovieDetail, error) {
	var out []ports.MovieDetail
	for _, d := range s.details {
		if d.Creator != nil && d.Creator.ID == creatorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubMovieService) GetByID(context.Context, string) (*ports.MovieDetail, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.detail, nil
}

// stubUploader returns a fixed URL and records whether it ran.
type stubUploader struct {
	url    string
	err    error
	called bool
}

func (u *stubUploader) Upload(context.Context, ports.ImageUpload) (string, error) {
	u.called = true
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

// movieForm builds a multipart request body with the given fields and,
// optionally, a small image file under the "image" field.
func movieForm(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withFile {
		part, err := w.CreateFormFile("image", "poster.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func movieContext(body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/movies", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func validMovieFields() map[string]string {
	return map[string]string{
		"title":       "Cinema Paradiso",
		"description": "A filmmaker recalls his childhood.",
		"year":        "1988",
		"director":    "Giuseppe Tornatore",
		"rating":      "8.5",
	}
}

func TestMovieHandler_Create(t *testing.T) {
	svc := &stubMovieService{detail: &ports.MovieDetail{ID: "movie_1", Title: "Cinema Paradiso"}}
	up := &stubUploader{url: "https://media.example.com/film-memories/abc.jpg"}
	h := NewMovieHandler(svc, up)

	body, contentType := movieForm(t, validMovieFields(), true)
	c, rec := movieContext(body, contentType)
	c.Set("principal", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !up.called {
		t.Fatalf("expected uploader to run")
	}
	if svc.lastCreate.CreatorID != "user_1" {
		t.Fatalf("expected creator user_1, got %s", svc.lastCreate.CreatorID)
	}
	if svc.lastCreate.ImageURL != up.url {
		t.Fatalf("expected uploaded image url, got %s", svc.lastCreate.ImageURL)
	}
}

func TestMovieHandler_Create_IgnoresClientCreator(t *testing.T) {
	svc := &stubMovieService{detail: &ports.MovieDetail{ID: "movie_1"}}
	h := NewMovieHandler(svc, &stubUploader{url: "https://media.example.com/x.jpg"})

	fields := validMovieFields()
	fields["creator"] = "user_999"
	body, contentType := movieForm(t, fields, true)
	c, _ := movieContext(body, contentType)
	c.Set("principal", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if svc.lastCreate.CreatorID != "user_1" {
		t.Fatalf("client-supplied creator was honored: %s", svc.lastCreate.CreatorID)
	}
}

func TestMovieHandler_Create_MissingFile(t *testing.T) {
	svc := &stubMovieService{}
	h := NewMovieHandler(svc, &stubUploader{})

	body, contentType := movieForm(t, validMovieFields(), false)
	c, _ := movieContext(body, contentType)
	c.Set("principal", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Create(c); !errors.Is(err, domain.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestMovieHandler_Create_UploadFailureAbortsRecord(t *testing.T) {
	svc := &stubMovieService{}
	up := &stubUploader{err: domain.ErrUploadFailed}
	h := NewMovieHandler(svc, up)

	body, contentType := movieForm(t, validMovieFields(), true)
	c, _ := movieContext(body, contentType)
	c.Set("principal", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Create(c); !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if svc.lastCreate.CreatorID != "" {
		t.Fatalf("record was created despite failed upload")
	}
}

func TestMovieHandler_Create_NoPrincipal(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{}, &stubUploader{})

	body, contentType := movieForm(t, validMovieFields(), true)
	c, _ := movieContext(body, contentType)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
}

func TestMovieHandler_List(t *testing.T) {
	svc := &stubMovieService{details: []ports.MovieDetail{
		{ID: "movie_2", Title: "Second"},
		{ID: "movie_1", Title: "First"},
	}}
	h := NewMovieHandler(svc, &stubUploader{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"count":2`)) {
		t.Fatalf("expected count 2, got %s", rec.Body.String())
	}
}

func TestMovieHandler_MyMovies(t *testing.T) {
	svc := &stubMovieService{details: []ports.MovieDetail{
		{ID: "movie_1", Creator: &ports.CreatorSummary{ID: "user_1"}},
		{ID: "movie_2", Creator: &ports.CreatorSummary{ID: "user_2"}},
	}}
	h := NewMovieHandler(svc, &stubUploader{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/movies/my-movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.MyMovies(c); err != nil {
		t.Fatalf("MyMovies returned error: %v", err)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"count":1`)) {
		t.Fatalf("expected count 1, got %s", rec.Body.String())
	}
}

func TestMovieHandler_GetByID_Errors(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name string
		err  error
	}{
		{"invalid id", domain.ErrInvalidID},
		{"not found", domain.ErrMovieNotFound},
	}
	for _, tc := range cases {
		h := NewMovieHandler(&stubMovieService{getErr: tc.err}, &stubUploader{})
		req := httptest.NewRequest(http.MethodGet, "/movies/x", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("x")

		if err := h.GetByID(c); !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}
