package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmmemories/backend/internal/api/metrics"
	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/ports"
)

// imageFieldName is the only multipart field accepted for the movie image.
const imageFieldName = "image"

// MovieHandler handles the owned-resource lifecycle over HTTP. Write
// requests pass through the media pipeline before the record is persisted:
// a failed upload prevents the record write entirely.
type MovieHandler struct {
	service ports.MovieService
	media   ports.MediaUploader
}

func NewMovieHandler(service ports.MovieService, media ports.MediaUploader) *MovieHandler {
	return &MovieHandler{service: service, media: media}
}

// List handles GET /movies — the public listing, newest first.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Success      200  {object}  listMoviesResponse
// @Failure      500  {object}  errorResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	details, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMoviesResponse{Count: len(details), Data: details})
}

// Create handles POST /movies. The creator is always the authenticated
// principal; a creator value in the request body is ignored.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        year         formData  string  true   "Release year"
// @Param        director     formData  string  true   "Director"
// @Param        rating       formData  string  false  "Rating 0-10"
// @Param        image        formData  file    true   "Movie image"
// @Success      201  {object}  movieResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile(imageFieldName)
	if err != nil {
		return domain.ErrMissingFile
	}
	src, err := file.Open()
	if err != nil {
		return domain.ErrMissingFile
	}
	defer src.Close()

	start := time.Now()
	imageURL, err := h.media.Upload(c.Request().Context(), ports.ImageUpload{
		Reader:      src,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Filename:    file.Filename,
	})
	metrics.ImageUploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues(uploadResult(err)).Inc()
		return err
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	detail, err := h.service.Create(c.Request().Context(), ports.CreateMovieInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Year:        c.FormValue("year"),
		Director:    c.FormValue("director"),
		Rating:      c.FormValue("rating"),
		ImageURL:    imageURL,
		CreatorID:   user.ID,
	})
	if err != nil {
		return err
	}

	metrics.MoviesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, movieResponse{Data: detail})
}

// MyMovies handles GET /movies/my-movies — the ownership-scoped listing.
// The scope is always the principal's own id; a user cannot list another
// user's movies through this operation.
//
// @Summary      List own movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listMoviesResponse
// @Failure      401  {object}  errorResponse
// @Router       /movies/my-movies [get]
func (h *MovieHandler) MyMovies(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListByCreator(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMoviesResponse{Count: len(details), Data: details})
}

// GetByID handles GET /movies/:id.
//
// @Summary      Get a movie by id
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetByID(c echo.Context) error {
	detail, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movieResponse{Data: detail})
}

// uploadResult buckets an upload error for the metrics label.
func uploadResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFile),
		errors.Is(err, domain.ErrUnsupportedImageType),
		errors.Is(err, domain.ErrImageTooLarge):
		return "rejected"
	default:
		return "error"
	}
}
