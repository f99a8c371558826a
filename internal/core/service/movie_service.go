package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/ports"
)

// listLimit caps the public movie listing.
const listLimit = 50

// ListCache abstracts the short-TTL cache for the public movie list (Redis).
// Cache failures must never fail a request; callers degrade to the store.
type ListCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// MovieService implements the owned-resource lifecycle. Every created record
// is bound to the authenticated principal's id; the creator is never taken
// from the client.
type MovieService struct {
	movies ports.MovieRepository
	users  ports.UserRepository
	cache  ListCache
	log    zerolog.Logger
}

func NewMovieService(movies ports.MovieRepository, users ports.UserRepository, cache ListCache, log zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, users: users, cache: cache, log: log}
}

// Create validates the raw form values, persists the record with the
// principal as creator, and returns it hydrated with a creator summary.
func (s *MovieService) Create(ctx context.Context, in ports.CreateMovieInput) (*ports.MovieDetail, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"year", in.Year},
		{"director", in.Director},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(missing, ", "))
	}

	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	if err != nil {
		return nil, fmt.Errorf("%w: year must be a number", domain.ErrInvalidYear)
	}

	rating := 0.0
	if strings.TrimSpace(in.Rating) != "" {
		rating, err = strconv.ParseFloat(strings.TrimSpace(in.Rating), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rating must be a number", domain.ErrInvalidRating)
		}
	}

	creator, err := s.users.FindByID(ctx, in.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("resolve creator: %w", err)
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Year:        year,
		Director:    strings.TrimSpace(in.Director),
		Image:       in.ImageURL,
		Rating:      rating,
		CreatorID:   creator.ID,
		Comments:    []string{},
		Likes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if movie.Image == "" {
		movie.Image = domain.DefaultMovieImage
	}
	if err := movie.Validate(); err != nil {
		return nil, err
	}

	created, err := s.movies.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.log.Info().Str("movie_id", created.ID).Str("creator_id", creator.ID).Msg("movie created")

	return toDetail(created, creator), nil
}

// List returns the public listing, newest first, served from the cache when
// a fresh copy exists.
func (s *MovieService) List(ctx context.Context) ([]ports.MovieDetail, error) {
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("movie list cache read failed, falling back to store")
		} else if payload != nil {
			var details []ports.MovieDetail
			if err := json.Unmarshal(payload, &details); err == nil {
				return details, nil
			}
		}
	}

	movies, err := s.movies.Find(ctx, listLimit)
	if err != nil {
		return nil, err
	}

	details, err := s.hydrate(ctx, movies)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(details); err == nil {
			if err := s.cache.Set(ctx, payload); err != nil {
				s.log.Warn().Err(err).Msg("movie list cache write failed")
			}
		}
	}

	return details, nil
}

// ListByCreator is the ownership-scoped listing. The creatorID is the
// authenticated principal's id, taken from the request context upstream.
func (s *MovieService) ListByCreator(ctx context.Context, creatorID string) ([]ports.MovieDetail, error) {
	movies, err := s.movies.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, movies)
}

// GetByID returns one record hydrated with creator, comments and likers.
func (s *MovieService) GetByID(ctx context.Context, id string) (*ports.MovieDetail, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, movie.CreatorID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		creator = nil
	}
	return toDetail(movie, creator), nil
}

// hydrate resolves every distinct creator id in one batch and attaches the
// summaries to the records.
func (s *MovieService) hydrate(ctx context.Context, movies []domain.Movie) ([]ports.MovieDetail, error) {
	ids := make([]string, 0, len(movies))
	seen := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.CreatorID]; !ok {
			seen[m.CreatorID] = struct{}{}
			ids = append(ids, m.CreatorID)
		}
	}

	creators, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]ports.MovieDetail, len(movies))
	for i := range movies {
		details[i] = *toDetail(&movies[i], creators[movies[i].CreatorID])
	}
	return details, nil
}

func (s *MovieService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("movie list cache invalidation failed")
	}
}

func toDetail(m *domain.Movie, creator *domain.User) *ports.MovieDetail {
	d := &ports.MovieDetail{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Year:        m.Year,
		Director:    m.Director,
		Image:       m.Image,
		Rating:      m.Rating,
		Comments:    m.Comments,
		Likes:       m.Likes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if d.Comments == nil {
		d.Comments = []string{}
	}
	if d.Likes == nil {
		d.Likes = []string{}
	}
	if creator != nil {
		d.Creator = &ports.CreatorSummary{
			ID:     creator.ID,
			Name:   creator.Name,
			Email:  creator.Email,
			Avatar: creator.Avatar,
		}
	}
	return d
}
