package handler

import "github.com/filmmemories/backend/internal/core/ports"

// movieResponse wraps a single hydrated movie record.
type movieResponse struct {
	Data *ports.MovieDetail `json:"data"`
}

// listMoviesResponse wraps a movie listing with its count.
type listMoviesResponse struct {
	Count int                 `json:"count"`
	Data  []ports.MovieDetail `json:"data"`
}
