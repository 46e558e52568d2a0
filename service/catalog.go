package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"eventify-cli/model"
	"eventify-cli/query"
)

const moviesPerPage = 8

// ListMovies fetches one page of the now-showing catalog for the canonical
// filter set.
func (c *Client) ListMovies(ctx context.Context, filters query.FilterSet) (model.MoviePage, error) {
	params := url.Values{}
	if search := strings.TrimSpace(filters.Search); search != "" {
		params.Set("search", search)
	}
	if filters.GenreID != "" && filters.GenreID != query.GenreAll {
		params.Set("genre_id", filters.GenreID)
	}
	if filters.Date != "" {
		params.Set("date", filters.Date)
	}
	if filters.Page >= 1 {
		params.Set("page", fmt.Sprintf("%d", filters.Page))
	}
	params.Set("per_page", fmt.Sprintf("%d", moviesPerPage))
	params.Set("status", "now_showing")

	endpoint := c.endpoint("/movies") + "?" + params.Encode()
	var page model.MoviePage
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return model.MoviePage{}, err
	}
	if page.CurrentPage < 1 {
		page.CurrentPage = 1
	}
	if page.LastPage < 1 {
		page.LastPage = 1
	}
	return page, nil
}

// GetMovieByID fetches a movie with its screenings for the given date.
func (c *Client) GetMovieByID(ctx context.Context, id int64, date string) (model.Movie, error) {
	if id <= 0 {
		return model.Movie{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/%d", c.endpoint("/movies"), id)
	if date != "" {
		endpoint += "?date=" + url.QueryEscape(date)
	}
	var movie model.Movie
	if err := c.getJSON(ctx, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

// ListGenres fetches the genre catalog.
func (c *Client) ListGenres(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := c.getJSON(ctx, c.endpoint("/genres"), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
