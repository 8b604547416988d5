package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Trending returns the trending movies for the given time window
// ("day" or "week"; empty defaults to "day").
func (c *Client) Trending(ctx context.Context, window string) (*MoviePage, error) {
	if window == "" {
		window = "day"
	}

	var page MoviePage
	if err := c.get(ctx, fmt.Sprintf("/trending/movie/%s", url.PathEscape(window)), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Popular returns the current popular movies. page <= 0 requests the first page.
func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return c.listMovies(ctx, "/movie/popular", page)
}

// TopRated returns the top rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.listMovies(ctx, "/movie/top_rated", page)
}

// NowPlaying returns movies currently in theatres.
func (c *Client) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return c.listMovies(ctx, "/movie/now_playing", page)
}

func (c *Client) listMovies(ctx context.Context, path string, page int) (*MoviePage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var moviePage MoviePage
	if err := c.get(ctx, path, query, &moviePage); err != nil {
		return nil, err
	}
	return &moviePage, nil
}

// Search searches the catalog by title.
func (c *Client) Search(ctx context.Context, searchQuery string, page int) (*MoviePage, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var moviePage MoviePage
	if err := c.get(ctx, "/search/movie", query, &moviePage); err != nil {
		return nil, err
	}
	return &moviePage, nil
}

// MovieDetails returns the full record for a single movie.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetail, error) {
	var detail MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Genres returns the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var list genreList
	if err := c.get(ctx, "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}
