package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TMDBMovie is one search candidate returned by the TMDB search endpoint.
// The search endpoint carries genre IDs only, so genre names require a
// follow-up detail call.
type TMDBMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDBMovieDetails is the minimal shape of the per-movie detail endpoint.
type TMDBMovieDetails struct {
	ID     int         `json:"id"`
	Genres []TMDBGenre `json:"genres"`
}

// TMDBClient wraps the two TMDB endpoints the lookup path needs.
type TMDBClient interface {
	Configured() bool
	SearchMovies(ctx context.Context, title string, year *int) ([]TMDBMovie, error)
	GetMovieDetails(ctx context.Context, movieID int) (*TMDBMovieDetails, error)
}

type tmdbClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

func NewTMDBClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) TMDBClient {
	return &tmdbClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("service", "TMDBClient").Logger(),
	}
}

func (c *tmdbClient) Configured() bool {
	return c.apiKey != ""
}

type tmdbSearchResponse struct {
	Results []TMDBMovie `json:"results"`
}

// SearchMovies queries the title-search endpoint. Adult content is always
// excluded; the year filter is applied only when given.
func (c *tmdbClient) SearchMovies(ctx context.Context, title string, year *int) ([]TMDBMovie, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("query", title)
	query.Set("include_adult", "false")
	if year != nil {
		query.Set("year", strconv.Itoa(*year))
	}

	var payload tmdbSearchResponse
	if err := c.getJSON(ctx, "/search/movie", query, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *tmdbClient) GetMovieDetails(ctx context.Context, movieID int) (*TMDBMovieDetails, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)

	var payload TMDBMovieDetails
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("making request to TMDB: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			c.logger.Warn().Err(readErr).Int("status_code", resp.StatusCode).Msg("Failed to read error body from TMDB")
			return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
		}

		errorMsg := string(bodyBytes)
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("error_body", errorMsg).
			Msg("TMDB returned error")

		return fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode, errorMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
