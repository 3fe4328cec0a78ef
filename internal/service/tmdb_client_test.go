package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestTMDBClient(srv *httptest.Server) TMDBClient {
	return NewTMDBClient(srv.URL, "tmdb-test-key", 2*time.Second, zerolog.Nop())
}

func TestSearchMovies_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)

		query := r.URL.Query()
		require.Equal(t, "tmdb-test-key", query.Get("api_key"))
		require.Equal(t, "The Matrix", query.Get("query"))
		require.Equal(t, "false", query.Get("include_adult"))
		require.Equal(t, "1999", query.Get("year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30","poster_path":"/abc.jpg","vote_average":8.2,"overview":"A hacker..."}]}`))
	}))
	defer srv.Close()

	year := 1999
	results, err := newTestTMDBClient(srv).SearchMovies(context.Background(), "The Matrix", &year)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 603, results[0].ID)
	require.Equal(t, "The Matrix", results[0].Title)
	require.Equal(t, "1999-03-30", results[0].ReleaseDate)
	require.NotNil(t, results[0].PosterPath)
	require.Equal(t, "/abc.jpg", *results[0].PosterPath)
}

func TestSearchMovies_YearOmittedWhenNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasYear := r.URL.Query()["year"]
		require.False(t, hasYear)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	results, err := newTestTMDBClient(srv).SearchMovies(context.Background(), "Nonexistent", nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestGetMovieDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/603", r.URL.Path)
		require.Equal(t, "tmdb-test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"id":603,"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	}))
	defer srv.Close()

	details, err := newTestTMDBClient(srv).GetMovieDetails(context.Background(), 603)
	require.NoError(t, err)
	require.Equal(t, 603, details.ID)
	require.Len(t, details.Genres, 2)
	require.Equal(t, "Action", details.Genres[0].Name)
}

func TestTMDBClient_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := newTestTMDBClient(srv).SearchMovies(context.Background(), "The Matrix", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
	require.Contains(t, err.Error(), "Invalid API key")
}

func TestTMDBClient_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	_, err := newTestTMDBClient(srv).GetMovieDetails(context.Background(), 603)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding response")
}

func TestTMDBClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewTMDBClient(srv.URL, "tmdb-test-key", 50*time.Millisecond, zerolog.Nop())
	_, err := c.SearchMovies(context.Background(), "The Matrix", nil)
	require.Error(t, err)
}

func TestTMDBClient_Configured(t *testing.T) {
	require.True(t, NewTMDBClient("", "key", time.Second, zerolog.Nop()).Configured())
	require.False(t, NewTMDBClient("", "", time.Second, zerolog.Nop()).Configured())
}
