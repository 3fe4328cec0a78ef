package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cineverse/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeMovieService struct {
	configured bool
	result     *model.MovieLookup
	err        error

	calls     int
	lastTitle string
	lastYear  *int
}

func (f *fakeMovieService) Configured() bool { return f.configured }

func (f *fakeMovieService) Lookup(_ context.Context, title string, year *int) (*model.MovieLookup, error) {
	f.calls++
	f.lastTitle = title
	f.lastYear = year
	return f.result, f.err
}

func doSearchMovie(svc *fakeMovieService, body string) *httptest.ResponseRecorder {
	h := NewMovieHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	rec := httptest.NewRecorder()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	req := httptest.NewRequest(http.MethodPost, "/search-movie", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSearchMovie_Found(t *testing.T) {
	posterURL := "https://image.tmdb.org/t/p/w500/abc.jpg"
	svc := &fakeMovieService{
		configured: true,
		result: &model.MovieLookup{
			Found: true,
			Movie: &model.Movie{
				ID:        603,
				Title:     "The Matrix",
				Year:      "1999",
				PosterURL: &posterURL,
				Rating:    8.2,
				Overview:  "A hacker...",
				Genres:    []string{"Action", "Science Fiction"},
			},
		},
	}
	rec := doSearchMovie(svc, `{"title":"The Matrix","year":1999}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got model.MovieLookup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Found)
	require.Equal(t, "The Matrix", got.Movie.Title)
	require.Equal(t, "1999", got.Movie.Year)

	require.Equal(t, "The Matrix", svc.lastTitle)
	require.NotNil(t, svc.lastYear)
	require.Equal(t, 1999, *svc.lastYear)
}

func TestSearchMovie_NotFoundIsSuccessResponse(t *testing.T) {
	svc := &fakeMovieService{
		configured: true,
		result:     &model.MovieLookup{Found: false, Message: "Movie 'Zzyzx Road 2' not found"},
	}
	rec := doSearchMovie(svc, `{"title":"Zzyzx Road 2"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.MovieLookup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Found)
	require.Nil(t, got.Movie)
	require.Equal(t, "Movie 'Zzyzx Road 2' not found", got.Message)
	require.Nil(t, svc.lastYear)
}

func TestSearchMovie_UpstreamFailureIsBadGateway(t *testing.T) {
	svc := &fakeMovieService{configured: true, err: errors.New("tmdb returned status 500")}
	rec := doSearchMovie(svc, `{"title":"The Matrix"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "Movie lookup failed")
}

func TestSearchMovie_MissingCredential(t *testing.T) {
	svc := &fakeMovieService{configured: false}
	rec := doSearchMovie(svc, `{"title":"The Matrix"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "TMDB_API_KEY")
	require.Equal(t, 0, svc.calls)
}

func TestSearchMovie_MissingTitle(t *testing.T) {
	svc := &fakeMovieService{configured: true}
	rec := doSearchMovie(svc, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 0, svc.calls)
}

func TestSearchMovie_InvalidJSON(t *testing.T) {
	svc := &fakeMovieService{configured: true}
	rec := doSearchMovie(svc, `{broken`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 0, svc.calls)
}

func TestSearchMovie_MethodNotAllowed(t *testing.T) {
	svc := &fakeMovieService{configured: true}
	h := NewMovieHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	rec := httptest.NewRecorder()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search-movie", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
