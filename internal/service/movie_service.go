package service

import (
	"context"
	"fmt"
	"math"

	"cineverse/internal/model"

	"github.com/rs/zerolog"
)

// maxGenres caps the genre list carried on a normalized movie record.
const maxGenres = 3

// MovieService resolves a movie title to a normalized record via a two-call
// TMDB pipeline: title search, then detail fetch for the top hit.
type MovieService interface {
	Configured() bool
	Lookup(ctx context.Context, title string, year *int) (*model.MovieLookup, error)
}

type movieService struct {
	client       TMDBClient
	imageBaseURL string
	logger       zerolog.Logger
}

func NewMovieService(client TMDBClient, imageBaseURL string, logger zerolog.Logger) MovieService {
	return &movieService{
		client:       client,
		imageBaseURL: imageBaseURL,
		logger:       logger.With().Str("service", "MovieService").Logger(),
	}
}

func (s *movieService) Configured() bool {
	return s.client.Configured()
}

// Lookup returns a found:false result when the search has no candidates and
// a non-nil error on any transport or decoding failure. The first search hit
// is trusted as-is; no re-ranking or year disambiguation happens here.
func (s *movieService) Lookup(ctx context.Context, title string, year *int) (*model.MovieLookup, error) {
	results, err := s.client.SearchMovies(ctx, title, year)
	if err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("Failed to search movie")
		return nil, fmt.Errorf("searching movie: %w", err)
	}

	if len(results) == 0 {
		return &model.MovieLookup{
			Found:   false,
			Message: fmt.Sprintf("Movie '%s' not found", title),
		}, nil
	}

	hit := results[0]
	details, err := s.client.GetMovieDetails(ctx, hit.ID)
	if err != nil {
		s.logger.Error().Err(err).Int("movie_id", hit.ID).Msg("Failed to fetch movie details")
		return nil, fmt.Errorf("fetching movie details: %w", err)
	}

	movie := &model.Movie{
		ID:       hit.ID,
		Title:    hit.Title,
		Year:     releaseYear(hit.ReleaseDate),
		Rating:   math.Round(hit.VoteAverage*10) / 10,
		Overview: hit.Overview,
		Genres:   genreNames(details.Genres),
	}
	if hit.PosterPath != nil && *hit.PosterPath != "" {
		posterURL := s.imageBaseURL + *hit.PosterPath
		movie.PosterURL = &posterURL
	}

	return &model.MovieLookup{Found: true, Movie: movie}, nil
}

// releaseYear extracts the 4-digit year prefix of a TMDB release date,
// or "" when the date is absent.
func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	return releaseDate[:4]
}

func genreNames(genres []TMDBGenre) []string {
	names := make([]string, 0, maxGenres)
	for _, genre := range genres {
		if len(names) == maxGenres {
			break
		}
		names = append(names, genre.Name)
	}
	return names
}
