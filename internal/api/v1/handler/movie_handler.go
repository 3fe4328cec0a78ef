package handler

import (
	"encoding/json"
	"net/http"

	"cineverse/internal/api/v1/dto"
	"cineverse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type MovieHandler struct {
	movieService service.MovieService
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewMovieHandler(movieService service.MovieService, validate *validator.Validate, logger zerolog.Logger) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		validate:     validate,
		logger:       logger,
	}
}

func (h *MovieHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/search-movie", h.searchMovie)
}

// searchMovie godoc
// @Summary Look up movie metadata by title
// @Description Searches TMDB for the given title, fetches details for the top hit and returns a normalized movie record. A search with zero hits is a successful found:false response; an upstream failure is a 502.
// @Tags movies
// @Accept json
// @Produce json
// @Param request body dto.MovieSearchRequestDTO true "Movie search request"
// @Success 200 {object} model.MovieLookup
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "TMDB API key not configured"
// @Failure 502 {string} string "Movie lookup failed"
// @Router /search-movie [post]
func (h *MovieHandler) searchMovie(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.movieService.Configured() {
		http.Error(w, "TMDB API key not configured. Please set TMDB_API_KEY.", http.StatusInternalServerError)
		return
	}

	var req dto.MovieSearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.movieService.Lookup(r.Context(), req.Title, req.Year)
	if err != nil {
		http.Error(w, "Movie lookup failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
