package handler

import (
	"encoding/json"
	"net/http"

	"cineverse/internal/api/v1/dto"

	"github.com/rs/zerolog"
)

const serviceName = "Cineverse API"

// HealthHandler reports static service status. It never calls an external
// provider.
type HealthHandler struct {
	modelName         string
	movieDBConfigured bool
	logger            zerolog.Logger
}

func NewHealthHandler(modelName string, movieDBConfigured bool, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		modelName:         modelName,
		movieDBConfigured: movieDBConfigured,
		logger:            logger,
	}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
}

// health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponseDTO
// @Router /health [get]
func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := dto.HealthResponseDTO{
		Status:            "healthy",
		Service:           serviceName,
		Model:             h.modelName,
		MovieDBConfigured: h.movieDBConfigured,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
