package router

import (
	"net/http"
	"time"

	"cineverse/internal/api/v1/handler"
	"cineverse/internal/config"
	"cineverse/internal/middleware"
	"cineverse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) http.Handler {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	// 1. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 2. Initialize provider clients & services & handlers
	openAIClient := service.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, logger)
	tmdbClient := service.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, time.Duration(cfg.TMDBRequestTimeoutSec)*time.Second, logger)

	chatSvc := service.NewChatService(openAIClient, cfg.OpenAIModel, logger)
	movieSvc := service.NewMovieService(tmdbClient, cfg.TMDBImageBaseURL, logger)

	chatHandler := handler.NewChatHandler(chatSvc, validate, logger)
	movieHandler := handler.NewMovieHandler(movieSvc, validate, logger)
	healthHandler := handler.NewHealthHandler(cfg.OpenAIModel, movieSvc.Configured(), logger)

	// 3. Create ServeMux router
	mux := http.NewServeMux()
	chatHandler.RegisterRoutes(mux)
	movieHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)

	// 4. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, specify the frontend domain
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}
