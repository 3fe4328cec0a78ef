package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"cineverse/internal/api/v1/dto"
	"cineverse/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type ChatHandler struct {
	chatService service.ChatService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewChatHandler(chatService service.ChatService, validate *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validate:    validate,
		logger:      logger,
	}
}

func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/chat", h.chat)
}

// chat godoc
// @Summary Stream a chat completion
// @Description Sends a user message to the completion provider and streams the response back as Server-Sent Events (SSE). Each frame is either {"text": "..."} or {"error": "..."}; a successful stream terminates with a literal "data: [DONE]" frame.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body dto.ChatRequestDTO true "Chat request"
// @Success 200 {string} string "Server-Sent Events stream"
// @Failure 400 {string} string "Invalid JSON payload or empty message"
// @Failure 500 {string} string "OpenAI API key not configured"
// @Router /chat [post]
func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.chatService.Configured() {
		http.Error(w, "OpenAI API key not configured. Please set OPENAI_API_KEY.", http.StatusInternalServerError)
		return
	}

	var req dto.ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	isRecommendation := true
	if req.IsRecommendation != nil {
		isRecommendation = *req.IsRecommendation
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events := h.chatService.StreamCompletion(r.Context(), req.Message, isRecommendation)
	for event := range events {
		switch {
		case event.Err != nil:
			// The response already started streaming, so the failure is
			// delivered in-band instead of as an HTTP status.
			h.writeEvent(w, flusher, dto.StreamEventDTO{Error: event.Err.Error()})
			return
		case event.Done:
			if _, err := fmt.Fprintf(w, "data: [DONE]\n\n"); err != nil {
				h.logger.Error().Err(err).Msg("Failed to write [DONE] marker")
				return
			}
			flusher.Flush()
			return
		default:
			if !h.writeEvent(w, flusher, dto.StreamEventDTO{Text: event.Text}) {
				return
			}
		}
	}
}

func (h *ChatHandler) writeEvent(w http.ResponseWriter, flusher http.Flusher, payload dto.StreamEventDTO) bool {
	eventJSON, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal stream event")
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", eventJSON); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write stream event")
		return false
	}
	flusher.Flush()
	return true
}
