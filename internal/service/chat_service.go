package service

import (
	"bufio"
	"context"
	"io"

	"cineverse/internal/model"

	"github.com/rs/zerolog"
)

// sseDoneMarker terminates an OpenAI completion stream.
const sseDoneMarker = "[DONE]"

const (
	chatMaxTokens   = 1000
	chatTemperature = 0.7
)

// movieSystemPrompt is the CineBot persona used for recommendation requests.
const movieSystemPrompt = `You are CineBot, an expert movie recommendation assistant for Cineverse.

Your expertise includes:
- Deep knowledge of films across all genres, eras, and countries
- Understanding of director styles, cinematography, and storytelling techniques
- Ability to match movies to user moods and preferences

First, determine whether the user named a specific movie:
1. If they asked about a specific movie, respond with only that movie's details.
2. Otherwise, provide 3-5 ranked recommendations. For each one include the
   title, year, genre, a brief reason the user might enjoy it, and an
   IMDb-style rating.

Always write each movie title followed by "(Year, Genre)" so the frontend can
display it. Format your responses in a clean, readable way and use **bold**
for movie titles. Be enthusiastic but not overwhelming. If asked about
non-movie topics, politely redirect to movie-related discussions.`

const genericSystemPrompt = "You are a helpful assistant."

// ChatService relays a user message to the completion provider and exposes
// the incremental response as a channel of stream events.
type ChatService interface {
	Configured() bool
	StreamCompletion(ctx context.Context, message string, isRecommendation bool) <-chan model.StreamEvent
}

type chatService struct {
	client OpenAIClient
	model  string
	logger zerolog.Logger
}

func NewChatService(client OpenAIClient, modelName string, logger zerolog.Logger) ChatService {
	return &chatService{
		client: client,
		model:  modelName,
		logger: logger.With().Str("service", "ChatService").Logger(),
	}
}

func (s *chatService) Configured() bool {
	return s.client.Configured()
}

// StreamCompletion opens a streaming completion call and forwards each
// non-empty text fragment in arrival order. The returned channel ends with
// exactly one Done event on success or exactly one Err event on failure,
// never both. Cancelling ctx abandons the upstream connection.
func (s *chatService) StreamCompletion(ctx context.Context, message string, isRecommendation bool) <-chan model.StreamEvent {
	events := make(chan model.StreamEvent)

	go func() {
		defer close(events)

		systemPrompt := genericSystemPrompt
		if isRecommendation {
			systemPrompt = movieSystemPrompt
		}

		stream, err := s.client.StreamChatCompletion(ctx, ChatCompletionRequest{
			Model: s.model,
			Messages: []model.ChatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: message},
			},
			MaxTokens:   chatMaxTokens,
			Temperature: chatTemperature,
			Stream:      true,
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to open completion stream")
			s.emit(ctx, events, model.StreamEvent{Err: err})
			return
		}
		defer func() {
			if closeErr := stream.Close(); closeErr != nil {
				s.logger.Warn().Err(closeErr).Msg("Failed to close completion stream")
			}
		}()

		reader := bufio.NewReader(stream)
		for {
			data, err := ParseSSEData(reader)
			if err != nil {
				if err == io.EOF {
					s.emit(ctx, events, model.StreamEvent{Done: true})
					return
				}
				s.logger.Error().Err(err).Msg("Error reading from completion stream")
				s.emit(ctx, events, model.StreamEvent{Err: err})
				return
			}

			if data == sseDoneMarker {
				s.emit(ctx, events, model.StreamEvent{Done: true})
				return
			}

			text, err := decodeStreamChunk(data)
			if err != nil {
				s.logger.Error().Err(err).Msg("Malformed completion chunk")
				s.emit(ctx, events, model.StreamEvent{Err: err})
				return
			}
			if text == "" {
				continue
			}
			if !s.emit(ctx, events, model.StreamEvent{Text: text}) {
				return
			}
		}
	}()

	return events
}

// emit delivers an event unless the consumer is gone. A cancelled context
// always wins: no event is delivered after cancellation.
func (s *chatService) emit(ctx context.Context, events chan<- model.StreamEvent, ev model.StreamEvent) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
