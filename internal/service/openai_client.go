package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cineverse/internal/model"

	"github.com/rs/zerolog"
)

const openAIChatCompletionsEndpoint = "/chat/completions"

// OpenAIClient issues streaming chat completion requests against an
// OpenAI-compatible API.
type OpenAIClient interface {
	Configured() bool
	StreamChatCompletion(ctx context.Context, req ChatCompletionRequest) (io.ReadCloser, error)
}

// ChatCompletionRequest is the minimal request shape for the Chat
// Completions endpoint.
type ChatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []model.ChatMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
	Stream      bool                `json:"stream"`
}

type openAIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

func NewOpenAIClient(baseURL, apiKey string, logger zerolog.Logger) OpenAIClient {
	return &openAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			// No timeout for streaming - rely on context cancellation instead
			// This allows long-running streaming responses without premature cancellation
		},
		logger: logger.With().Str("service", "OpenAIClient").Logger(),
	}
}

func (c *openAIClient) Configured() bool {
	return c.apiKey != ""
}

// StreamChatCompletion opens a streaming completion call and returns the
// raw SSE body. The caller owns the returned body and must close it.
func (c *openAIClient) StreamChatCompletion(ctx context.Context, chatReq ChatCompletionRequest) (io.ReadCloser, error) {
	jsonBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	url := c.baseURL + openAIChatCompletionsEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request to OpenAI: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()

		if readErr != nil {
			c.logger.Warn().Err(readErr).Int("status_code", resp.StatusCode).Msg("Failed to read error body from OpenAI")
			return nil, fmt.Errorf("openai returned status %d", resp.StatusCode)
		}

		errorMsg := string(bodyBytes)
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("error_body", errorMsg).
			Msg("OpenAI returned error")

		return nil, fmt.Errorf("openai returned status %d: %s", resp.StatusCode, errorMsg)
	}

	return resp.Body, nil
}

// ParseSSEData reads a single SSE event from the stream and returns its raw
// data payload. SSE format: "data: <payload>\n\n" where a blank line
// separates events. Handles comments (lines starting with ":") and empty
// lines.
func ParseSSEData(reader *bufio.Reader) (string, error) {
	var dataLine string
	foundData := false

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if foundData {
					// We found data but hit EOF before blank line - this is valid
					break
				}
				return "", io.EOF
			}
			return "", err
		}

		line = strings.TrimRight(line, "\r\n")

		// Empty line indicates end of SSE event
		if len(line) == 0 {
			if foundData {
				break
			}
			// Skip blank lines before data
			continue
		}

		// Skip comments (SSE spec allows comments starting with ":")
		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			dataLine = line[6:]
			foundData = true
			continue
		}

		// Non-empty, non-comment line after data: likely malformed SSE, parse
		// what we have.
		if foundData {
			break
		}
	}

	if !foundData {
		return "", fmt.Errorf("no data line found in SSE event")
	}

	return dataLine, nil
}

// streamChunk is the minimal shape of a streamed completion chunk.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// decodeStreamChunk extracts the delta text from a raw completion chunk.
// Chunks without a delta (role-only or usage chunks) decode to "".
func decodeStreamChunk(data string) (string, error) {
	var chunk streamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", fmt.Errorf("unmarshaling stream chunk %q: %w", data, err)
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}
