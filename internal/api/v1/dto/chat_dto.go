package dto

// ChatRequestDTO is the body of POST /chat. Stream and IsRecommendation
// default to true when omitted. Stream is accepted for compatibility with
// existing clients but the response is always streamed.
type ChatRequestDTO struct {
	Message          string `json:"message" validate:"required"`
	Stream           *bool  `json:"stream,omitempty"`
	IsRecommendation *bool  `json:"is_recommendation,omitempty"`
}

// StreamEventDTO is one SSE frame payload on the /chat response. Exactly one
// field is set per frame; the stream terminates with a literal
// "data: [DONE]" frame instead of a JSON payload.
type StreamEventDTO struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}
