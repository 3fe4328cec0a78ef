package model

// ChatMessage is a single message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamEvent is one unit of a streamed chat response. Exactly one of
// Text, Err or Done is set. A stream ends with either one Done event or
// one Err event, never both.
type StreamEvent struct {
	Text string
	Err  error
	Done bool
}
