package driven

import "context"

// LLMService provides chat-completion operations for posting enrichment.
//
// Implementations may include:
//   - OpenAI (and OpenAI-compatible endpoints)
//   - Azure OpenAI (same protocol, different auth header)
type LLMService interface {
	// Chat conducts a single chat-completion exchange and returns the
	// assistant message content.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// request. Used at startup to fail fast on bad credentials.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSONResponse requests a strict-JSON response format from the model.
	JSONResponse bool
}
