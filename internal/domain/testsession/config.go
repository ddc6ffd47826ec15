package testsession

// Orientation controls which side of a flashcard is shown as the
// question. It is fixed for the lifetime of a session.
type Orientation string

const (
	PromptToResponse Orientation = "prompt_to_response"
	ResponseToPrompt Orientation = "response_to_prompt"
)

// Config holds the per-session settings fixed at creation time.
type Config struct {
	Orientation Orientation
}

// DefaultConfig asks questions front-to-back.
func DefaultConfig() Config {
	return Config{Orientation: PromptToResponse}
}
