package ports

import "context"

// Prompt is the rendered system/user pair sent to the provider.
type Prompt struct {
	System string
	User   string
}

// Protocol names reported in ProviderResult.
const (
	ProtocolCompletion = "completion"
	ProtocolAssistant  = "assistant"
)

// TokenUsage is the provider's usage accounting for one call. Known is
// false when the provider did not report usage; settlement then substitutes
// a fixed estimate.
type TokenUsage struct {
	Total int
	Known bool
}

// ProviderResult is the outcome of a successful provider call.
type ProviderResult struct {
	Text     string
	Tokens   TokenUsage
	Model    string
	Protocol string
}

// Invoker calls the upstream model with the given prompt. The model id is
// resolved server-side from the tier; implementations may route through more
// than one wire protocol internally.
type Invoker interface {
	Invoke(ctx context.Context, prompt Prompt, model string) (ProviderResult, error)
}
