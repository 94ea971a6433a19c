package providers

import "github.com/Void-n-Null/MiniCouncil/internal/schema"

// New constructs the model provider for the given params. There is a single
// backend today; the factory keeps call sites stable if more are added.
func New(p Params) schema.ModelProvider {
	return NewOpenAIProvider(p)
}
