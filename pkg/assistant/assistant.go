// Package assistant defines the text-refinement capability and its
// Gemini-backed implementation. The contract at the call boundary is
// "send text, receive possibly-improved text"; the fallback-to-input
// policy on failure lives in the application layer, not here.
package assistant

import "context"

// Assistant is the injected AI capability. Implementations may fail or
// time out; callers must never let those failures reach the data model.
type Assistant interface {
	// Refine returns a rewritten, more polished version of the summary.
	Refine(ctx context.Context, summary string) (string, error)

	// SuggestNextSteps returns up to MaxSuggestions short next-step
	// lines for the summary.
	SuggestNextSteps(ctx context.Context, summary string) ([]string, error)
}

// MaxSuggestions caps the suggestion list length.
const MaxSuggestions = 5

// FallbackSuggestions is returned by the application layer whenever the
// assistant call fails.
func FallbackSuggestions() []string {
	return []string{
		"Pazar araştırması yap",
		"Minimum Viable Product (MVP) tasarla",
		"Potansiyel müşteri görüşmeleri yap",
	}
}
