package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/pkg/assistant"
)

// AssistantService wraps the injected AI capability with the mandatory
// fallback policy: a failed call never surfaces an error, it returns
// the original input (refine) or a fixed generic list (suggestions).
// Failures are only logged for diagnostics.
type AssistantService struct {
	AI     assistant.Assistant
	Logger *logrus.Logger
}

func NewAssistantService(ai assistant.Assistant, logger *logrus.Logger) *AssistantService {
	return &AssistantService{AI: ai, Logger: logger}
}

// RefineSummary returns an improved summary, or the input unchanged on
// any failure. Blank input short-circuits without a call.
func (s *AssistantService) RefineSummary(ctx context.Context, summary string) string {
	if strings.TrimSpace(summary) == "" {
		return summary
	}
	if s.AI == nil {
		return summary
	}
	refined, err := s.AI.Refine(ctx, summary)
	if err != nil || refined == "" {
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("assistant refine failed")
		}
		return summary
	}
	return refined
}

// SuggestNextSteps returns up to five suggested steps, or the fixed
// fallback list on any failure. Blank input yields an empty list.
func (s *AssistantService) SuggestNextSteps(ctx context.Context, summary string) []string {
	if strings.TrimSpace(summary) == "" {
		return []string{}
	}
	if s.AI == nil {
		return assistant.FallbackSuggestions()
	}
	steps, err := s.AI.SuggestNextSteps(ctx, summary)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("assistant suggest failed")
		}
		return assistant.FallbackSuggestions()
	}
	if len(steps) > assistant.MaxSuggestions {
		steps = steps[:assistant.MaxSuggestions]
	}
	if steps == nil {
		steps = []string{}
	}
	return steps
}
