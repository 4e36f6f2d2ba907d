package services

import (
	"context"
	"strings"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
)

const suggestionSeparator = "||"

const suggestionPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. " +
	"Each question should be separated by '||'. These questions are for an anonymous social messaging platform " +
	"and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on " +
	"universal themes that encourage friendly interaction. For example, your output should be structured like this: " +
	"'What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||" +
	"What's a simple thing that makes you happy?'. Ensure the questions are intriguing and contribute to a positive " +
	"and welcoming conversational environment."

// TextGenerator completes a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type suggestionService struct {
	generator TextGenerator
}

// NewSuggestionService creates a new SuggestionService implementation
func NewSuggestionService(generator TextGenerator) SuggestionService {
	return &suggestionService{generator: generator}
}

func (s *suggestionService) SuggestMessages(ctx context.Context) ([]string, error) {
	text, err := s.generator.Generate(ctx, suggestionPrompt)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate message suggestions", err)
	}

	suggestions := splitSuggestions(text)
	if len(suggestions) == 0 {
		return nil, apperrors.Internal("Failed to generate message suggestions", nil)
	}
	return suggestions, nil
}

func splitSuggestions(text string) []string {
	parts := strings.Split(text, suggestionSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
