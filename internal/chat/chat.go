// Package chat answers follow-up questions about prior analyses. Each
// answer is grounded in the narratives of the most recent reports.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FranksOps/marketscope/internal/provider/llm"
	"github.com/FranksOps/marketscope/internal/storage"
)

// ContextReports is how many recent reports back one answer.
const ContextReports = 3

// ErrEmptyMessage is returned when the question is blank.
var ErrEmptyMessage = errors.New("chat message is empty")

// ErrNoCompleter is returned when no language model is configured.
var ErrNoCompleter = errors.New("no chat completer configured")

// metaPhrases are the greeting and meta lead-ins models habitually prepend
// to chat answers. They are stripped from the front of every answer.
var metaPhrases = []string{
	"Hi,", "Hello,", "Greetings,",
	"Based on", "According to", "The data shows",
	"Research indicates", "Analysis suggests",
	"Looking at",
}

// Completer is the language-model surface the chat service needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service answers questions over the report history.
type Service struct {
	store storage.Backend
	llm   Completer
	log   *slog.Logger
}

// New creates a chat service. The store may be nil; answers then carry no
// report context.
func New(store storage.Backend, completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, llm: completer, log: logger}
}

// Ask answers one question using the latest report narratives as context.
// A failing store degrades to a context-free answer rather than an error.
func (s *Service) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if s.llm == nil {
		return "", ErrNoCompleter
	}

	answer, err := s.llm.Complete(ctx, llm.ChatSystemPrompt, s.buildPrompt(ctx, message))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return cleanAnswer(llm.CleanResponse(answer)), nil
}

// cleanAnswer strips stacked greeting and meta prefixes ("Hello, Based on
// the data, ...") until the answer starts with substance.
func cleanAnswer(text string) string {
	cleaned := strings.TrimSpace(text)
	for {
		trimmed := cleaned
		for _, phrase := range metaPhrases {
			if strings.HasPrefix(trimmed, phrase) {
				trimmed = strings.TrimSpace(trimmed[len(phrase):])
			}
		}
		if trimmed == cleaned {
			return cleaned
		}
		cleaned = trimmed
	}
}

func (s *Service) buildPrompt(ctx context.Context, message string) string {
	var b strings.Builder

	if s.store != nil {
		reports, err := s.store.ListRecent(ctx, ContextReports)
		if err != nil {
			s.log.Warn("chat context unavailable", "error", err)
		}
		if len(reports) > 0 {
			b.WriteString("Prior analysis reports, newest first:\n\n")
			for i, r := range reports {
				fmt.Fprintf(&b, "Report %d (%s, analyzed %s):\n%s\n\n",
					i+1, r.Query, r.Timestamp.Format("2006-01-02"), r.Narrative)
			}
		}
	}
	if b.Len() == 0 {
		b.WriteString("No prior analysis reports are available.\n\n")
	}

	b.WriteString("Question: ")
	b.WriteString(message)
	return b.String()
}
