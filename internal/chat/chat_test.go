package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/FranksOps/marketscope/internal/model"
)

type fakeCompleter struct {
	answer   string
	err      error
	lastUser string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	return f.answer, f.err
}

type fakeStore struct {
	reports []*model.Report
	err     error
}

func (f *fakeStore) Put(ctx context.Context, r *model.Report) error { return nil }

func (f *fakeStore) ListRecent(ctx context.Context, n int) ([]*model.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.reports) {
		return f.reports[:n], nil
	}
	return f.reports, nil
}

func (f *fakeStore) Close() error { return nil }

func TestAskUsesRecentNarratives(t *testing.T) {
	store := &fakeStore{reports: []*model.Report{
		{Query: "running shoes", Timestamp: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), Narrative: "demand is rising"},
		{Query: "hiking boots", Timestamp: time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), Narrative: "market is saturated"},
	}}
	completer := &fakeCompleter{answer: "Demand for shoes is rising."}

	s := New(store, completer, nil)
	answer, err := s.Ask(context.Background(), "what did the shoe analysis find?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Demand for shoes is rising." {
		t.Errorf("unexpected answer: %q", answer)
	}

	for _, want := range []string{"demand is rising", "market is saturated", "running shoes", "Question: what did the shoe analysis find?"} {
		if !strings.Contains(completer.lastUser, want) {
			t.Errorf("prompt missing %q:\n%s", want, completer.lastUser)
		}
	}
}

func TestAskEmptyMessage(t *testing.T) {
	s := New(&fakeStore{}, &fakeCompleter{}, nil)
	if _, err := s.Ask(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestAskNoCompleter(t *testing.T) {
	s := New(&fakeStore{}, nil, nil)
	if _, err := s.Ask(context.Background(), "anything"); !errors.Is(err, ErrNoCompleter) {
		t.Fatalf("expected ErrNoCompleter, got %v", err)
	}
}

func TestAskStoreFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{answer: "I have no prior reports to draw on."}
	s := New(&fakeStore{err: errors.New("store down")}, completer, nil)

	answer, err := s.Ask(context.Background(), "what do you know?")
	if err != nil {
		t.Fatalf("store failure must not be terminal: %v", err)
	}
	if answer == "" {
		t.Error("expected an answer despite missing context")
	}
	if !strings.Contains(completer.lastUser, "No prior analysis reports") {
		t.Errorf("expected context-free prompt, got:\n%s", completer.lastUser)
	}
}

func TestAskStripsMetaPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, demand is rising.", "demand is rising."},
		{"Based on the latest report, the market looks healthy.", "the latest report, the market looks healthy."},
		{"Hello, Based on the data, demand is rising", "the data, demand is rising"},
		{"Looking at the trend series, interest doubled.", "the trend series, interest doubled."},
		{"Demand is rising according to every source.", "Demand is rising according to every source."},
	}
	for _, tc := range cases {
		completer := &fakeCompleter{answer: tc.in}
		s := New(&fakeStore{}, completer, nil)

		answer, err := s.Ask(context.Background(), "how is demand?")
		if err != nil {
			t.Fatalf("Ask: %v", err)
		}
		if answer != tc.want {
			t.Errorf("Ask answer for %q = %q, want %q", tc.in, answer, tc.want)
		}
	}
}

func TestAskStripsFencing(t *testing.T) {
	completer := &fakeCompleter{answer: "```\nfenced answer\n```"}
	s := New(&fakeStore{}, completer, nil)

	answer, err := s.Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "fenced answer" {
		t.Errorf("expected fencing stripped, got %q", answer)
	}
}
