package llm

import (
	"strings"
	"testing"

	"github.com/FranksOps/marketscope/internal/model"
)

func TestBuildPromptIncludesContext(t *testing.T) {
	pc := model.PromptContext{
		Keywords: []string{"running", "shoes"},
		Competitors: []model.CompetitorInsight{
			{Title: "Runner World", Summary: "the best shoes of 2026", Sentiment: 0.5},
		},
		Trends: model.TrendSummary{
			Values: map[string][]float64{"shoes": {40, 62}},
			Dates:  []string{"Jan 4, 2026", "Jan 11, 2026"},
		},
		Videos: []model.VideoSummary{
			{Title: "Shoe Review", Channel: "RunTube", Views: "1.2M views"},
		},
	}

	prompt, err := BuildPrompt(pc)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{"running", "Runner World", "Jan 4, 2026", "RunTube", "Market data:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain answer", "plain answer"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\nfenced\n```", "fenced"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := CleanResponse(tc.in); got != tc.want {
			t.Errorf("CleanResponse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
