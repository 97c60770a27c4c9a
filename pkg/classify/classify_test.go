package classify

import (
	"testing"

	"github.com/jmylchreest/pagepress/pkg/extract"
)

func TestDetectPageType(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		headings []extract.Heading
		want     string
	}{
		{
			name: "casino plus review",
			html: "An online casino worth a review",
			want: PageCasinoReview,
		},
		{
			name: "casino review wins even with sportsbook and crypto keywords",
			html: "casino review sportsbook crypto comparison",
			headings: []extract.Heading{
				{Level: "h1", Text: "Best crypto review"},
			},
			want: PageCasinoReview,
		},
		{
			name: "sportsbook keyword alone",
			html: "the leading sportsbook in town",
			want: PageSportsbookReview,
		},
		{
			name: "betting needs review in headings",
			html: "betting odds and markets",
			headings: []extract.Heading{
				{Level: "h1", Text: "Betway Review 2025"},
			},
			want: PageSportsbookReview,
		},
		{
			name: "betting without review heading falls through to default",
			html: "betting odds and markets",
			want: PageCasinoReview,
		},
		{
			name: "best heading plus crypto body",
			html: "compare crypto platforms",
			headings: []extract.Heading{
				{Level: "h1", Text: "Best Crypto Casinos"},
			},
			want: PageCryptoComparison,
		},
		{
			name: "best heading plus comparison body",
			html: "a comparison of platforms",
			headings: []extract.Heading{
				{Level: "h2", Text: "The Best Platforms"},
			},
			want: PageCryptoComparison,
		},
		{
			name: "nothing matches",
			html: "completely unrelated text",
			want: PageCasinoReview,
		},
		{
			name: "matching is case-insensitive",
			html: "CASINO REVIEW",
			want: PageCasinoReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPageType(tt.html, tt.headings); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	platforms := []Candidate{
		{Key: "888casino", Name: "888 Casino"},
		{Key: "betway", Name: "Betway"},
		{Key: "stake", Name: "Stake"},
	}

	tests := []struct {
		name   string
		html   string
		want   string
		wantOK bool
	}{
		{name: "matches display name", html: "Our 888 Casino verdict", want: "888casino", wantOK: true},
		{name: "matches key", html: "visit betway today", want: "betway", wantOK: true},
		{name: "case-insensitive", html: "STAKE is popular", want: "stake", wantOK: true},
		{name: "earlier config entry wins ties", html: "Betway versus 888 Casino", want: "888casino", wantOK: true},
		{name: "no match", html: "an unknown platform", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectPlatform(tt.html, platforms)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("empty candidates", func(t *testing.T) {
		if _, ok := DetectPlatform("anything", nil); ok {
			t.Error("expected no match with no candidates")
		}
	})

	t.Run("candidate with empty name cannot hijack detection", func(t *testing.T) {
		candidates := []Candidate{
			{Key: "broken", Name: ""},
			{Key: "betway", Name: "Betway"},
		}
		got, ok := DetectPlatform("a document mentioning only Betway", candidates)
		if !ok || got != "betway" {
			t.Errorf("expected betway, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("fully empty candidate never matches", func(t *testing.T) {
		if got, ok := DetectPlatform("anything", []Candidate{{}}); ok {
			t.Errorf("expected no match, got %q", got)
		}
	})
}
