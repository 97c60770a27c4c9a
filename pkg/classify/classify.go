// Package classify derives a page type and subject platform from extracted
// document content. All matching is case-insensitive substring matching over
// the raw document text; nothing here can fail, only fall through to the
// defaults.
package classify

import (
	"strings"

	"github.com/jmylchreest/pagepress/pkg/extract"
)

// Page types a document can classify as.
const (
	PageCasinoReview     = "casino-review"
	PageSportsbookReview = "sportsbook-review"
	PageCryptoComparison = "crypto-comparison"
)

// Candidate is one known platform to test the document against.
type Candidate struct {
	Key  string
	Name string
}

// DetectPlatform returns the key of the first candidate whose display name
// or key appears in the document. Candidates are tested in the order given,
// which is the configuration's insertion order; on ties the earlier entry
// wins. Ordering the configuration is therefore part of its contract.
// Empty names and keys never match: Contains with an empty substring is
// always true and would let one malformed candidate claim every document.
func DetectPlatform(html string, candidates []Candidate) (string, bool) {
	lower := strings.ToLower(html)
	for _, c := range candidates {
		if containsTerm(lower, c.Name) || containsTerm(lower, c.Key) {
			return c.Key, true
		}
	}
	return "", false
}

func containsTerm(lower, term string) bool {
	return term != "" && strings.Contains(lower, strings.ToLower(term))
}

// DetectPageType classifies the document through a fixed rule cascade.
// The first matching rule wins, and the default is a casino review.
func DetectPageType(html string, headings []extract.Heading) string {
	lower := strings.ToLower(html)

	var parts []string
	for _, h := range headings {
		parts = append(parts, strings.ToLower(h.Text))
	}
	headingText := strings.Join(parts, " ")

	switch {
	case strings.Contains(lower, "casino") && strings.Contains(lower, "review"):
		return PageCasinoReview
	case strings.Contains(lower, "sportsbook") ||
		(strings.Contains(lower, "betting") && strings.Contains(headingText, "review")):
		return PageSportsbookReview
	case strings.Contains(headingText, "best") &&
		(strings.Contains(lower, "crypto") || strings.Contains(lower, "comparison")):
		return PageCryptoComparison
	}
	return PageCasinoReview
}
