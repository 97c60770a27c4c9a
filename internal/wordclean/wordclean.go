// Package wordclean normalizes Word-exported HTML before it is handed to an
// LLM prompt. Word exports bury the content under mso-* inline styles,
// Office namespace tags, conditional comments, and style blocks; stripping
// them keeps the prompt budget for text that matters. Cleaning degrades
// gracefully, returning the input untouched when it cannot be parsed.
//
// The rule-based extraction pipeline does not use this package: its
// patterns are defined over the raw document.
package wordclean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/pagepress/internal/logger"
)

// Attributes Word spreads over nearly every element.
var strippedAttrs = []string{"style", "class", "lang", "align", "width", "height"}

var whitespaceRe = regexp.MustCompile(`[ \t\r\n]+`)

// Cleaner normalizes Word-exported HTML. Stateless and safe for concurrent
// use.
type Cleaner struct{}

// New creates a Cleaner.
func New() *Cleaner {
	return &Cleaner{}
}

// Clean returns a normalized copy of the input, or the input itself when it
// cannot be parsed or re-serialized.
func (c *Cleaner) Clean(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		logger.Warn("wordclean parse failed, keeping original", "error", err)
		return input
	}

	doc.Find("script, style, meta, link, xml").Remove()

	// Office namespace tags like <o:p> and <w:sdt>.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(goquery.NodeName(s), ":") {
			s.Remove()
		}
	})

	removeComments(doc)

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range strippedAttrs {
			s.RemoveAttr(attr)
		}
	})

	out, err := doc.Html()
	if err != nil {
		logger.Warn("wordclean serialize failed, keeping original", "error", err)
		return input
	}
	return whitespaceRe.ReplaceAllString(out, " ")
}

// removeComments walks the underlying node tree; goquery selections do not
// reach comment nodes.
func removeComments(doc *goquery.Document) {
	for _, root := range doc.Nodes {
		removeCommentNodes(root)
	}
}

func removeCommentNodes(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
		} else {
			removeCommentNodes(child)
		}
		child = next
	}
}
