// Package extract pulls structured content out of loosely-structured,
// Word-exported HTML. It deliberately scans with regular expressions rather
// than a DOM parser: the input is often malformed and the contract is
// best-effort extraction that never fails, only comes back empty.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// minParagraphLen filters boilerplate like "&nbsp;" runs and stray fragments.
const minParagraphLen = 10

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	paragraphRe = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tableRe     = regexp.MustCompile(`(?is)<table[^>]*>(.*?)</table>`)
	rowRe       = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	cellRe      = regexp.MustCompile(`(?i)<t[dh][^>]*>(.*?)</t[dh]>`)
	listItemRe  = regexp.MustCompile(`(?i)<li>(.*?)</li>`)

	headingRes = map[string]*regexp.Regexp{
		"h1": regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`),
		"h2": regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`),
		"h3": regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`),
	}

	prosBlockRe = regexp.MustCompile(`(?i)<strong>Pros:?</strong>[\s\S]*?<ul>([\s\S]*?)</ul>`)
	consBlockRe = regexp.MustCompile(`(?i)<strong>Cons:?</strong>[\s\S]*?<ul>([\s\S]*?)</ul>`)

	// Slash form is tried before the "out of" form; first hit anywhere wins.
	ratingRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s+out of\s+(\d+)`),
	}
)

// stripTags removes any nested markup and trims surrounding whitespace.
func stripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

// Headings returns all h1-h3 headings in document order.
// Well-nestedness is not required or checked.
func Headings(html string) []Heading {
	var headings []Heading
	for _, level := range []string{"h1", "h2", "h3"} {
		for _, m := range headingRes[level].FindAllStringSubmatchIndex(html, -1) {
			headings = append(headings, Heading{
				Level:    level,
				Text:     stripTags(html[m[2]:m[3]]),
				Position: m[0],
			})
		}
	}
	sort.SliceStable(headings, func(i, j int) bool {
		return headings[i].Position < headings[j].Position
	})
	return headings
}

// Paragraphs returns the tag-stripped text of every <p> block whose trimmed
// text is longer than ten characters, in document order.
func Paragraphs(html string) []string {
	var paragraphs []string
	for _, m := range paragraphRe.FindAllStringSubmatch(html, -1) {
		text := stripTags(m[1])
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

// Tables returns every <table> block as rows of tag-stripped cell text.
// Rows without cells are dropped, tables without rows are dropped, and the
// column count comes from the first surviving row only.
func Tables(html string) []Table {
	var tables []Table
	for _, tm := range tableRe.FindAllStringSubmatchIndex(html, -1) {
		body := html[tm[2]:tm[3]]
		var rows [][]string
		for _, rm := range rowRe.FindAllStringSubmatch(body, -1) {
			var cells []string
			for _, cm := range cellRe.FindAllStringSubmatch(rm[1], -1) {
				cells = append(cells, stripTags(cm[1]))
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) > 0 {
			tables = append(tables, Table{
				Rows:     rows,
				Columns:  len(rows[0]),
				Position: tm[0],
			})
		}
	}
	return tables
}

// ProsCons finds the first "Pros" label followed by a <ul> block and the
// first "Cons" label followed by a <ul> block. The two searches are
// independent: with several lists between the labels the non-greedy match
// can pair a label with a list that belongs elsewhere. That matches how
// authors actually lay these documents out often enough to be kept.
func ProsCons(html string) ProsConsList {
	return ProsConsList{
		Pros: listItems(prosBlockRe, html),
		Cons: listItems(consBlockRe, html),
	}
}

func listItems(blockRe *regexp.Regexp, html string) []string {
	m := blockRe.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var items []string
	for _, im := range listItemRe.FindAllStringSubmatch(m[1], -1) {
		items = append(items, stripTags(im[1]))
	}
	return items
}

// ParseRating finds the first rating-shaped phrase in the document, trying
// "N/M" before "N out of M". No plausibility bounds are applied to the
// numbers. Returns nil when neither pattern matches.
func ParseRating(html string) *Rating {
	for _, re := range ratingRes {
		m := re.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		scale, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		return &Rating{Value: value, Scale: scale}
	}
	return nil
}

// Scan runs every extractor over the document and returns the combined
// summary. It never fails; patterns that do not match leave their fields
// empty.
func Scan(html string) Summary {
	return Summary{
		Headings:   Headings(html),
		Paragraphs: Paragraphs(html),
		Tables:     Tables(html),
		ProsCons:   ProsCons(html),
		Rating:     ParseRating(html),
	}
}
