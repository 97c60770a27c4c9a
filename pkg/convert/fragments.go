package convert

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/extract"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

// complianceNote is appended to every CTA button, verbatim.
const complianceNote = "18+ Only • BeGambleAware.org • T&Cs Apply"

var titleCaser = cases.Title(language.English)

// FragmentBuilder renders extracted data into the reusable component
// fragments, consulting the config store for affiliate and platform data.
type FragmentBuilder struct {
	config    *config.Store
	templates *templates.Store
}

// NewFragmentBuilder creates a builder over the given stores.
func NewFragmentBuilder(cfg *config.Store, tpl *templates.Store) *FragmentBuilder {
	return &FragmentBuilder{config: cfg, templates: tpl}
}

// ProsConsGrid renders the pros/cons component. Either list may be empty;
// callers are expected to substitute a placeholder when both are.
func (b *FragmentBuilder) ProsConsGrid(list extract.ProsConsList) string {
	component := b.templates.Component(templates.ComponentProsCons)

	out := strings.ReplaceAll(component, "{{pros_items}}", joinListItems(list.Pros))
	return strings.ReplaceAll(out, "{{cons_items}}", joinListItems(list.Cons))
}

func joinListItems(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "<li>"+item+"</li>")
	}
	return strings.Join(lines, "\n            ")
}

// QuickFactsTable renders a two-column attribute/details table. Rows with
// fewer than two cells are skipped; a details cell is highlighted when it
// carries emphasis markup or mentions "free".
func (b *FragmentBuilder) QuickFactsTable(table extract.Table) string {
	component := b.templates.Component(templates.ComponentTable2Col)

	var rows []string
	for _, row := range table.Rows {
		if len(row) < 2 {
			continue
		}
		highlight := ""
		if strings.Contains(row[1], "<strong>") || strings.Contains(strings.ToLower(row[1]), "free") {
			highlight = ` class="highlight"`
		}
		rows = append(rows, fmt.Sprintf("            <tr>\n                <td>%s</td>\n                <td%s>%s</td>\n            </tr>", row[0], highlight, row[1]))
	}

	replacer := strings.NewReplacer(
		"{{table_caption}}", "Quick Facts",
		"{{col1_header}}", "Attribute",
		"{{col2_header}}", "Details",
		"{{table_rows}}", strings.Join(rows, "\n"),
	)
	return replacer.Replace(component)
}

// CTAButton renders the call-to-action button for a platform. Platforms
// without a configured affiliate link get no button at all.
func (b *FragmentBuilder) CTAButton(platformKey string) string {
	url, ok := b.config.AffiliateLink(platformKey)
	if !ok {
		return ""
	}

	var name string
	if meta, ok := b.config.PlatformMetadata(platformKey); ok && meta.Name != "" {
		name = meta.Name
	} else {
		name = titleCaser.String(platformKey)
	}

	component := b.templates.Component(templates.ComponentCTAButton)
	replacer := strings.NewReplacer(
		"{{cta_url}}", url,
		"{{cta_text}}", "Visit "+name,
		"{{aria_label}}", fmt.Sprintf("Visit %s website (opens in new window)", name),
		"{{cta_note}}", complianceNote,
	)
	return replacer.Replace(component)
}
