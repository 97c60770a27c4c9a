// Package convert turns Word-exported review HTML into a finished, styled
// page. The rule-based Pipeline is the guaranteed implementation; an
// LLM-backed converter implements the same interface and callers fall back
// from one to the other with WithFallback.
package convert

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/pkg/classify"
	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/extract"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

// metaDescriptionLen caps the meta description placeholder.
const metaDescriptionLen = 155

// maxStarScale bounds the star row. The rating pattern also matches
// date-shaped text like "9/2026", which must not render thousands of stars.
const maxStarScale = 10

const comingSoon = "<p>Coming soon...</p>"

// Options are advisory overrides for a single conversion. A non-empty
// TemplateType wins over page-type detection and a non-empty Platform wins
// over platform detection, for both template selection and CTA/affiliate
// lookups.
type Options struct {
	TemplateType string
	Platform     string
}

// Result is a finished conversion.
type Result struct {
	HTML   string
	Method string
}

// Converter turns raw input HTML into a finished page. Implementations may
// fail (the LLM path does); the rule-based Pipeline never does.
type Converter interface {
	Convert(ctx context.Context, html string, opts Options) (Result, error)
	Method() string
}

// Pipeline is the deterministic rule-based converter: extract, classify,
// build fragments, assemble the placeholder map, render. It holds no
// per-conversion state and is safe for concurrent use.
type Pipeline struct {
	config    *config.Store
	templates *templates.Store
	fragments *FragmentBuilder
	now       func() time.Time
}

// NewPipeline creates a rule-based converter over the given stores.
func NewPipeline(cfg *config.Store, tpl *templates.Store) *Pipeline {
	return &Pipeline{
		config:    cfg,
		templates: tpl,
		fragments: NewFragmentBuilder(cfg, tpl),
		now:       time.Now,
	}
}

// Method identifies this converter in boundary responses.
func (p *Pipeline) Method() string { return "rules" }

// Convert runs the full rule-based pipeline. It degrades to placeholder and
// default content on anything it cannot extract and never returns an error
// for text input.
func (p *Pipeline) Convert(_ context.Context, html string, opts Options) (Result, error) {
	summary := extract.Scan(html)

	pageType := opts.TemplateType
	if pageType == "" {
		pageType = classify.DetectPageType(html, summary.Headings)
	}

	platformKey := opts.Platform
	if platformKey == "" {
		platformKey, _ = classify.DetectPlatform(html, p.candidates())
	}

	logger.Debug("document classified",
		"page_type", pageType,
		"platform", platformKey,
		"headings", len(summary.Headings),
		"paragraphs", len(summary.Paragraphs),
		"tables", len(summary.Tables),
		"pros", len(summary.ProsCons.Pros),
		"cons", len(summary.ProsCons.Cons))

	page := p.templates.Page(pageType)
	platformName := p.platformName(platformKey)

	title := summary.FirstH1()
	if title == "" {
		title = platformName + " Review"
	}

	data := map[string]string{
		"title":             title,
		"meta_description":  truncate(firstOr(summary.Paragraphs, 0), metaDescriptionLen),
		"year":              strconv.Itoa(p.now().Year()),
		"platform_name":     platformName,
		"intro_paragraph_1": firstOr(summary.Paragraphs, 0),
		"intro_paragraph_2": firstOr(summary.Paragraphs, 1),
		"pros_cons_grid":    p.prosConsFragment(summary.ProsCons),
		"quick_facts_table": p.quickFactsFragment(summary.Tables),
		"cta_button":        p.ctaFragment(platformKey),
		"disclaimer":        p.config.Disclaimer("gambling_warning"),

		// Sections without an extraction source yet.
		"quick_verdict_section":    "<!-- Quick verdict coming soon -->",
		"bonuses_content":          comingSoon,
		"games_content":            comingSoon,
		"payment_methods_content":  comingSoon,
		"mobile_content":           comingSoon,
		"customer_support_content": comingSoon,
		"security_content":         comingSoon,
	}

	if summary.Rating != nil {
		data["rating_value"] = strconv.FormatFloat(summary.Rating.Value, 'f', -1, 64) +
			"/" + strconv.Itoa(summary.Rating.Scale)
		// Star rendering only for plausible rating scales; the textual value
		// is kept regardless.
		if summary.Rating.Scale <= maxStarScale {
			data["rating_stars"] = starsHTML(*summary.Rating)
		}
	}

	return Result{HTML: Render(page, data), Method: p.Method()}, nil
}

func (p *Pipeline) candidates() []classify.Candidate {
	platforms := p.config.Platforms()
	out := make([]classify.Candidate, 0, len(platforms))
	for _, pl := range platforms {
		out = append(out, classify.Candidate{Key: pl.Key, Name: pl.Name})
	}
	return out
}

// platformName resolves a display name: configured metadata first, then a
// title-cased key, then the generic "Platform" when nothing was detected.
func (p *Pipeline) platformName(key string) string {
	if key == "" {
		return "Platform"
	}
	if meta, ok := p.config.PlatformMetadata(key); ok && meta.Name != "" {
		return meta.Name
	}
	return titleCaser.String(key)
}

func (p *Pipeline) prosConsFragment(list extract.ProsConsList) string {
	if len(list.Pros) == 0 && len(list.Cons) == 0 {
		return comingSoon
	}
	return p.fragments.ProsConsGrid(list)
}

// quickFactsFragment only renders the first extracted table, and only when
// it has exactly two columns.
func (p *Pipeline) quickFactsFragment(tables []extract.Table) string {
	if len(tables) == 0 || tables[0].Columns != 2 {
		return comingSoon
	}
	return p.fragments.QuickFactsTable(tables[0])
}

func (p *Pipeline) ctaFragment(platformKey string) string {
	if platformKey == "" {
		return ""
	}
	return p.fragments.CTAButton(platformKey)
}

// starsHTML renders a filled/empty star row for a rating.
func starsHTML(r extract.Rating) string {
	filled := int(r.Value)
	if filled > r.Scale {
		filled = r.Scale
	}
	var sb strings.Builder
	for i := 0; i < filled; i++ {
		sb.WriteString(`<span class="star" aria-hidden="true">★</span>`)
	}
	for i := filled; i < r.Scale; i++ {
		sb.WriteString(`<span class="star empty" aria-hidden="true">☆</span>`)
	}
	return sb.String()
}

func firstOr(items []string, i int) string {
	if i < len(items) {
		return items[i]
	}
	return ""
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
