package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>{{title}}</title><meta name="description" content="{{meta_description}}"></head>
<body>
<h1>{{title}}</h1>
<div class="rating">{{rating_stars}}</div>
<p>{{intro_paragraph_1}}</p>
<p>{{intro_paragraph_2}}</p>
{{pros_cons_grid}}
{{quick_facts_table}}
{{cta_button}}
<footer>{{disclaimer}} &copy; {{year}} {{platform_name}}</footer>
{{quick_verdict_section}}
{{bonuses_content}}
</body>
</html>`

// writeFixtures lays out a config dir and a templates dir the way a real
// deployment does.
func writeFixtures(t *testing.T) (string, string) {
	t.Helper()

	cfgDir := t.TempDir()
	writeFile(t, filepath.Join(cfgDir, "platform-metadata.json"),
		`{"foo": {"name": "Foo Casino"}, "betway": {"name": "Betway"}}`)
	writeFile(t, filepath.Join(cfgDir, "affiliate-links.json"),
		`{"foo": "https://x", "bar": "https://y"}`)
	writeFile(t, filepath.Join(cfgDir, "image-urls.json"),
		`{"disclaimers": {"gambling_warning": "Play responsibly."}}`)

	tplDir := t.TempDir()
	writeFile(t, filepath.Join(tplDir, "casino-review.html"), testPage)
	writeFile(t, filepath.Join(tplDir, "sportsbook-review.html"),
		`<!DOCTYPE html><html><body class="sportsbook"><h1>{{title}}</h1></body></html>`)

	componentsDir := filepath.Join(tplDir, "components")
	if err := os.MkdirAll(componentsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(componentsDir, "pros-cons.html"),
		"<div class=\"pros\"><ul>\n            {{pros_items}}\n</ul></div><div class=\"cons\"><ul>\n            {{cons_items}}\n</ul></div>")
	writeFile(t, filepath.Join(componentsDir, "platform-table-2col.html"),
		"<table><caption>{{table_caption}}</caption><tr><th>{{col1_header}}</th><th>{{col2_header}}</th></tr>\n{{table_rows}}\n</table>")
	writeFile(t, filepath.Join(componentsDir, "cta-button.html"),
		`<a href="{{cta_url}}" aria-label="{{aria_label}}">{{cta_text}}</a><small>{{cta_note}}</small>`)

	return cfgDir, tplDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfgDir, tplDir := writeFixtures(t)
	p := NewPipeline(config.Load(cfgDir), templates.NewStore(tplDir))
	p.now = func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

const testInput = `<html><body>
<h1>Foo Casino Review</h1>
<p>Foo Casino is a long-running online casino with a deep games catalogue and fast withdrawals for regular players.</p>
<p>This review covers bonuses, payments and support in detail.</p>
<strong>Pros:</strong>
<ul><li>Fast payouts</li><li>Great selection</li></ul>
<strong>Cons:</strong>
<ul><li>Limited support hours</li></ul>
<p>Overall we score it 8.5/10 for casino play.</p>
<table>
<tr><td>Bonus</td><td>100% Free</td></tr>
<tr><td>Founded</td><td>2010</td></tr>
</table>
</body></html>`

func TestPipelineConvert(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Convert(context.Background(), testInput, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != "rules" {
		t.Errorf("expected method rules, got %q", result.Method)
	}

	html := result.HTML
	checks := []string{
		"<title>Foo Casino Review</title>",
		"<li>Fast payouts</li>",
		"<li>Great selection</li>",
		"<li>Limited support hours</li>",
		`class="highlight"`,
		"100% Free",
		`href="https://x"`,
		"Visit Foo Casino",
		"Play responsibly.",
		"&copy; 2031",
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if strings.Count(html, "<li>") != 3 {
		t.Errorf("expected 3 list items, got %d", strings.Count(html, "<li>"))
	}
	if strings.Contains(html, "{{") {
		t.Errorf("unresolved placeholders left in output")
	}
	// 8.5/10 gives 8 filled and 2 empty stars.
	if strings.Count(html, "★") != 8 || strings.Count(html, "☆") != 2 {
		t.Errorf("unexpected star rendering")
	}
}

func TestPipelineRating(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("date-shaped text does not render a star per year", func(t *testing.T) {
		input := `<p>Updated 9/2026 casino review content here</p>`
		result, err := p.Convert(context.Background(), input, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(result.HTML, "★") || strings.Contains(result.HTML, "☆") {
			t.Errorf("stars rendered for implausible scale:\n%s", result.HTML)
		}
	})

	t.Run("huge scale stays bounded", func(t *testing.T) {
		input := `<p>rated 1/2000000000 by someone, casino review text</p>`
		result, err := p.Convert(context.Background(), input, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.HTML) > 1<<20 {
			t.Fatalf("output blew up to %d bytes", len(result.HTML))
		}
		if strings.Contains(result.HTML, "☆") {
			t.Error("stars rendered for implausible scale")
		}
	})

	t.Run("scale at the bound still renders", func(t *testing.T) {
		input := `<p>we score it 6/10 for casino review play</p>`
		result, _ := p.Convert(context.Background(), input, Options{})
		if strings.Count(result.HTML, "★") != 6 || strings.Count(result.HTML, "☆") != 4 {
			t.Errorf("expected 6 filled and 4 empty stars:\n%s", result.HTML)
		}
	})
}

func TestPipelineDefaults(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("no content at all", func(t *testing.T) {
		result, err := p.Convert(context.Background(), "<html><body></body></html>", Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result.HTML, "Platform Review") {
			t.Errorf("expected generic title, got: %s", result.HTML)
		}
		if !strings.Contains(result.HTML, "Coming soon...") {
			t.Errorf("expected coming-soon placeholders")
		}
	})

	t.Run("three column table gets placeholder", func(t *testing.T) {
		input := `<p>casino review text long enough</p><table><tr><td>a</td><td>b</td><td>c</td></tr></table>`
		result, _ := p.Convert(context.Background(), input, Options{})
		if strings.Contains(result.HTML, "<caption>") {
			t.Error("three-column table should not render as quick facts")
		}
	})

	t.Run("meta description truncated", func(t *testing.T) {
		long := strings.Repeat("a", 300)
		result, _ := p.Convert(context.Background(), "<p>"+long+"</p>", Options{})
		if !strings.Contains(result.HTML, `content="`+strings.Repeat("a", 155)+`"`) {
			t.Error("meta description not truncated to 155 chars")
		}
	})

	t.Run("missing template yields near-empty output", func(t *testing.T) {
		result, err := p.Convert(context.Background(), "plain text", Options{TemplateType: "no-such-type"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.HTML != "" {
			t.Errorf("expected empty output, got %q", result.HTML)
		}
	})
}

func TestPipelineOverrides(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("platform override wins over detection", func(t *testing.T) {
		// Document mentions betway, but the caller pins foo.
		input := `<h1>Betway Review</h1><p>betway is a casino review subject</p>`
		result, _ := p.Convert(context.Background(), input, Options{Platform: "foo"})
		if !strings.Contains(result.HTML, `href="https://x"`) {
			t.Error("expected CTA for the overridden platform")
		}
		if !strings.Contains(result.HTML, "Foo Casino") {
			t.Error("expected overridden platform name")
		}
	})

	t.Run("template type override wins over detection", func(t *testing.T) {
		input := `<h1>Foo Casino Review</h1><p>casino review body text here</p>`
		result, _ := p.Convert(context.Background(), input, Options{TemplateType: "sportsbook-review"})
		if !strings.Contains(result.HTML, `class="sportsbook"`) {
			t.Error("expected the overridden template")
		}
	})

	t.Run("platform with link but no metadata title-cases the key", func(t *testing.T) {
		result, _ := p.Convert(context.Background(), "<p>some casino review body</p>", Options{Platform: "bar"})
		if !strings.Contains(result.HTML, "Visit Bar") {
			t.Error("expected title-cased key as display name")
		}
		if !strings.Contains(result.HTML, "Bar Review") {
			t.Error("expected title from title-cased key")
		}
	})
}

// stub converters for fallback behavior.
type stubConverter struct {
	result Result
	err    error
	calls  int
}

func (s *stubConverter) Convert(context.Context, string, Options) (Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubConverter) Method() string { return s.result.Method }

func TestWithFallback(t *testing.T) {
	t.Run("primary success short-circuits", func(t *testing.T) {
		primary := &stubConverter{result: Result{HTML: "<p>ai</p>", Method: "ai"}}
		secondary := &stubConverter{result: Result{HTML: "<p>rules</p>", Method: "rules"}}

		result, err := WithFallback(primary, secondary).Convert(context.Background(), "x", Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Method != "ai" || secondary.calls != 0 {
			t.Errorf("expected primary result, got %+v (secondary calls: %d)", result, secondary.calls)
		}
	})

	t.Run("primary failure falls back", func(t *testing.T) {
		primary := &stubConverter{err: errors.New("model unavailable"), result: Result{Method: "ai"}}
		secondary := &stubConverter{result: Result{HTML: "<p>rules</p>", Method: "rules"}}

		result, err := WithFallback(primary, secondary).Convert(context.Background(), "x", Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Method != "rules" || primary.calls != 1 || secondary.calls != 1 {
			t.Errorf("expected fallback to secondary, got %+v", result)
		}
	})
}
