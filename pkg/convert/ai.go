package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmylchreest/pagepress/internal/llm"
	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/internal/wordclean"
	"github.com/jmylchreest/pagepress/pkg/classify"
	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

// Prompt budget limits, matching what a 4k-token completion can work with.
const (
	maxPromptInputLen    = 5000
	maxPromptTemplateLen = 3000
)

// ErrEmptyResponse is returned when the model produced no usable content.
var ErrEmptyResponse = errors.New("model returned empty response")

var htmlDocRe = regexp.MustCompile(`(?is)<!DOCTYPE html>.*</html>`)

// AIConverter fills the page template with an LLM instead of the rule
// cascade. Any failure is returned to the caller, which is expected to fall
// back to the rule-based Pipeline.
type AIConverter struct {
	provider  llm.Provider
	config    *config.Store
	templates *templates.Store
	cleaner   *wordclean.Cleaner
}

// NewAIConverter creates an LLM-backed converter over the given provider
// and stores.
func NewAIConverter(provider llm.Provider, cfg *config.Store, tpl *templates.Store) *AIConverter {
	return &AIConverter{
		provider:  provider,
		config:    cfg,
		templates: tpl,
		cleaner:   wordclean.New(),
	}
}

// Method identifies this converter in boundary responses.
func (c *AIConverter) Method() string { return "ai" }

// Convert prompts the model with the cleaned input, the selected template
// and the configured platform data, then extracts the returned document.
func (c *AIConverter) Convert(ctx context.Context, html string, opts Options) (Result, error) {
	pageType := opts.TemplateType
	if pageType == "" {
		pageType = classify.PageCasinoReview
	}
	page := c.templates.Page(pageType)

	// Word exports are mostly mso noise; cleaning keeps the prompt budget
	// for actual content.
	cleaned := c.cleaner.Clean(html)

	prompt, err := c.buildPrompt(cleaned, page, opts.Platform)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("ai conversion: %w", err)
	}
	if resp.Content == "" {
		return Result{}, ErrEmptyResponse
	}

	logger.Debug("ai conversion complete",
		"provider", c.provider.Name(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	// Models sometimes wrap the document in explanatory text.
	if doc := htmlDocRe.FindString(resp.Content); doc != "" {
		return Result{HTML: doc, Method: c.Method()}, nil
	}
	return Result{HTML: resp.Content, Method: c.Method()}, nil
}

func (c *AIConverter) buildPrompt(input, page, platform string) (string, error) {
	platforms := c.config.Platforms()
	keys := make([]string, 0, len(platforms))
	links := make(map[string]string, len(platforms))
	for _, p := range platforms {
		keys = append(keys, p.Key)
		if link, ok := c.config.AffiliateLink(p.Key); ok {
			links[p.Key] = link
		}
	}

	keysJSON, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("marshal platform keys: %w", err)
	}
	linksJSON, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal affiliate links: %w", err)
	}

	platformHint := platform
	if platformHint == "" {
		platformHint = "auto-detect"
	}

	return fmt.Sprintf(`You are an expert HTML converter. Convert the following Word-exported HTML into a properly structured web page using the provided template.

INPUT HTML:
%s

TEMPLATE TO FILL:
%s

AVAILABLE PLATFORMS:
%s

AFFILIATE LINKS:
%s

INSTRUCTIONS:
1. Extract all content from the input HTML (headings, paragraphs, tables, lists)
2. Identify the platform being reviewed (or use: %s)
3. Map content to the template's {{placeholder}} variables
4. Extract pros/cons lists and format them properly
5. Convert tables to 2-column format if needed
6. Generate appropriate section content
7. Include the correct affiliate link for the platform
8. Fill ALL template placeholders with appropriate content
9. Return ONLY the final HTML, no explanations

Return the complete, valid HTML document.`,
		truncate(input, maxPromptInputLen),
		truncate(page, maxPromptTemplateLen),
		keysJSON,
		linksJSON,
		platformHint), nil
}
