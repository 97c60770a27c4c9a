package convert

import (
	"context"

	"github.com/jmylchreest/pagepress/internal/logger"
)

// fallbackConverter tries the primary converter and, on any error, retries
// the same request through the secondary.
type fallbackConverter struct {
	primary   Converter
	secondary Converter
}

// WithFallback chains two converters. The returned converter only fails if
// the secondary does; with a rule-based Pipeline as secondary it never does.
func WithFallback(primary, secondary Converter) Converter {
	return &fallbackConverter{primary: primary, secondary: secondary}
}

func (c *fallbackConverter) Method() string { return c.primary.Method() }

func (c *fallbackConverter) Convert(ctx context.Context, html string, opts Options) (Result, error) {
	res, err := c.primary.Convert(ctx, html, opts)
	if err == nil {
		return res, nil
	}
	logger.Warn("converter failed, falling back",
		"primary", c.primary.Method(),
		"secondary", c.secondary.Method(),
		"error", err)
	return c.secondary.Convert(ctx, html, opts)
}
