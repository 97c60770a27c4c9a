package convert

import (
	"regexp"
	"strings"
)

// leftoverRe matches any unfilled {{...}} token. No nesting, non-greedy.
var leftoverRe = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Render substitutes every {{key}} token in template with its mapped value,
// then strips whatever {{...}} tokens remain. Substitution is literal string
// replacement with no escaping; callers own fragment safety. Substitute
// first, strip second: swapping the passes changes output on partially
// filled templates.
func Render(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return leftoverRe.ReplaceAllString(out, "")
}
