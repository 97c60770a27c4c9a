// Package templates loads full-page templates and reusable component
// fragments from a templates directory. Templates are opaque strings with
// {{placeholder}} slots; nothing here parses or validates them.
package templates

import (
	"os"
	"path/filepath"

	"github.com/jmylchreest/pagepress/internal/logger"
)

// Component fragment names used by the conversion pipeline.
const (
	ComponentProsCons  = "pros-cons.html"
	ComponentTable2Col = "platform-table-2col.html"
	ComponentCTAButton = "cta-button.html"
)

// Store serves page templates by page-type key and component fragments by
// file name. Reads go to disk on each lookup; templates are small and the
// store stays coherent with on-disk edits during development.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. Components live in dir/components.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Page returns the full-page template for a page type ("casino-review"
// loads casino-review.html). A missing template is a warning and an empty
// string, never an error.
func (s *Store) Page(pageType string) string {
	return s.read(filepath.Join(s.dir, pageType+".html"))
}

// Component returns a component fragment by file name.
func (s *Store) Component(name string) string {
	return s.read(filepath.Join(s.dir, "components", name))
}

func (s *Store) read(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("template not found", "path", path)
		return ""
	}
	return string(data)
}
