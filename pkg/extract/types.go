package extract

// Heading is a single h1-h3 heading found in the source document.
type Heading struct {
	Level    string `json:"level" yaml:"level"`
	Text     string `json:"text" yaml:"text"`
	Position int    `json:"position" yaml:"position"`
}

// Table is a table found in the source document. Columns is taken from the
// first surviving row; later rows may be ragged and are kept as-is.
type Table struct {
	Rows     [][]string `json:"rows" yaml:"rows"`
	Columns  int        `json:"columns" yaml:"columns"`
	Position int        `json:"position" yaml:"position"`
}

// ProsConsList holds the pros and cons bullet lists. Either side may be empty.
type ProsConsList struct {
	Pros []string `json:"pros" yaml:"pros"`
	Cons []string `json:"cons" yaml:"cons"`
}

// Rating is a review score such as "6.9/10" or "4 out of 5".
type Rating struct {
	Value float64 `json:"value" yaml:"value"`
	Scale int     `json:"scale" yaml:"scale"`
}

// Summary is everything the extractor pulls out of one document.
// It is built once per conversion and read-only afterwards.
type Summary struct {
	Headings   []Heading    `json:"headings" yaml:"headings"`
	Paragraphs []string     `json:"paragraphs" yaml:"paragraphs"`
	Tables     []Table      `json:"tables" yaml:"tables"`
	ProsCons   ProsConsList `json:"pros_cons" yaml:"pros_cons"`
	Rating     *Rating      `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// FirstH1 returns the text of the first h1 heading, or "" if none exists.
func (s Summary) FirstH1() string {
	for _, h := range s.Headings {
		if h.Level == "h1" {
			return h.Text
		}
	}
	return ""
}
