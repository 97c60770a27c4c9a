package output

import (
	"bytes"
	"strings"
	"testing"
)

type record struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestNewWriterUnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter(t *testing.T) {
	t.Run("single item is emitted bare", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, FormatJSON)
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Write(record{Name: "a", Value: 1}); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if strings.HasPrefix(strings.TrimSpace(out), "[") {
			t.Errorf("single item wrapped in array:\n%s", out)
		}
		if !strings.Contains(out, `"name": "a"`) {
			t.Errorf("missing pretty-printed field:\n%s", out)
		}
	})

	t.Run("multiple items form an array", func(t *testing.T) {
		var buf bytes.Buffer
		w, _ := NewWriter(&buf, FormatJSON)
		w.Write(record{Name: "a", Value: 1})
		w.Write(record{Name: "b", Value: 2})
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		out := strings.TrimSpace(buf.String())
		if !strings.HasPrefix(out, "[") || !strings.HasSuffix(out, "]") {
			t.Errorf("expected JSON array:\n%s", out)
		}
	})
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSONL)
	w.Write(record{Name: "a", Value: 1})
	w.Write(record{Name: "b", Value: 2})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != `{"name":"a","value":1}` {
		t.Errorf("unexpected first line: %s", lines[0])
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatYAML)
	w.Write(record{Name: "a", Value: 1})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: a") || !strings.Contains(out, "value: 1") {
		t.Errorf("unexpected YAML:\n%s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "-") {
		t.Errorf("single item emitted as sequence:\n%s", out)
	}
}
