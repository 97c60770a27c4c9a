package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStaticFetch(t *testing.T) {
	t.Run("returns body", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<html><body>doc</body></html>"))
		}))
		defer srv.Close()

		f := NewStatic(Config{UserAgent: "test-agent", Timeout: 5 * time.Second})
		body, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if body != "<html><body>doc</body></html>" {
			t.Errorf("unexpected body: %q", body)
		}
		if gotUA != "test-agent" {
			t.Errorf("user agent = %q", gotUA)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := NewStatic(Config{})
		if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
			t.Error("expected error for 500 response")
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		f := NewStatic(Config{})
		if _, err := f.Fetch(context.Background(), "not-a-url"); err == nil {
			t.Error("expected error for invalid URL")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		f := NewStatic(Config{})
		if f.config.Timeout != DefaultTimeout {
			t.Errorf("timeout = %v", f.config.Timeout)
		}
		if f.config.UserAgent == "" {
			t.Error("user agent not defaulted")
		}
	})
}
