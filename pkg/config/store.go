// Package config loads the converter's external JSON configuration:
// affiliate links, platform metadata, and image/disclaimer text. The store
// is read-only after construction; missing files or keys yield absence and
// a warning log, never an error.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/pagepress/internal/logger"
)

// Config file names expected inside the config directory.
const (
	affiliateLinksFile   = "affiliate-links.json"
	platformMetadataFile = "platform-metadata.json"
	imageConfigFile      = "image-urls.json"
)

// Platform is the metadata held for one known platform.
type Platform struct {
	Key  string `json:"-"`
	Name string `json:"name" validate:"required"`
	URL  string `json:"url,omitempty"`
}

// images mirrors image-urls.json. Only disclaimers are consumed by the
// conversion pipeline; logo URLs ride along for templates that want them.
type images struct {
	Disclaimers map[string]string `json:"disclaimers"`
	Logos       map[string]string `json:"logos"`
}

// Store is the read-only configuration lookup used by a converter instance.
// Safe for concurrent readers once constructed.
type Store struct {
	affiliateLinks map[string]string
	platforms      map[string]Platform
	platformOrder  []string
	images         images
}

// Load reads all configuration files from dir. Files that are missing or
// unparseable leave their section empty; the returned store is always
// usable.
func Load(dir string) *Store {
	s := &Store{
		affiliateLinks: map[string]string{},
		platforms:      map[string]Platform{},
	}

	loadJSON(filepath.Join(dir, affiliateLinksFile), &s.affiliateLinks)
	loadJSON(filepath.Join(dir, imageConfigFile), &s.images)
	s.loadPlatforms(filepath.Join(dir, platformMetadataFile))

	return s
}

// loadJSON decodes one config file into v, logging and leaving v untouched
// on any failure.
func loadJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("config file not found", "path", path)
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("config file unparseable", "path", path, "error", err)
	}
}

// loadPlatforms keeps the file's key order: platform detection tests
// candidates in insertion order and the first match wins, so ordering is
// part of the configuration contract.
func (s *Store) loadPlatforms(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("config file not found", "path", path)
		return
	}

	var byKey map[string]Platform
	if err := json.Unmarshal(data, &byKey); err != nil {
		logger.Warn("config file unparseable", "path", path, "error", err)
		return
	}

	order, err := objectKeyOrder(data)
	if err != nil {
		logger.Warn("config file unparseable", "path", path, "error", err)
		return
	}

	validate := validator.New()
	for _, key := range order {
		p := byKey[key]
		p.Key = key
		if err := validate.Struct(p); err != nil {
			logger.Warn("platform metadata invalid", "platform", key, "error", err)
		}
		s.platforms[key] = p
		s.platformOrder = append(s.platformOrder, key)
	}
}

// objectKeyOrder returns the top-level keys of a JSON object in file order.
func objectKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			continue
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// AffiliateLink returns the affiliate URL configured for a platform key.
func (s *Store) AffiliateLink(key string) (string, bool) {
	link, ok := s.affiliateLinks[key]
	return link, ok
}

// PlatformMetadata returns the metadata for a platform key.
func (s *Store) PlatformMetadata(key string) (Platform, bool) {
	p, ok := s.platforms[key]
	return p, ok
}

// Platforms returns all known platforms in configuration insertion order.
func (s *Store) Platforms() []Platform {
	out := make([]Platform, 0, len(s.platformOrder))
	for _, key := range s.platformOrder {
		out = append(out, s.platforms[key])
	}
	return out
}

// Disclaimer returns a named disclaimer string, or "" if not configured.
func (s *Store) Disclaimer(name string) string {
	return s.images.Disclaimers[name]
}

// Logo returns a named logo URL, or "" if not configured.
func (s *Store) Logo(name string) string {
	return s.images.Logos[name]
}
