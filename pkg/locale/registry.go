package locale

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/language"
)

// FormatterFactory returns a fresh Formatter each time a locale is resolved.
type FormatterFactory func() Formatter

// Registry resolves BCP 47 locale tags to formatters. Tags are canonicalized
// on the way in and out, so "en-us" and "en-US" name the same entry.
type Registry interface {
	// Register rejects malformed tags and tags whose canonical form is taken.
	Register(tag string, factory FormatterFactory) error
	// Create resolves tag, falling back to DefaultLocale when tag is empty.
	// Unregistered tags are an error; there is no parent-language fallback.
	Create(tag string) (Formatter, error)
	// ListLocales returns the canonical tags, sorted.
	ListLocales() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]FormatterFactory),
	}
}

// NewDefaultRegistry knows en-US and en-GB.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register("en-US", NewUSFormatter)
	_ = r.Register("en-GB", NewGBFormatter)
	return r
}

func canonicalTag(tag string) (string, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid locale tag %q: %w", tag, err)
	}
	return parsed.String(), nil
}

func (r *registry) Register(tag string, factory FormatterFactory) error {
	if factory == nil {
		return fmt.Errorf("factory for locale %q cannot be nil", tag)
	}
	key, err := canonicalTag(tag)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("locale %q is already registered", key)
	}
	r.factories[key] = factory
	return nil
}

func (r *registry) Create(tag string) (Formatter, error) {
	if tag == "" {
		tag = DefaultLocale
	}
	key, err := canonicalTag(tag)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.factories[key]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("locale %q is not registered", key)
	}
	return factory(), nil
}

func (r *registry) ListLocales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
