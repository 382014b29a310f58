// Package answer implements the campus answering service behind POST /ask:
// greetings, a fuzzy search over the catalog, then a generative fallback.
package answer

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
)

const (
	GreetingText       = "Hello! I am your college campus assistant. How can I help you today?"
	NotConfiguredText  = "AI service is not configured. Please contact the administrator."
	ServiceErrorText   = "An error occurred with the AI service."
	EmptyQueryErrorMsg = "No query provided."
)

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New(EmptyQueryErrorMsg)

var greetings = map[string]bool{
	"hi":       true,
	"hello":    true,
	"hey":      true,
	"namaste":  true,
	"namaskar": true,
}

// Engine answers queries from the catalog, falling back to a Generator.
type Engine struct {
	catalog   *catalog.Catalog
	generator Generator
}

// NewEngine creates an engine. Either argument may be nil.
func NewEngine(cat *catalog.Catalog, generator Generator) *Engine {
	return &Engine{catalog: cat, generator: generator}
}

// Catalog returns the catalog the engine searches.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Ask answers query. Only a blank query is an error; generator failures are
// logged and answered with ServiceErrorText.
func (e *Engine) Ask(ctx context.Context, query string) (*backend.Answer, error) {
	query = strings.ToLower(query)
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	for _, word := range strings.Fields(query) {
		if greetings[word] {
			return &backend.Answer{Text: GreetingText}, nil
		}
	}

	if local, ok := Search(e.catalog, query); ok {
		return local, nil
	}

	if e.generator == nil {
		return &backend.Answer{Text: NotConfiguredText}, nil
	}

	text, err := e.generator.Generate(ctx, query)
	if err != nil {
		logrus.WithError(err).WithField("query", query).Error("generative answer failed")
		return &backend.Answer{Text: ServiceErrorText}, nil
	}
	return &backend.Answer{Text: text}, nil
}
