package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bgdnvk/campusbot/internal/answer"
	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
	"github.com/bgdnvk/campusbot/internal/chat"
	"github.com/bgdnvk/campusbot/internal/intent"
)

// newClassifier builds the classifier, applying the keyword override file
// when one is configured.
func newClassifier() (*intent.Classifier, error) {
	path := strings.TrimSpace(viper.GetString("keywords.file"))
	if path == "" {
		return intent.NewClassifier(), nil
	}
	lex, err := intent.LoadLexicon(path)
	if err != nil {
		return nil, err
	}
	return intent.NewClassifierWithLexicon(lex), nil
}

// resolveGeminiKey returns the Gemini key from config or GEMINI_API_KEY.
func resolveGeminiKey() string {
	if key := strings.TrimSpace(viper.GetString("ai.gemini.api_key")); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// newGenerator returns a Gemini generator, or nil when no key is configured.
func newGenerator(ctx context.Context) answer.Generator {
	key := resolveGeminiKey()
	if key == "" {
		log.Warn("no Gemini API key configured; generic questions get the not-configured reply")
		return nil
	}
	gen, err := answer.NewGeminiClient(ctx, key, viper.GetString("ai.gemini.model"))
	if err != nil {
		log.WithError(err).Error("Gemini client unavailable")
		return nil
	}
	return gen
}

// newAsker picks where generic questions go: the in-process engine when
// local is set, the remote answering service otherwise.
func newAsker(ctx context.Context, local bool, cat *catalog.Catalog) chat.Asker {
	if local {
		return answer.NewEngine(cat, newGenerator(ctx))
	}
	client := backend.NewClientWithURL(backend.ResolveBackendURL(""), viper.GetBool("debug")).
		WithTimeout(backend.ResolveTimeout())
	log.WithField("url", client.BaseURL()).Debug("using remote answering service")
	return client
}

// loadCatalog loads the configured catalog. Errors are returned wrapped.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	source := viper.GetString("catalog.source")
	cat, err := catalog.NewLoader().Load(ctx, source)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"source":      source,
		"ug":          len(cat.Syllabuses.UG),
		"pg":          len(cat.Syllabuses.PG),
		"departments": len(cat.Departments),
	}).Debug("catalog loaded")
	return cat, nil
}

// sessionSetup carries what every session of one process shares.
type sessionSetup struct {
	classifier *intent.Classifier
	asker      chat.Asker
	catalog    *catalog.Catalog
	loadErr    error
}

func newSessionSetup(ctx context.Context, local bool) (*sessionSetup, error) {
	classifier, err := newClassifier()
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	cat, loadErr := loadCatalog(ctx)
	return &sessionSetup{
		classifier: classifier,
		asker:      newAsker(ctx, local, cat),
		catalog:    cat,
		loadErr:    loadErr,
	}, nil
}

// newSession creates a session. When the catalog failed to load the session
// starts degraded with the apology already in its log.
func (s *sessionSetup) newSession(ctx context.Context, opts ...chat.Option) *chat.Session {
	session := chat.NewSession(chat.NewDispatcher(s.classifier, s.asker), opts...)
	loader := staticLoader{cat: s.catalog, err: s.loadErr}
	_ = session.LoadCatalog(ctx, loader, viper.GetString("catalog.source"))
	return session
}

// staticLoader hands out a catalog that was loaded once at startup.
type staticLoader struct {
	cat *catalog.Catalog
	err error
}

func (l staticLoader) Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.cat, nil
}
