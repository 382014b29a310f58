// Package chat holds the chat session state machine and the dispatcher that
// turns a classified message into exactly one bot reply.
package chat

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
	"github.com/bgdnvk/campusbot/internal/intent"
	"github.com/bgdnvk/campusbot/internal/reply"
)

// Asker answers generic queries remotely.
type Asker interface {
	Ask(ctx context.Context, query string) (*backend.Answer, error)
}

// Outcome describes how one message was answered.
type Outcome struct {
	Classification intent.Classification
	// Intent is the intent actually used. It is Generic whenever the
	// dispatcher has no catalog.
	Intent intent.Intent
	Reply  reply.Reply
	Remote bool
	Err    error
}

// Dispatcher routes classified messages to local templates or the remote
// answering service.
type Dispatcher struct {
	classifier *intent.Classifier
	asker      Asker

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

// NewDispatcher creates a dispatcher without a catalog. Until SetCatalog is
// called every message is answered remotely.
func NewDispatcher(classifier *intent.Classifier, asker Asker) *Dispatcher {
	if classifier == nil {
		classifier = intent.NewClassifier()
	}
	return &Dispatcher{classifier: classifier, asker: asker}
}

// SetCatalog installs the catalog used for local answers.
func (d *Dispatcher) SetCatalog(cat *catalog.Catalog) {
	d.mu.Lock()
	d.catalog = cat
	d.mu.Unlock()
}

// Catalog returns the installed catalog, or nil.
func (d *Dispatcher) Catalog() *catalog.Catalog {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.catalog
}

// Degraded reports whether local answers are unavailable.
func (d *Dispatcher) Degraded() bool {
	return d.Catalog() == nil
}

// Dispatch classifies raw and produces its reply. Remote failures are
// replaced by the fallback apology and reported in Outcome.Err.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string) Outcome {
	cls := d.classifier.Classify(raw)
	cat := d.Catalog()

	out := Outcome{Classification: cls, Intent: cls.Intent}
	if cat == nil {
		out.Intent = intent.Generic
	}

	switch out.Intent {
	case intent.UGSyllabus:
		out.Reply = reply.UGSyllabus(cat)
	case intent.PGSyllabus:
		out.Reply = reply.PGSyllabus(cat)
	case intent.Holiday:
		out.Reply = reply.Holidays(cat)
	case intent.Department:
		out.Reply = reply.Departments()
	default:
		out.Remote = true
		out.Reply, out.Err = d.askRemote(ctx, cls.Query)
	}

	logrus.WithFields(logrus.Fields{
		"intent":   out.Intent,
		"selected": cls.Intent,
		"topics":   cls.Topics,
		"remote":   out.Remote,
	}).Debug("message dispatched")

	return out
}

func (d *Dispatcher) askRemote(ctx context.Context, query string) (reply.Reply, error) {
	if d.asker == nil {
		return reply.Fallback(), ErrNoAnswerService
	}
	answer, err := d.asker.Ask(ctx, query)
	if err != nil {
		logrus.WithError(err).Warn("remote answer failed")
		return reply.Fallback(), err
	}
	if answer == nil {
		return reply.Fallback(), ErrNoAnswerService
	}
	return reply.Reply{Text: answer.Text, Coords: answer.Coords}, nil
}
