package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
)

type fakeAsker struct {
	mu      sync.Mutex
	queries []string
	answer  *backend.Answer
	err     error

	entered chan struct{}
	release chan struct{}
}

func (f *fakeAsker) Ask(ctx context.Context, query string) (*backend.Answer, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.answer, f.err
}

func (f *fakeAsker) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

type fakeLoader struct {
	cat *catalog.Catalog
	err error
}

func (f fakeLoader) Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cat, nil
}

type fakeRecognizer struct {
	starts int
	stops  int
}

func (f *fakeRecognizer) Start(ctx context.Context) error {
	f.starts++
	return nil
}

func (f *fakeRecognizer) Stop() error {
	f.stops++
	return nil
}

type fakeLocator struct {
	coords catalog.Coords
	err    error
}

func (f fakeLocator) Locate(ctx context.Context) (catalog.Coords, error) {
	return f.coords, f.err
}

var errTransport = errors.New("connection refused")

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Syllabuses: catalog.Syllabuses{
			UG: []catalog.SyllabusEntry{
				{Name: "B.Sc. Physics", URL: "https://x/y"},
			},
			PG: []catalog.SyllabusEntry{
				{Name: "M.Com.", URLs: []catalog.Link{
					{Name: "Sem 1", URL: "https://x/m1"},
					{Name: "Sem 2", URL: "https://x/m2"},
				}},
			},
		},
		HolidayList: catalog.HolidayList{Details: "Holi: 14 Mar\nDiwali: 1 Nov"},
	}
}

// reentrantRecognizer reports back into the session from inside Start and
// Stop, the way a platform recognizer that fails fast does.
type reentrantRecognizer struct {
	onStart func() error
	onStop  func()
	starts  int
	stops   int
}

func (r *reentrantRecognizer) Start(ctx context.Context) error {
	r.starts++
	if r.onStart != nil {
		return r.onStart()
	}
	return nil
}

func (r *reentrantRecognizer) Stop() error {
	r.stops++
	if r.onStop != nil {
		r.onStop()
	}
	return nil
}
