package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/catalog"
	"github.com/bgdnvk/campusbot/internal/intent"
	"github.com/bgdnvk/campusbot/internal/reply"
)

// CatalogLoader fetches the catalog once per session start.
type CatalogLoader interface {
	Load(ctx context.Context, source string) (*catalog.Catalog, error)
}

// Option configures a Session.
type Option func(*Session)

// WithRecognizer enables voice input.
func WithRecognizer(r SpeechRecognizer) Option {
	return func(s *Session) { s.recognizer = r }
}

// WithLocator lets the map panel include the user's position.
func WithLocator(l Locator) Option {
	return func(s *Session) { s.locator = l }
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(s *Session) { s.theme = t }
}

// WithListener registers fn to receive every applied change.
func WithListener(fn func(Event)) Option {
	return func(s *Session) { s.listeners = append(s.listeners, fn) }
}

// Session is one user's conversation. All fields are guarded by mu; the
// dispatch itself runs without holding it.
type Session struct {
	ID string

	dispatcher *Dispatcher
	recognizer SpeechRecognizer
	locator    Locator
	listeners  []func(Event)

	mu       sync.Mutex
	messages []Message
	notices  []string
	state    State
	typing   string
	theme    Theme
	image    *Image
	mapView  *MapView
	draft    string
}

// NewSession creates an idle session around dispatcher.
func NewSession(dispatcher *Dispatcher, opts ...Option) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		dispatcher: dispatcher,
		theme:      ThemeLight,
		messages:   make([]Message, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCatalog fetches the catalog and installs it on the dispatcher. On
// failure exactly one apology is appended and the session stays degraded.
func (s *Session) LoadCatalog(ctx context.Context, loader CatalogLoader, source string) error {
	cat, err := loader.Load(ctx, source)
	if err != nil {
		logrus.WithError(err).WithField("source", source).Error("could not fetch chatbot data")
		s.dispatcher.SetCatalog(nil)
		var events []Event
		s.mu.Lock()
		events = append(events, s.appendLocked(RoleBot, reply.Reply{Text: reply.CatalogUnavailable}, ""))
		s.mu.Unlock()
		s.publish(events)
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.dispatcher.SetCatalog(cat)
	return nil
}

// SetDraft replaces the pending input text.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Draft returns the pending input text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SendEnabled reports whether Send would do anything right now.
func (s *Session) SendEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendEnabledLocked()
}

func (s *Session) sendEnabledLocked() bool {
	if s.state == StateAwaitingResponse {
		return false
	}
	return strings.TrimSpace(s.draft) != "" || s.image != nil
}

// SendText sets the draft to text and sends it.
func (s *Session) SendText(ctx context.Context, text string) (Outcome, error) {
	s.SetDraft(text)
	return s.Send(ctx)
}

// Send submits the draft. It returns ErrBusy while a previous send is pending
// and ErrEmpty when there is neither text nor an image. Answering failures
// never surface here; they become the fallback reply.
func (s *Session) Send(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.state == StateAwaitingResponse {
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	raw := strings.TrimSpace(s.draft)
	if intent.Normalize(raw) == "" && s.image == nil {
		s.mu.Unlock()
		return Outcome{}, ErrEmpty
	}

	var events []Event
	wasRecording := s.state == StateRecording
	if wasRecording {
		events = append(events, s.leaveRecordingLocked()...)
	}

	imageName := ""
	if s.image != nil {
		imageName = s.image.Name
	}
	events = append(events, s.appendLocked(RoleUser, reply.Reply{Text: raw}, imageName))
	s.draft = ""
	s.image = nil
	if s.mapView != nil {
		s.mapView = nil
		events = append(events, Event{Kind: EventMap})
	}
	s.state = StateAwaitingResponse
	s.typing = "..."
	events = append(events,
		Event{Kind: EventState, State: s.state},
		Event{Kind: EventTyping, Typing: s.typing},
	)
	s.mu.Unlock()
	s.publish(events)
	if wasRecording {
		s.stopRecognizer()
	}

	out := s.dispatcher.Dispatch(ctx, raw)

	var view *MapView
	if out.Reply.Coords != nil {
		view = s.locate(ctx, *out.Reply.Coords)
	}

	s.mu.Lock()
	events = events[:0]
	s.typing = ""
	events = append(events, Event{Kind: EventTyping})
	if !out.Reply.Empty() {
		events = append(events, s.appendLocked(RoleBot, out.Reply, ""))
	}
	if view != nil {
		s.mapView = view
		events = append(events, Event{Kind: EventMap, Map: view})
	}
	s.state = StateIdle
	events = append(events, Event{Kind: EventState, State: s.state})
	s.mu.Unlock()
	s.publish(events)

	return out, nil
}

func (s *Session) locate(ctx context.Context, dest catalog.Coords) *MapView {
	view := &MapView{Destination: dest}
	if s.locator == nil {
		return view
	}
	origin, err := s.locator.Locate(ctx)
	if err != nil {
		logrus.WithError(err).Warn("geolocation unavailable")
		return view
	}
	view.Origin = &origin
	return view
}

// appendLocked adds a message to the log and returns its event.
func (s *Session) appendLocked(role Role, r reply.Reply, image string) Event {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      r.Text,
		Links:     r.Links,
		Coords:    r.Coords,
		Image:     image,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return Event{Kind: EventMessage, Message: &msg}
}

func (s *Session) noticeLocked(text string) Event {
	s.notices = append(s.notices, text)
	return Event{Kind: EventNotice, Notice: text}
}

func (s *Session) publish(events []Event) {
	for _, ev := range events {
		for _, fn := range s.listeners {
			fn(ev)
		}
	}
}

// Messages returns a copy of the conversation log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Notices returns the user-facing notices raised so far.
func (s *Session) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notices))
	copy(out, s.notices)
	return out
}

// State returns the current interaction state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Typing returns the typing placeholder label, or "" when hidden.
func (s *Session) Typing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// Map returns the visible map panel, or nil.
func (s *Session) Map() *MapView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapView == nil {
		return nil
	}
	view := *s.mapView
	return &view
}

// HideMap closes the map panel.
func (s *Session) HideMap() {
	s.mu.Lock()
	visible := s.mapView != nil
	s.mapView = nil
	s.mu.Unlock()
	if visible {
		s.publish([]Event{{Kind: EventMap}})
	}
}
