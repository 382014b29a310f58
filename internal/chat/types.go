package chat

import (
	"errors"
	"time"

	"github.com/bgdnvk/campusbot/internal/catalog"
	"github.com/bgdnvk/campusbot/internal/reply"
)

var (
	// ErrBusy is returned by Send while a previous send is still pending.
	ErrBusy = errors.New("a message is already being answered")
	// ErrEmpty is returned by Send when there is no text and no image.
	ErrEmpty = errors.New("nothing to send")
	// ErrSpeechUnsupported is returned when no speech recognizer is available.
	ErrSpeechUnsupported = errors.New("speech recognition is not supported")
	// ErrCatalogUnavailable marks a session running without catalog data.
	ErrCatalogUnavailable = catalog.ErrUnavailable
	// ErrNoAnswerService is reported when a generic message has nowhere to go.
	ErrNoAnswerService = errors.New("no answering service configured")
)

const (
	ListeningLabel          = "Listening..."
	SpeechUnsupportedNotice = "Speech recognition is not supported on this device. Please use a client with a microphone."
	speechErrorPrefix       = "An error occurred with speech recognition: "
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry of the append-only conversation log.
type Message struct {
	ID        string          `json:"id"`
	Role      Role            `json:"role"`
	Text      string          `json:"text"`
	Links     []reply.Link    `json:"links,omitempty"`
	Coords    *catalog.Coords `json:"coords,omitempty"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// State is the session's interaction state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a configured value to a Theme, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Image is a locally selected picture. It is previewed but never uploaded.
type Image struct {
	Name    string
	DataURL string
}

// MapView is the map panel shown after an answer with coordinates.
// Origin is set when the user's position could be determined.
type MapView struct {
	Destination catalog.Coords
	Origin      *catalog.Coords
}

// EventKind identifies what changed in a session.
type EventKind string

const (
	EventMessage EventKind = "message"
	EventTyping  EventKind = "typing"
	EventNotice  EventKind = "notice"
	EventMap     EventKind = "map"
	EventTheme   EventKind = "theme"
	EventState   EventKind = "state"
)

// Event is delivered to listeners after a session change is applied.
type Event struct {
	Kind    EventKind
	Message *Message
	Typing  string
	Notice  string
	Map     *MapView
	Theme   Theme
	State   State
}
