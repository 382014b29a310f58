package chat

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/catalog"
)

// SpeechRecognizer is a platform speech-to-text service. Results are fed
// back through OnSpeechResult, OnSpeechError and OnSpeechEnd, either from
// another goroutine or synchronously from inside Start and Stop.
type SpeechRecognizer interface {
	Start(ctx context.Context) error
	Stop() error
}

// Locator reports the user's current position.
type Locator interface {
	Locate(ctx context.Context) (catalog.Coords, error)
}

// ToggleMicrophone switches between idle and recording. The recognizer is
// started and stopped without holding the session lock, so it may call back
// into the session synchronously.
func (s *Session) ToggleMicrophone(ctx context.Context) error {
	if s.recognizer == nil {
		s.mu.Lock()
		ev := s.noticeLocked(SpeechUnsupportedNotice)
		s.mu.Unlock()
		s.publish([]Event{ev})
		return ErrSpeechUnsupported
	}

	s.mu.Lock()
	switch s.state {
	case StateAwaitingResponse:
		s.mu.Unlock()
		return ErrBusy
	case StateRecording:
		events := s.leaveRecordingLocked()
		s.mu.Unlock()
		s.publish(events)
		s.stopRecognizer()
		return nil
	}

	s.state = StateRecording
	s.typing = ListeningLabel
	events := []Event{
		{Kind: EventState, State: s.state},
		{Kind: EventTyping, Typing: s.typing},
	}
	s.mu.Unlock()
	s.publish(events)

	if err := s.recognizer.Start(ctx); err != nil {
		s.mu.Lock()
		var rollback []Event
		if s.state == StateRecording {
			rollback = s.leaveRecordingLocked()
		}
		s.mu.Unlock()
		s.publish(rollback)
		return err
	}
	return nil
}

// leaveRecordingLocked returns to idle and clears the listening label. The
// caller stops the recognizer after releasing the lock.
func (s *Session) leaveRecordingLocked() []Event {
	s.state = StateIdle
	s.typing = ""
	return []Event{
		{Kind: EventState, State: s.state},
		{Kind: EventTyping},
	}
}

func (s *Session) stopRecognizer() {
	if err := s.recognizer.Stop(); err != nil {
		logrus.WithError(err).Warn("speech recognizer did not stop cleanly")
	}
}

// OnSpeechResult takes a final transcript, leaves recording and sends it.
func (s *Session) OnSpeechResult(ctx context.Context, transcript string) (Outcome, error) {
	s.mu.Lock()
	var events []Event
	if s.state == StateRecording {
		events = s.leaveRecordingLocked()
	}
	s.draft = transcript
	s.mu.Unlock()
	s.publish(events)

	return s.Send(ctx)
}

// OnSpeechError leaves recording and raises a notice describing cause.
func (s *Session) OnSpeechError(cause error) {
	logrus.WithError(cause).Error("speech recognition error")

	s.mu.Lock()
	var events []Event
	if s.state == StateRecording {
		events = s.leaveRecordingLocked()
	}
	msg := "unknown"
	if cause != nil {
		msg = cause.Error()
	}
	events = append(events, s.noticeLocked(speechErrorPrefix+msg))
	s.mu.Unlock()
	s.publish(events)
}

// OnSpeechEnd restarts the recognizer while the session is still recording.
func (s *Session) OnSpeechEnd(ctx context.Context) error {
	s.mu.Lock()
	recording := s.state == StateRecording
	s.mu.Unlock()
	if !recording {
		return nil
	}
	return s.recognizer.Start(ctx)
}

// SelectImage replaces the image preview.
func (s *Session) SelectImage(name, dataURL string) {
	s.mu.Lock()
	s.image = &Image{Name: name, DataURL: dataURL}
	s.mu.Unlock()
}

// ClearImage removes the image preview.
func (s *Session) ClearImage() {
	s.mu.Lock()
	s.image = nil
	s.mu.Unlock()
}

// SelectedImage returns the previewed image, or nil.
func (s *Session) SelectedImage() *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return nil
	}
	img := *s.image
	return &img
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	theme := s.theme
	s.mu.Unlock()
	s.publish([]Event{{Kind: EventTheme, Theme: theme}})
	return theme
}

// Theme returns the current theme.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}
