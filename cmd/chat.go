package cmd

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgdnvk/campusbot/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the campus assistant in the terminal",
	Long: `Start an interactive chat session.

Commands inside the chat:
  /image <path>   attach an image preview (it is not uploaded)
  /clear          remove the attached image
  /mic            toggle voice input
  /theme          toggle light/dark theme
  /quit           leave the chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		ctx := cmd.Context()

		setup, err := newSessionSetup(ctx, local)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		session := setup.newSession(ctx,
			chat.WithTheme(chat.ParseTheme(viper.GetString("ui.theme"))),
			chat.WithListener(printer(out)),
		)
		for _, msg := range session.Messages() {
			printMessage(out, msg)
		}

		fmt.Fprintln(out, "Ask me about syllabus, holidays, departments or anything about the campus. Type /quit to leave.")
		return runREPL(ctx, cmd.InOrStdin(), out, session)
	},
}

func init() {
	chatCmd.Flags().Bool("local", false, "answer generic questions in-process instead of calling the answering service")
}

func runREPL(ctx context.Context, in io.Reader, out io.Writer, session *chat.Session) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "you> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		if quit := handleLine(ctx, out, session, strings.TrimSpace(line)); quit || eof {
			if eof {
				fmt.Fprintln(out)
			}
			return nil
		}
	}
}

// handleLine runs one REPL line and reports whether the user asked to quit.
func handleLine(ctx context.Context, out io.Writer, session *chat.Session, line string) bool {
	switch {
	case line == "":
		return false
	case line == "/quit" || line == "/exit":
		return true
	case line == "/theme":
		session.ToggleTheme()
	case line == "/clear":
		session.ClearImage()
		fmt.Fprintln(out, "image removed")
	case line == "/mic":
		if err := session.ToggleMicrophone(ctx); err != nil && !errors.Is(err, chat.ErrSpeechUnsupported) {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	case strings.HasPrefix(line, "/image "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/image "))
		dataURL, err := imageDataURL(path)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		session.SelectImage(filepath.Base(path), dataURL)
		fmt.Fprintf(out, "attached %s\n", filepath.Base(path))
	case strings.HasPrefix(line, "/image"):
		fmt.Fprintln(out, "usage: /image <path>")
	default:
		session.SetDraft(line)
		if _, err := session.Send(ctx); err != nil && !errors.Is(err, chat.ErrEmpty) {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return false
}

func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// printer renders session events as terminal lines.
func printer(out io.Writer) func(chat.Event) {
	return func(ev chat.Event) {
		switch ev.Kind {
		case chat.EventMessage:
			if ev.Message.Role == chat.RoleBot {
				printMessage(out, *ev.Message)
			}
		case chat.EventTyping:
			if ev.Typing == chat.ListeningLabel {
				fmt.Fprintln(out, "bot> "+ev.Typing)
			}
		case chat.EventNotice:
			fmt.Fprintln(out, "! "+ev.Notice)
		case chat.EventMap:
			if ev.Map != nil {
				fmt.Fprintln(out, "map> "+mapLink(ev.Map))
			}
		case chat.EventTheme:
			fmt.Fprintf(out, "theme: %s\n", ev.Theme)
		}
	}
}

func printMessage(out io.Writer, msg chat.Message) {
	prefix := "bot> "
	if msg.Role == chat.RoleUser {
		prefix = "you> "
	}
	fmt.Fprintln(out, prefix+strings.ReplaceAll(msg.Text, "\n", "\n     "))
}

func mapLink(view *chat.MapView) string {
	d := view.Destination
	if view.Origin == nil {
		return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f#map=15/%f/%f", d.Lat, d.Lng, d.Lat, d.Lng)
	}
	o := view.Origin
	return fmt.Sprintf("https://www.openstreetmap.org/directions?route=%f%%2C%f%%3B%f%%2C%f", o.Lat, o.Lng, d.Lat, d.Lng)
}
