package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgdnvk/campusbot/internal/chat"
)

// askCmd sends a single question through a fresh chat session
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the campus assistant one question",
	Long: `Ask a single question and print the answer.

Examples:
  campusbot ask "ug syllabus"
  campusbot ask "holidays kab hai"
  campusbot ask --local "where is the canteen"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		local, _ := cmd.Flags().GetBool("local")
		ctx := cmd.Context()

		setup, err := newSessionSetup(ctx, local)
		if err != nil {
			return err
		}

		session := setup.newSession(ctx)
		out, err := session.SendText(ctx, question)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		messages := session.Messages()
		for _, msg := range messages {
			if msg.Role == chat.RoleBot {
				fmt.Fprintln(w, msg.Text)
			}
		}
		if view := session.Map(); view != nil {
			fmt.Fprintln(w, mapLink(view))
		}
		if out.Err != nil {
			return fmt.Errorf("answering service failed: %w", out.Err)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("local", false, "answer generic questions in-process instead of calling the answering service")
}
