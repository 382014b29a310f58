package cmd

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/bgdnvk/campusbot/internal/chat"
	"github.com/bgdnvk/campusbot/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the campus_ask tool over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")

		setup, err := newSessionSetup(cmd.Context(), local)
		if err != nil {
			return err
		}

		s := mcptool.NewServer(Version, func(ctx context.Context) *chat.Session {
			return setup.newSession(ctx)
		})
		return server.ServeStdio(s)
	},
}

func init() {
	mcpCmd.Flags().Bool("local", true, "answer generic questions in-process instead of calling the answering service")
}
