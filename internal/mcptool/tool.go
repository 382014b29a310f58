// Package mcptool exposes the campus assistant as an MCP tool.
package mcptool

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/chat"
)

const (
	ServerName = "campusbot"
	ToolName   = "campus_ask"
)

// SessionFactory returns a fresh, catalog-ready session per call.
type SessionFactory func(ctx context.Context) *chat.Session

// NewServer builds an MCP server with the campus_ask tool registered.
func NewServer(version string, sessions SessionFactory) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(Tool(), AskHandler(sessions))
	return s
}

// Tool describes campus_ask.
func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Ask the college campus assistant about syllabuses, holidays, departments, facilities or staff."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question, in English or Hinglish"),
		),
	)
}

// AskHandler sends the query through a new session and returns the bot reply.
func AskHandler(sessions SessionFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		session := sessions(ctx)
		out, err := session.SendText(ctx, query)
		if errors.Is(err, chat.ErrEmpty) {
			return mcp.NewToolResultError("query is empty"), nil
		}
		if err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"session": session.ID,
			"intent":  out.Intent,
			"remote":  out.Remote,
		}).Debug("campus_ask answered")

		return mcp.NewToolResultText(lastBotText(session.Messages())), nil
	}
}

func lastBotText(messages []chat.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.RoleBot {
			return messages[i].Text
		}
	}
	return ""
}
