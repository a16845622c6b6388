// ABOUTME: MCP server setup for the fuerza activity log.
// ABOUTME: Every tool and resource acts as the single user resolved at startup.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/report"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access for one user.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	reports   *report.Builder
	user      *models.User
}

// NewServer creates a new MCP server that logs entries for user.
func NewServer(repo storage.Repository, user *models.User) (*Server, error) {
	if user == nil || user.ID == 0 {
		return nil, errors.New("mcp server needs a signed-in user")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fuerza",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		reports:   report.NewBuilder(repo),
		user:      user,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
