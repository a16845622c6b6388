// ABOUTME: MCP resource implementations for the fuerza activity log.
// ABOUTME: Provides fuerza://summary and fuerza://reports as JSON documents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fuerza/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	summaryURI = "fuerza://summary"
	reportsURI = "fuerza://reports"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Home Summary",
		Description: "The five most recent workouts, meals, and measurements",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         reportsURI,
		Name:        "Reports",
		Description: "Calories by category, workout series by type, and measurement trends",
		MIMEType:    "application/json",
	}, s.handleReportsResource)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sum, err := s.reports.Summary(ctx, s.user.ID, storage.DefaultRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	result := map[string]any{
		"user":         s.user.Name,
		"workouts":     sum.Workouts,
		"meals":        sum.Meals,
		"measurements": sum.Measurements,
	}
	return jsonResource(summaryURI, result)
}

func (s *Server) handleReportsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	r, err := s.reports.Build(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build reports: %w", err)
	}
	return jsonResource(reportsURI, r)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
