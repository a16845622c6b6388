// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server acting as the logged-in user.
package main

import (
	"github.com/harperreed/fuerza/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and logs entries for the logged-in
user (see 'fuerza login') or the user named with --user.

CONFIGURATION:

  {
    "mcpServers": {
      "fuerza": {
        "command": "fuerza",
        "args": ["mcp", "--user", "ana@example.com"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout          Record a workout
  log_meal             Record a meal
  log_measurement      Record body measurements
  recent_workouts      Most recent workouts
  recent_meals         Most recent meals
  recent_measurements  Most recent measurements
  get_report           Calories by category, workout and measurement series

AVAILABLE RESOURCES:

  fuerza://summary     Five latest entries of each kind
  fuerza://reports     Report aggregates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(repo, u)
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
