// ABOUTME: CLI commands for exporting and importing a user's history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your history",
	Long: `Export the current user's workouts, meals, and measurements.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include entries on or after this date (markdown only)

EXAMPLES:

  fuerza export json -o backup.json
  fuerza export yaml
  fuerza export markdown --since 2024-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = repo.ExportJSON(cmd.Context(), u.ID)
		case "yaml":
			data, err = repo.ExportYAML(cmd.Context(), u.ID)
		case "markdown":
			var since *models.Date
			if exportSince != "" {
				d, perr := models.ParseDate(exportSince)
				if perr != nil {
					return perr
				}
				since = &d
			}
			var md string
			md, err = repo.ExportMarkdown(cmd.Context(), u.ID, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Println(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import history from a JSON or YAML export",
	Long: `Import workouts, meals, and measurements from a previous export into the
current user's log. Files ending in .yaml or .yml are read as YAML, anything
else as JSON. The import is all or nothing.

EXAMPLES:

  fuerza import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			err = repo.ImportYAML(cmd.Context(), u.ID, data)
		default:
			err = repo.ImportJSON(cmd.Context(), u.ID, data)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include entries since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
