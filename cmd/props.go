package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/webscout/internal/content"
)

// listPreviewLimit bounds how many slice elements the table shows.
const listPreviewLimit = 5

// newPropsCommand creates the props subcommand.
func newPropsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "props URL",
		Short: "Fetch a URL and print its extracted properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newScout()
			if err != nil {
				return err
			}

			props, err := s.GetProperties(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if props == nil {
				return fmt.Errorf("no properties: all fetch strategies failed for %s", args[0])
			}

			renderProperties(props)
			return nil
		},
	}
}

// renderProperties prints the property map as a two-column table, keys
// sorted, long values truncated.
func renderProperties(props content.Properties) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Property", "Value"})

	for _, key := range keys {
		t.AppendRow(table.Row{key, formatValue(props[key])})
	}

	t.Render()
}

// formatValue renders one property value for the table.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return truncate(v, 120)
	case []string:
		if len(v) > listPreviewLimit {
			return fmt.Sprintf("%s … (%d total)",
				strings.Join(v[:listPreviewLimit], "\n"), len(v))
		}
		return strings.Join(v, "\n")
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return truncate(fmt.Sprintf("%v", v), 120)
	}
}

// truncate shortens a string for display.
func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= limit {
		return s
	}

	return s[:limit] + "…"
}
