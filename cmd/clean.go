package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/webscout/internal/urlx"
)

// newCleanCommand creates the clean subcommand. Pure: no network, no
// configuration needed.
func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean URL [URL...]",
		Short: "Canonicalize URLs without fetching them",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			for _, raw := range args {
				fmt.Println(urlx.CleanLink(raw))
			}
		},
	}
}
