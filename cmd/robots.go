package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRobotsCommand creates the robots subcommand.
func newRobotsCommand() *cobra.Command {
	var sitemaps bool

	cmd := &cobra.Command{
		Use:   "robots URL",
		Short: "Check a URL against its domain's robots.txt",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := newScout()
			if err != nil {
				return err
			}

			fmt.Printf("allowed: %t\n", s.IsAllowed(args[0]))

			if sitemaps {
				for _, sitemap := range s.SitemapURLs(args[0]) {
					fmt.Printf("sitemap: %s\n", sitemap)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sitemaps, "sitemaps", false, "list the robots.txt sitemap declarations")

	return cmd
}
