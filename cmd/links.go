package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/webscout/internal/links"
)

// newLinksCommand creates the links subcommand.
func newLinksCommand() *cobra.Command {
	var (
		domainsOnly bool
		pagesOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "links URL",
		Short: "Fetch a URL and print its outbound links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newScout()
			if err != nil {
				return err
			}

			resp, err := s.Fetch(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if resp == nil || !resp.HasBody() {
				return fmt.Errorf("nothing fetched for %s", args[0])
			}

			found := s.GetLinks(resp.Text(), resp.URL)
			if pagesOnly {
				found = links.PageLinksOnly(found)
			}
			if domainsOnly {
				found = links.UniqueDomains(found)
			}

			for _, link := range found {
				fmt.Println(link)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&domainsOnly, "domains", false, "reduce to unique domains")
	cmd.Flags().BoolVar(&pagesOnly, "pages", false, "keep only page links, dropping media assets")

	return cmd
}
