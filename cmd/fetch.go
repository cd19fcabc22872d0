package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/webscout/internal/page"
)

// newFetchCommand creates the fetch subcommand.
func newFetchCommand() *cobra.Command {
	var (
		ping     bool
		headless bool
		full     bool
		noSSL    bool
		showBody bool
	)

	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Fetch a URL through the strategy chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newScout()
			if err != nil {
				return err
			}

			opts := page.DefaultOptions()
			opts.Ping = ping
			opts.UseHeadlessBrowser = headless
			opts.UseFullBrowser = full
			opts.SSLVerify = !noSSL

			resp, err := s.Fetch(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if resp == nil {
				return fmt.Errorf("all fetch strategies failed for %s", args[0])
			}

			fmt.Printf("url:      %s\n", resp.URL)
			fmt.Printf("status:   %d\n", resp.StatusCode)
			fmt.Printf("encoding: %s\n", resp.Encoding)
			fmt.Printf("valid:    %t\n", resp.IsValid())
			for _, msg := range resp.Errors {
				fmt.Printf("error:    %s\n", msg)
			}

			if showBody && resp.HasBody() {
				fmt.Println(resp.Text())
			} else if resp.HasBody() {
				fmt.Printf("body:     %d bytes\n", len(resp.Binary()))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&ping, "ping", false, "headers only, never download the body")
	cmd.Flags().BoolVar(&headless, "headless", false, "try headless-browser strategies first")
	cmd.Flags().BoolVar(&full, "full", false, "try full-browser strategies first")
	cmd.Flags().BoolVar(&noSSL, "no-ssl-verify", false, "skip TLS certificate verification")
	cmd.Flags().BoolVar(&showBody, "body", false, "print the fetched body")

	return cmd
}
