package main

import (
	"github.com/spf13/cobra"

	"github.com/webpick/webpick/browser"
	"github.com/webpick/webpick/cliout"
)

const defaultTestURL = "https://example.com"

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [url]",
		Short: "Open a URL in the current default browser",
		Long: `Open a URL (https://example.com when omitted) in the system default
browser. Useful for checking that a switch actually took effect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := defaultTestURL
			if len(args) == 1 {
				url = args[0]
			}
			if err := browser.Open(url); err != nil {
				return err
			}
			cliout.Success("opened %s", url)
			return nil
		},
	}
}
