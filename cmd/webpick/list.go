package main

import (
	"github.com/spf13/cobra"

	"github.com/webpick/webpick/cliout"
)

func newListCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed browsers and the current default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			browsers := (*a).discover(cmd.Context())
			if cliout.IsJSON() {
				return cliout.PrintJSON(browsers)
			}
			printBrowsers(browsers)
			return nil
		},
	}
}
