package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/registry"
)

func newSetCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <number|name>",
		Short: "Make a browser the system default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			browsers := (*a).discover(ctx)

			b, ok := resolveBrowser(browsers, args[0])
			if !ok {
				cliout.Error("no browser matching %q (run 'webpick list')", args[0])
				return nil
			}
			(*a).switchTo(ctx, b)
			return nil
		},
	}
}

// resolveBrowser matches arg as a 1-based list position first, then as a
// case-insensitive display-name match.
func resolveBrowser(browsers []registry.Browser, arg string) (registry.Browser, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(browsers) {
			return browsers[n-1], true
		}
		return registry.Browser{}, false
	}
	for _, b := range browsers {
		if strings.EqualFold(b.Name, arg) {
			return b, true
		}
	}
	return registry.Browser{}, false
}
