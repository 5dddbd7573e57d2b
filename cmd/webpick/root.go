package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/logutil"
	"github.com/webpick/webpick/notify"
	"github.com/webpick/webpick/osutil"
	"github.com/webpick/webpick/progress"
	"github.com/webpick/webpick/registry"
	"github.com/webpick/webpick/setter"
	"github.com/webpick/webpick/version"
)

// app wires the platform-specific pieces together once per invocation.
type app struct {
	family   osutil.Family
	run      cmdutil.Runner
	cat      *catalog.Catalog
	provider registry.Provider
	setter   setter.Setter
	notifier notify.Notifier
	stdin    io.Reader
	// interactive reports whether the zero-arg prompt should run.
	interactive func() bool
}

func newApp(catalogPath string) (*app, error) {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	family := osutil.DetectFamily()
	run := cmdutil.NewExecRunner()
	return &app{
		family:   family,
		run:      run,
		cat:      cat,
		provider: registry.New(family, run, cat),
		setter:   setter.New(family, run, cat),
		notifier: notify.Beeep{},
		stdin:    os.Stdin,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}, nil
}

func newRootCmd() *cobra.Command {
	var (
		flagOutput  string
		flagDebug   bool
		flagCatalog string
		a           *app
	)

	cmd := &cobra.Command{
		Use:   "webpick [number]",
		Short: "List installed browsers and switch the system default",
		Long: `webpick enumerates the browsers installed on this machine, shows which
one currently handles http/https links, and can make another one the
default. Run without arguments for an interactive picker, or pass the
number of a browser from the list to switch directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliout.SetFormat(flagOutput); err != nil {
				return err
			}
			logutil.Setup(flagDebug, cliout.IsJSON())
			cmd.Flags().Visit(func(f *pflag.Flag) {
				slog.Debug("flag set", "name", f.Name, "value", f.Value.String())
			})
			var err error
			a, err = newApp(flagCatalog)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				return a.switchByArg(ctx, args[0])
			}
			return a.pick(ctx)
		},
	}

	cmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output format (json)")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to a browser catalog override file")

	cmd.AddCommand(newListCmd(&a))
	cmd.AddCommand(newSetCmd(&a))
	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newDoctorCmd(&a))
	cmd.AddCommand(version.NewCommand(version.New("webpick"), &flagOutput))

	return cmd
}

// discover runs browser discovery with a spinner on the slow macOS path.
func (a *app) discover(ctx context.Context) []registry.Browser {
	if a.family == osutil.FamilyDarwin {
		sp := progress.New("scanning installed browsers")
		sp.Start()
		defer sp.Stop()
	}
	return a.provider.Discover(ctx)
}

// pick implements the zero-argument flow: print the list, then prompt for
// a selection when attached to a terminal.
func (a *app) pick(ctx context.Context) error {
	browsers := a.discover(ctx)

	if cliout.IsJSON() {
		return cliout.PrintJSON(browsers)
	}

	printBrowsers(browsers)
	if len(browsers) == 0 || !a.interactive() {
		return nil
	}

	cliout.Newline()
	cliout.Prompt(fmt.Sprintf("Set default browser [1-%d, blank to cancel]:", len(browsers)))
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(browsers) {
		cliout.Error("invalid selection %q", line)
		return nil
	}
	a.switchTo(ctx, browsers[n-1])
	return nil
}

// switchByArg handles `webpick <n>`.
func (a *app) switchByArg(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("expected a browser number, got %q (run 'webpick' to see the list)", arg)
	}

	browsers := a.discover(ctx)
	if n < 1 || n > len(browsers) {
		cliout.Error("no browser number %d (found %d)", n, len(browsers))
		return nil
	}
	a.switchTo(ctx, browsers[n-1])
	return nil
}

// switchTo attempts the default-browser switch and narrates the result.
func (a *app) switchTo(ctx context.Context, b registry.Browser) bool {
	if b.Default {
		cliout.Info("%s is already the default browser", b.Name)
		return true
	}

	cliout.Info("setting %s as the default browser", cliout.Emphasize("%s", b.Name))
	ok := a.setter.Set(ctx, setter.Target{Name: b.Name, ID: b.ID})
	if !ok {
		cliout.Warning("could not switch automatically; follow the instructions above")
		return false
	}

	cliout.Success("%s is now the default browser", b.Name)
	_ = a.notifier.Send(notify.Notification{
		Title:   "webpick",
		Message: fmt.Sprintf("%s is now your default browser", b.Name),
	})
	return true
}

func printBrowsers(browsers []registry.Browser) {
	if len(browsers) == 0 {
		cliout.Warning("no browsers found")
		return
	}
	for i, b := range browsers {
		line := fmt.Sprintf("%2d. %s", i+1, cliout.Emphasize("%s", b.Name))
		if b.Default {
			line += cliout.DefaultTag()
		}
		cliout.Plain("%s", line)
		if b.Path != "" {
			cliout.Item("%s", cliout.Muted("%s", b.Path))
		}
	}
}
