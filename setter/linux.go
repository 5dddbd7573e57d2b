package setter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/logutil"
)

// linuxSetter delegates to the desktop environment's settings helper.
type linuxSetter struct {
	run cmdutil.Runner
	cat *catalog.Catalog
	log *slog.Logger
}

func newLinuxSetter(run cmdutil.Runner, cat *catalog.Catalog) *linuxSetter {
	return &linuxSetter{run: run, cat: cat, log: logutil.NewLogger("setter.linux")}
}

// Set implements Setter.
func (l *linuxSetter) Set(ctx context.Context, t Target) bool {
	out := Chain(ctx, t, []Strategy{
		{Name: "xdg-settings", Apply: l.xdgSettings},
	}, l.log)
	return out.OK
}

// xdgSettings resolves the browser's desktop entry and hands it to
// xdg-settings. Success is a heuristic: the helper prints nothing on
// success, so any output mentioning "error" counts as failure. There is no
// verified state transition.
func (l *linuxSetter) xdgSettings(ctx context.Context, t Target) Outcome {
	desktop := l.cat.Linux.DesktopFor(t.Name)
	if desktop == "" {
		return Outcome{OK: false, Note: "no desktop entry known for " + t.Name}
	}

	out := l.run.Output(ctx, "xdg-settings", "set", "default-web-browser", desktop)
	trimmed := strings.TrimSpace(out)
	if trimmed != "" && strings.Contains(strings.ToLower(trimmed), "error") {
		cliout.Warning("xdg-settings reported: %s", trimmed)
		return Outcome{OK: false, Note: "helper reported an error"}
	}
	return Outcome{OK: true, Note: "desktop entry set to " + desktop}
}
