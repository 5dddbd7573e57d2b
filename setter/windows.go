package setter

import (
	"context"
	"log/slog"

	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/logutil"
)

// windowsSetter never succeeds programmatically: Windows requires the user
// to confirm default-app changes through a Settings dialog that cannot be
// scripted. The only strategy prints instructions and reports failure.
type windowsSetter struct {
	log *slog.Logger
}

func newWindowsSetter() *windowsSetter {
	return &windowsSetter{log: logutil.NewLogger("setter.windows")}
}

// Set implements Setter.
func (w *windowsSetter) Set(ctx context.Context, t Target) bool {
	out := Chain(ctx, t, []Strategy{
		{Name: "manual-instructions", Apply: w.manual},
	}, w.log)
	return out.OK
}

func (w *windowsSetter) manual(_ context.Context, t Target) Outcome {
	cliout.Info("Windows does not allow changing the default browser without confirmation.")
	cliout.Item("Open Settings > Apps > Default apps")
	cliout.Item("Search for %s and choose \"Set default\"", cliout.Emphasize("%s", t.Name))
	return Outcome{OK: false, Note: "manual confirmation required"}
}
