package registry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/fileutil"
	"github.com/webpick/webpick/logutil"
)

// userChoiceKey is the per-user URL association key holding the http-scheme
// handler choice.
const userChoiceKey = `HKCU\Software\Microsoft\Windows\Shell\Associations\UrlAssociations\http\UserChoice`

// windowsProvider discovers browsers from a fixed install-path table and
// reads the default handler's ProgId out of the registry with reg.exe.
type windowsProvider struct {
	run    cmdutil.Runner
	cat    *catalog.Catalog
	exists func(string) bool
	log    *slog.Logger
}

func newWindowsProvider(run cmdutil.Runner, cat *catalog.Catalog) *windowsProvider {
	return &windowsProvider{
		run:    run,
		cat:    cat,
		exists: fileutil.Exists,
		log:    logutil.NewLogger("registry.windows"),
	}
}

// Discover implements Provider.
func (w *windowsProvider) Discover(ctx context.Context) []Browser {
	var browsers []Browser
	for _, install := range w.cat.Windows.Installs {
		if !w.exists(install.Path) {
			continue
		}
		// 32-bit and 64-bit variants register independently, each with
		// its own path, but are displayed under the same name.
		name := strings.TrimSpace(strings.ReplaceAll(install.Name, "(x86)", ""))
		browsers = append(browsers, Browser{
			Name: name,
			Path: install.Path,
			ID:   tag(install.Name),
		})
	}

	if defaultName := w.defaultName(ctx); defaultName != "" {
		markDefault(browsers, func(b Browser) bool {
			return strings.Contains(strings.ToLower(b.Name), strings.ToLower(defaultName))
		})
	}

	sortByName(browsers)
	w.log.Debug("discovery complete", "count", len(browsers))
	return browsers
}

// defaultName resolves the UserChoice ProgId to a display name, or "".
func (w *windowsProvider) defaultName(ctx context.Context) string {
	out := w.run.Output(ctx, "reg", "query", userChoiceKey, "/v", "ProgId")
	value := parseRegValue(out, "ProgId")
	if value == "" {
		return ""
	}

	name := w.cat.Windows.DefaultNameForProgID(value)
	w.log.Debug("resolved default handler", "progId", value, "name", name)
	return name
}

// parseRegValue extracts a value from reg.exe query output. The output
// format is a header line followed by "    <name>    <type>    <data>".
func parseRegValue(out, name string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.EqualFold(fields[0], name) {
			continue
		}
		return fields[len(fields)-1]
	}
	return ""
}
