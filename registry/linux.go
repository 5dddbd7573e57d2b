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

// linuxProvider discovers browsers from per-browser candidate path lists
// (standard and snap install locations) and asks the desktop environment's
// settings helper for the default.
type linuxProvider struct {
	run    cmdutil.Runner
	cat    *catalog.Catalog
	first  func([]string) string
	log    *slog.Logger
}

func newLinuxProvider(run cmdutil.Runner, cat *catalog.Catalog) *linuxProvider {
	return &linuxProvider{
		run:   run,
		cat:   cat,
		first: fileutil.FirstExisting,
		log:   logutil.NewLogger("registry.linux"),
	}
}

// Discover implements Provider.
func (l *linuxProvider) Discover(ctx context.Context) []Browser {
	var browsers []Browser
	for _, entry := range l.cat.Linux.Browsers {
		path := l.first(entry.Paths)
		if path == "" {
			continue
		}
		browsers = append(browsers, Browser{
			Name: entry.Name,
			Path: path,
			ID:   tag(entry.Name),
		})
	}

	if target := l.defaultTarget(ctx); target != "" {
		markDefault(browsers, func(b Browser) bool {
			return b.ID == target || strings.Contains(b.Path, target)
		})
	}

	sortByName(browsers)
	l.log.Debug("discovery complete", "count", len(browsers))
	return browsers
}

// defaultTarget returns the desktop-entry name (without the .desktop suffix)
// the desktop environment reports as the default web browser.
func (l *linuxProvider) defaultTarget(ctx context.Context) string {
	out := l.run.Output(ctx, "xdg-settings", "get", "default-web-browser")
	target := strings.TrimSpace(out)
	target = strings.TrimSuffix(target, ".desktop")
	if target != "" {
		l.log.Debug("resolved default handler", "desktopEntry", target)
	}
	return target
}
