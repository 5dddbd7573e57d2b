// Package registry discovers installed browsers and identifies the current
// default HTTP/HTTPS handler. Discovery is a stateless snapshot: every call
// rebuilds the list from host configuration, and no branch ever fails —
// broken or missing introspection tools degrade to partial results.
package registry

import (
	"context"
	"sort"
	"strings"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/osutil"
)

// Browser is one installed browser found during discovery.
type Browser struct {
	// Name is the human-readable display name.
	Name string `json:"name"`
	// Path is the executable or application-bundle path used as install
	// evidence. It is never invoked.
	Path string `json:"path"`
	// ID is the platform-specific stable key: a lowercase tag on Windows
	// and Linux, a bundle identifier on macOS.
	ID string `json:"id"`
	// Default is true for at most one browser per discovery call.
	Default bool `json:"default"`
}

// Provider produces the browsers installed on one OS family.
type Provider interface {
	// Discover returns the installed browsers sorted by name, with at most
	// one entry marked default. It never returns an error; failures yield
	// whatever partial result was accumulated.
	Discover(ctx context.Context) []Browser
}

// New returns the Provider for an OS family. Unsupported families get a
// provider that always returns nil.
func New(family osutil.Family, run cmdutil.Runner, cat *catalog.Catalog) Provider {
	switch family {
	case osutil.FamilyWindows:
		return newWindowsProvider(run, cat)
	case osutil.FamilyDarwin:
		return newDarwinProvider(run, cat)
	case osutil.FamilyLinux:
		return newLinuxProvider(run, cat)
	default:
		return unsupportedProvider{}
	}
}

type unsupportedProvider struct{}

func (unsupportedProvider) Discover(context.Context) []Browser { return nil }

// sortByName orders browsers by display name, codepoint order.
func sortByName(browsers []Browser) {
	sort.Slice(browsers, func(i, j int) bool {
		return browsers[i].Name < browsers[j].Name
	})
}

// markDefault sets Default on the first browser matched by match. At most
// one entry is marked even if several would match.
func markDefault(browsers []Browser, match func(Browser) bool) {
	for i := range browsers {
		if match(browsers[i]) {
			browsers[i].Default = true
			return
		}
	}
}

// tag builds the lowercase identifier used on Windows and Linux: the display
// name with spaces and the "(x86)" token removed.
func tag(name string) string {
	t := strings.ToLower(name)
	t = strings.ReplaceAll(t, "(x86)", "")
	t = strings.ReplaceAll(t, " ", "")
	return t
}
