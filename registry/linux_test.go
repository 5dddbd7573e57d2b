package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webpick/webpick/cmdutil"
)

const xdgGetKey = "xdg-settings get default-web-browser"

func newLinuxTestProvider(t *testing.T, run cmdutil.Runner, installed ...string) *linuxProvider {
	t.Helper()
	p := newLinuxProvider(run, testCatalog(t))
	present := make(map[string]bool, len(installed))
	for _, path := range installed {
		present[path] = true
	}
	p.first = func(candidates []string) string {
		for _, c := range candidates {
			if present[c] {
				return c
			}
		}
		return ""
	}
	return p
}

func TestLinuxDiscoverMarksDefaultByID(t *testing.T) {
	run := &cmdutil.StubRunner{Responses: map[string]string{
		xdgGetKey: "firefox.desktop\n",
	}}
	p := newLinuxTestProvider(t, run, "/usr/bin/firefox", "/usr/bin/google-chrome")

	browsers := p.Discover(context.Background())
	require.Len(t, browsers, 2)
	assertInvariants(t, browsers)

	assert.Equal(t, "Chrome", browsers[0].Name)
	assert.Equal(t, "Firefox", browsers[1].Name)
	assert.True(t, browsers[1].Default)
}

func TestLinuxDiscoverMarksDefaultByPathSubstring(t *testing.T) {
	// xdg reports google-chrome; the Chrome entry's ID is "chrome", so the
	// match falls through to the executable path.
	run := &cmdutil.StubRunner{Responses: map[string]string{
		xdgGetKey: "google-chrome.desktop\n",
	}}
	p := newLinuxTestProvider(t, run, "/usr/bin/google-chrome")

	browsers := p.Discover(context.Background())
	require.Len(t, browsers, 1)
	assert.True(t, browsers[0].Default)
}

func TestLinuxFirstExistingPathWins(t *testing.T) {
	run := &cmdutil.StubRunner{}
	p := newLinuxTestProvider(t, run, "/usr/lib/firefox/firefox", "/snap/bin/firefox")

	browsers := p.Discover(context.Background())
	require.Len(t, browsers, 1)
	assert.Equal(t, "/usr/lib/firefox/firefox", browsers[0].Path)
}

func TestLinuxNoHelperLeavesNoDefault(t *testing.T) {
	p := newLinuxTestProvider(t, &cmdutil.StubRunner{}, "/usr/bin/firefox")

	browsers := p.Discover(context.Background())
	require.Len(t, browsers, 1)
	assert.False(t, browsers[0].Default)
}

func TestLinuxDiscoverIdempotent(t *testing.T) {
	run := &cmdutil.StubRunner{Responses: map[string]string{
		xdgGetKey: "brave-browser.desktop\n",
	}}
	p := newLinuxTestProvider(t, run, "/usr/bin/brave-browser", "/usr/bin/firefox")

	first := p.Discover(context.Background())
	second := p.Discover(context.Background())
	assert.Equal(t, first, second)
}
