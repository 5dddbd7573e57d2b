package setter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/webpick/webpick/cmdutil"
)

func TestLinuxSetResolvesDesktopEntry(t *testing.T) {
	run := &cmdutil.StubRunner{}
	s := newLinuxSetter(run, testCatalog(t))

	ok := s.Set(context.Background(), Target{Name: "FiReFoX", ID: "firefox"})
	assert.True(t, ok)
	assert.True(t, run.Called("xdg-settings set default-web-browser firefox.desktop"),
		"desktop file must resolve to exactly firefox.desktop")
}

func TestLinuxSetUnknownBrowserSkipsHelper(t *testing.T) {
	run := &cmdutil.StubRunner{}
	s := newLinuxSetter(run, testCatalog(t))

	ok := s.Set(context.Background(), Target{Name: "netscape", ID: "netscape"})
	assert.False(t, ok)
	assert.Empty(t, run.Calls(), "the settings helper must not be invoked")
}

func TestLinuxSetSilentOutputIsSuccess(t *testing.T) {
	// The helper prints nothing on success; a swallowed failure also
	// produces "". This heuristic is deliberate.
	run := &cmdutil.StubRunner{}
	s := newLinuxSetter(run, testCatalog(t))

	assert.True(t, s.Set(context.Background(), Target{Name: "Chrome", ID: "chrome"}))
}

func TestLinuxSetErrorOutputIsFailure(t *testing.T) {
	run := &cmdutil.StubRunner{Responses: map[string]string{
		"xdg-settings set default-web-browser google-chrome.desktop": "xdg-settings: error: unknown desktop environment\n",
	}}
	s := newLinuxSetter(run, testCatalog(t))

	assert.False(t, s.Set(context.Background(), Target{Name: "Chrome", ID: "chrome"}))
}
