package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/notify"
	"github.com/webpick/webpick/osutil"
	"github.com/webpick/webpick/registry"
	"github.com/webpick/webpick/setter"
	"github.com/webpick/webpick/testutil"
)

// stubProvider returns a fixed discovery snapshot.
type stubProvider struct {
	browsers []registry.Browser
}

func (s stubProvider) Discover(context.Context) []registry.Browser {
	return s.browsers
}

// stubSetter records the target and returns a canned result.
type stubSetter struct {
	ok     bool
	target setter.Target
	calls  int
}

func (s *stubSetter) Set(_ context.Context, t setter.Target) bool {
	s.calls++
	s.target = t
	return s.ok
}

func fixtureBrowsers() []registry.Browser {
	return []registry.Browser{
		{Name: "Chrome", Path: "/usr/bin/google-chrome", ID: "chrome"},
		{Name: "Firefox", Path: "/usr/bin/firefox", ID: "firefox", Default: true},
	}
}

func newTestApp(set *stubSetter, input string, interactive bool) *app {
	return &app{
		family:      osutil.FamilyLinux,
		run:         &cmdutil.StubRunner{},
		cat:         &catalog.Catalog{},
		provider:    stubProvider{browsers: fixtureBrowsers()},
		setter:      set,
		notifier:    notify.Discard{},
		stdin:       strings.NewReader(input),
		interactive: func() bool { return interactive },
	}
}

func TestPickNonInteractiveListsOnly(t *testing.T) {
	set := &stubSetter{}
	a := newTestApp(set, "", false)

	out := testutil.CaptureOutput(t, func() {
		require.NoError(t, a.pick(context.Background()))
	})

	assert.Contains(t, out, "Chrome")
	assert.Contains(t, out, "Firefox")
	assert.Contains(t, out, "default")
	assert.Zero(t, set.calls, "no selection should be attempted without a terminal")
}

func TestPickBlankLineCancels(t *testing.T) {
	set := &stubSetter{}
	a := newTestApp(set, "\n", true)

	testutil.CaptureOutput(t, func() {
		require.NoError(t, a.pick(context.Background()))
	})

	assert.Zero(t, set.calls)
}

func TestPickSelectionSwitches(t *testing.T) {
	set := &stubSetter{ok: true}
	a := newTestApp(set, "1\n", true)

	out := testutil.CaptureOutput(t, func() {
		require.NoError(t, a.pick(context.Background()))
	})

	assert.Equal(t, 1, set.calls)
	assert.Equal(t, "Chrome", set.target.Name)
	assert.Equal(t, "chrome", set.target.ID)
	assert.Contains(t, out, "Chrome is now the default browser")
}

func TestPickOutOfRangeSelection(t *testing.T) {
	set := &stubSetter{}
	a := newTestApp(set, "7\n", true)

	out := testutil.CaptureOutput(t, func() {
		require.NoError(t, a.pick(context.Background()))
	})

	assert.Zero(t, set.calls)
	assert.Contains(t, out, "invalid selection")
}

func TestSwitchByArg(t *testing.T) {
	set := &stubSetter{ok: true}
	a := newTestApp(set, "", false)

	testutil.CaptureOutput(t, func() {
		require.NoError(t, a.switchByArg(context.Background(), "1"))
	})

	assert.Equal(t, "Chrome", set.target.Name)
}

func TestSwitchByArgRejectsNonNumber(t *testing.T) {
	set := &stubSetter{}
	a := newTestApp(set, "", false)

	err := a.switchByArg(context.Background(), "chrome")
	assert.Error(t, err)
	assert.Zero(t, set.calls)
}

func TestSwitchToAlreadyDefault(t *testing.T) {
	set := &stubSetter{}
	a := newTestApp(set, "", false)

	var ok bool
	out := testutil.CaptureOutput(t, func() {
		ok = a.switchTo(context.Background(), fixtureBrowsers()[1])
	})

	assert.True(t, ok)
	assert.Zero(t, set.calls, "switching to the current default should be a no-op")
	assert.Contains(t, out, "already the default")
}

func TestSwitchToFailureWarns(t *testing.T) {
	set := &stubSetter{ok: false}
	a := newTestApp(set, "", false)

	var ok bool
	out := testutil.CaptureOutput(t, func() {
		ok = a.switchTo(context.Background(), fixtureBrowsers()[0])
	})

	assert.False(t, ok)
	assert.Equal(t, 1, set.calls)
	assert.Contains(t, out, "could not switch automatically")
}

func TestResolveBrowser(t *testing.T) {
	browsers := fixtureBrowsers()

	tests := []struct {
		name     string
		arg      string
		wantName string
		wantOK   bool
	}{
		{name: "by number", arg: "2", wantName: "Firefox", wantOK: true},
		{name: "by name", arg: "chrome", wantName: "Chrome", wantOK: true},
		{name: "number out of range", arg: "9", wantOK: false},
		{name: "zero", arg: "0", wantOK: false},
		{name: "unknown name", arg: "lynx", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := resolveBrowser(browsers, tt.arg)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, b.Name)
			}
		})
	}
}

func TestProbeToolsLinux(t *testing.T) {
	run := &cmdutil.StubRunner{Paths: map[string]string{"xdg-settings": "/usr/bin/xdg-settings"}}

	probes := probeTools(osutil.FamilyLinux, run)

	require.Len(t, probes, 1)
	assert.Equal(t, "xdg-settings", probes[0].Name)
	assert.True(t, probes[0].Found)
	assert.Equal(t, "/usr/bin/xdg-settings", probes[0].Path)
}

func TestProbeToolsDarwinIncludesLSRegister(t *testing.T) {
	probes := probeTools(osutil.FamilyDarwin, &cmdutil.StubRunner{})

	var names []string
	for _, p := range probes {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "mdfind")
	assert.Contains(t, names, "lsregister")
}

func TestBrowserTokens(t *testing.T) {
	cat := &catalog.Catalog{
		Windows: catalog.WindowsCatalog{Installs: []catalog.WindowsInstall{
			{Name: "Firefox"},
			{Name: "Firefox (x86)"},
		}},
		Linux: catalog.LinuxCatalog{Browsers: []catalog.LinuxBrowser{
			{Name: "Firefox"},
			{Name: "Brave"},
		}},
	}

	tokens := browserTokens(cat)

	assert.Equal(t, []string{"firefox", "brave"}, tokens, "names dedupe case-insensitively with (x86) stripped")
}
