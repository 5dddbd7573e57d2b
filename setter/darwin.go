package setter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/logutil"
	"github.com/webpick/webpick/osutil"
	"github.com/webpick/webpick/registry"
)

// settleDelay gives Launch Services time to rebuild its registry after a
// direct database mutation before the change is re-verified.
const settleDelay = 2 * time.Second

// Settings destinations for the manual fallback. Ventura moved the default
// browser picker into the System Settings app; older releases use the
// legacy preference pane.
const (
	settingsPaneModern = "x-apple.systempreferences:com.apple.Desktop-Settings.extension"
	settingsPaneLegacy = "/System/Library/PreferencePanes/Appearance.prefPane"
	venturaMajor       = 13
)

// darwinSetter walks a four-method chain: duti assignment, direct handler
// database mutation, a Launch Services re-registration nudge, and finally
// opening System Settings with instructions.
type darwinSetter struct {
	run    cmdutil.Runner
	detect func(context.Context) string
	sleep  func(time.Duration)
	settle time.Duration
	major  func(context.Context) int
	log    *slog.Logger
}

func newDarwinSetter(run cmdutil.Runner) *darwinSetter {
	return &darwinSetter{
		run: run,
		detect: func(ctx context.Context) string {
			return registry.DarwinDefaultID(ctx, run)
		},
		sleep:  time.Sleep,
		settle: settleDelay,
		major: func(ctx context.Context) int {
			return osutil.MajorVersion(osutil.HostFacts(ctx).PlatformVersion)
		},
		log: logutil.NewLogger("setter.darwin"),
	}
}

// Set implements Setter.
func (d *darwinSetter) Set(ctx context.Context, t Target) bool {
	out := Chain(ctx, t, []Strategy{
		{Name: "duti", Apply: d.duti},
		{Name: "launchservices-write", Apply: d.writeHandlers},
		{Name: "reregister", Apply: d.reregister},
		{Name: "manual-instructions", Apply: d.manual},
	}, d.log)
	return out.OK
}

// duti assigns the handler through the external duti tool when installed,
// then re-queries the tool's handler listing as confirmation.
func (d *darwinSetter) duti(ctx context.Context, t Target) Outcome {
	if d.run.LookPath("duti") == "" {
		return Outcome{OK: false, Note: "duti not installed"}
	}

	d.run.Output(ctx, "duti", "-s", t.ID, "http", "all")
	d.run.Output(ctx, "duti", "-s", t.ID, "https", "all")
	d.run.Output(ctx, "duti", "-s", t.ID, "public.html", "all")

	listing := d.run.Output(ctx, "duti", "-x", "http")
	if strings.Contains(strings.ToLower(listing), strings.ToLower(t.ID)) {
		return Outcome{OK: true, Note: "duti confirmed " + t.ID}
	}
	return Outcome{OK: false, Note: "duti did not confirm the change"}
}

// writeHandlers appends http and https handler entries for the target into
// the Launch Services store, forces a registry rebuild across all scopes,
// waits for the change to propagate, and re-runs default detection.
func (d *darwinSetter) writeHandlers(ctx context.Context, t Target) Outcome {
	for _, scheme := range []string{"http", "https"} {
		entry := fmt.Sprintf("{LSHandlerURLScheme=%s;LSHandlerRoleAll=%q;}", scheme, strings.ToLower(t.ID))
		d.run.Output(ctx, "defaults", "write", registry.LSHandlerDomain, "LSHandlers", "-array-add", entry)
	}

	d.run.Output(ctx, registry.LSRegisterPath,
		"-kill", "-r", "-domain", "local", "-domain", "system", "-domain", "user")
	d.sleep(d.settle)

	if current := d.detect(ctx); strings.EqualFold(current, t.ID) {
		return Outcome{OK: true, Note: "handler database updated"}
	}
	return Outcome{OK: false, Note: "change did not take effect"}
}

// reregister unregisters and re-registers the application bundle with
// Launch Services. This only improves registration hygiene and never counts
// as success on its own.
func (d *darwinSetter) reregister(ctx context.Context, t Target) Outcome {
	query := fmt.Sprintf("kMDItemCFBundleIdentifier == '%s'", t.ID)
	out := d.run.Output(ctx, "mdfind", query)
	path, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	if path == "" {
		return Outcome{OK: false, Note: "bundle path not found"}
	}

	d.run.Output(ctx, registry.LSRegisterPath, "-u", path)
	d.run.Output(ctx, registry.LSRegisterPath, "-f", path)
	return Outcome{OK: false, Note: "re-registered " + path}
}

// manual opens System Settings on the right pane and prints instructions.
func (d *darwinSetter) manual(ctx context.Context, t Target) Outcome {
	pane := settingsPaneLegacy
	if d.major(ctx) >= venturaMajor {
		pane = settingsPaneModern
	}
	d.run.Output(ctx, "open", pane)

	cliout.Info("macOS needs you to confirm the change in System Settings.")
	cliout.Item("Set the default web browser to %s (%s)", cliout.Emphasize("%s", t.Name), t.ID)
	return Outcome{OK: false, Note: "manual confirmation required"}
}
