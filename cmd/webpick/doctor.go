package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cliout"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/fileutil"
	"github.com/webpick/webpick/osutil"
	"github.com/webpick/webpick/registry"
)

// toolProbe records whether one helper tool was found on the host.
type toolProbe struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// doctorReport is the machine-readable shape of `webpick doctor`.
type doctorReport struct {
	Host    osutil.Facts `json:"host"`
	Tools   []toolProbe  `json:"tools"`
	Running []string     `json:"running"`
}

func newDoctorCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the host environment",
		Long: `Report host facts, probe the introspection tools webpick relies on for
this platform, and list currently running browsers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			report := doctorReport{
				Host:    osutil.HostFacts(ctx),
				Tools:   probeTools((*a).family, (*a).run),
				Running: osutil.RunningMatches(ctx, browserTokens((*a).cat)),
			}

			if cliout.IsJSON() {
				return cliout.PrintJSON(report)
			}

			cliout.Header("Host")
			cliout.Label("Family", string(report.Host.Family))
			cliout.Label("Platform", report.Host.Platform)
			cliout.Label("Version", report.Host.PlatformVersion)
			cliout.Label("Kernel", report.Host.Kernel)
			cliout.Label("Arch", report.Host.Arch)

			cliout.Header("Tools")
			for _, tool := range report.Tools {
				if tool.Found {
					cliout.Success("%s (%s)", tool.Name, tool.Path)
				} else {
					cliout.Warning("%s not found", tool.Name)
				}
			}

			cliout.Header("Running browsers")
			if len(report.Running) == 0 {
				cliout.Item("none")
			}
			for _, name := range report.Running {
				cliout.Bullet("%s", name)
			}
			return nil
		},
	}
}

// probeTools checks the helper tools the current platform's discovery and
// setter code shells out to. lsregister lives at a fixed framework path and
// is probed as a file rather than through PATH.
func probeTools(family osutil.Family, run cmdutil.Runner) []toolProbe {
	var names []string
	switch family {
	case osutil.FamilyWindows:
		names = []string{"reg"}
	case osutil.FamilyDarwin:
		names = []string{"mdfind", "mdls", "plutil", "defaults", "duti", "open"}
	case osutil.FamilyLinux:
		names = []string{"xdg-settings"}
	}

	probes := make([]toolProbe, 0, len(names)+1)
	for _, name := range names {
		path := run.LookPath(name)
		probes = append(probes, toolProbe{Name: name, Path: path, Found: path != ""})
	}
	if family == osutil.FamilyDarwin {
		found := fileutil.Exists(registry.LSRegisterPath)
		probe := toolProbe{Name: "lsregister", Found: found}
		if found {
			probe.Path = registry.LSRegisterPath
		}
		probes = append(probes, probe)
	}
	return probes
}

// browserTokens flattens the catalog's display names into lowercase process
// name fragments.
func browserTokens(cat *catalog.Catalog) []string {
	seen := map[string]bool{}
	var tokens []string
	add := func(name string) {
		token := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "(x86)", "")))
		token = strings.ReplaceAll(token, " ", "")
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	for _, install := range cat.Windows.Installs {
		add(install.Name)
	}
	for _, fb := range cat.Darwin.Fallback {
		add(fb.Name)
	}
	for _, b := range cat.Linux.Browsers {
		add(b.Name)
	}
	return tokens
}
