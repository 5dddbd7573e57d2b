// Package osutil classifies the host operating system and exposes the host
// facts the setter and doctor command need. Host introspection uses
// github.com/shirou/gopsutil for consistent behavior across platforms.
package osutil

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Family is the three-way OS classification used for platform dispatch.
type Family string

const (
	// FamilyWindows covers Windows hosts.
	FamilyWindows Family = "windows"
	// FamilyDarwin covers macOS hosts.
	FamilyDarwin Family = "darwin"
	// FamilyLinux covers Linux hosts.
	FamilyLinux Family = "linux"
	// FamilyUnknown covers everything else; discovery yields no browsers.
	FamilyUnknown Family = "unknown"
)

// DetectFamily classifies the current OS.
func DetectFamily() Family {
	return Classify(runtime.GOOS)
}

// Classify maps a GOOS-style identifier to a Family.
func Classify(goos string) Family {
	switch goos {
	case "windows":
		return FamilyWindows
	case "darwin":
		return FamilyDarwin
	case "linux":
		return FamilyLinux
	default:
		return FamilyUnknown
	}
}

// Facts describes the host for diagnostics and version-gated behavior.
type Facts struct {
	Family          Family `json:"family"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	Kernel          string `json:"kernel"`
	Arch            string `json:"arch"`
}

// HostFacts collects host facts. Fields that cannot be gathered are left
// empty rather than failing the caller.
func HostFacts(ctx context.Context) Facts {
	facts := Facts{
		Family: DetectFamily(),
		Arch:   runtime.GOARCH,
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return facts
	}
	facts.Platform = info.Platform
	facts.PlatformVersion = info.PlatformVersion
	facts.Kernel = info.KernelVersion
	return facts
}

// MajorVersion parses the leading integer of a dotted version string.
// Returns 0 for unparseable input.
func MajorVersion(version string) int {
	version = strings.TrimSpace(version)
	if i := strings.IndexByte(version, '.'); i >= 0 {
		version = version[:i]
	}
	major, err := strconv.Atoi(version)
	if err != nil {
		return 0
	}
	return major
}
