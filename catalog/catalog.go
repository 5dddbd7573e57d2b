// Package catalog holds the product-knowledge tables that drive browser
// discovery: known install locations, Windows ProgId mappings, Linux desktop
// entries, and the macOS bundle-identifier whitelist and blacklist.
//
// Browser vendors rename bundle identifiers and install paths over time, so
// the tables are shipped as data rather than code: an embedded YAML document
// provides the defaults and can be replaced wholesale with the --catalog
// flag or the WEBPICK_CATALOG environment variable.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvCatalog names an override catalog file.
const EnvCatalog = "WEBPICK_CATALOG"

//go:embed data/catalog.yaml
var embedded []byte

// Catalog is the full set of platform tables.
type Catalog struct {
	Windows WindowsCatalog `yaml:"windows"`
	Darwin  DarwinCatalog  `yaml:"darwin"`
	Linux   LinuxCatalog   `yaml:"linux"`
}

// WindowsInstall maps a display name to its single known install path.
// Names may carry an "(x86)" suffix for 32-bit installs; discovery strips
// the suffix before presenting the entry.
type WindowsInstall struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ProgIDRule maps a substring of a registry ProgId value to a display name.
type ProgIDRule struct {
	Substring string `yaml:"substring"`
	Name      string `yaml:"name"`
}

// WindowsCatalog holds the Windows tables.
type WindowsCatalog struct {
	Installs []WindowsInstall `yaml:"installs"`
	ProgIDs  []ProgIDRule     `yaml:"progids"`
}

// DefaultNameForProgID resolves a captured UserChoice ProgId value to a
// display name, or "" when no known substring matches.
func (w WindowsCatalog) DefaultNameForProgID(value string) string {
	for _, rule := range w.ProgIDs {
		if strings.Contains(value, rule.Substring) {
			return rule.Name
		}
	}
	return ""
}

// FallbackApp is a well-known macOS application checked by path when bundle
// enumeration is unavailable.
type FallbackApp struct {
	Name  string   `yaml:"name"`
	ID    string   `yaml:"id"`
	Paths []string `yaml:"paths"`
}

// DarwinCatalog holds the macOS tables.
type DarwinCatalog struct {
	// Known lists bundle identifiers that are always accepted.
	Known []string `yaml:"known"`
	// ExcludedPrefixes rejects bundle identifiers by prefix.
	ExcludedPrefixes []string `yaml:"excludedPrefixes"`
	// ExcludedNames rejects bundles whose file name contains a substring.
	ExcludedNames []string `yaml:"excludedNames"`
	// Keywords are browser-suggestive substrings required of bundles that
	// are neither known nor excluded.
	Keywords []string `yaml:"keywords"`
	// Fallback is probed by path when metadata enumeration fails.
	Fallback []FallbackApp `yaml:"fallback"`
}

// IsKnown reports whether id is on the always-accept whitelist.
func (d DarwinCatalog) IsKnown(id string) bool {
	for _, known := range d.Known {
		if strings.EqualFold(known, id) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a bundle is a known non-browser, either by
// identifier prefix or by file-name substring.
func (d DarwinCatalog) IsExcluded(id, fileName string) bool {
	lowerID := strings.ToLower(id)
	for _, prefix := range d.ExcludedPrefixes {
		if strings.HasPrefix(lowerID, strings.ToLower(prefix)) {
			return true
		}
	}
	lowerName := strings.ToLower(fileName)
	for _, sub := range d.ExcludedNames {
		if strings.Contains(lowerName, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// HasKeyword reports whether a bundle file name contains a
// browser-suggestive keyword.
func (d DarwinCatalog) HasKeyword(fileName string) bool {
	lower := strings.ToLower(fileName)
	for _, keyword := range d.Keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// LinuxBrowser describes one browser's candidate paths and desktop entry.
type LinuxBrowser struct {
	Name    string   `yaml:"name"`
	Paths   []string `yaml:"paths"`
	Desktop string   `yaml:"desktop"`
}

// LinuxCatalog holds the Linux tables.
type LinuxCatalog struct {
	Browsers []LinuxBrowser `yaml:"browsers"`
}

// DesktopFor resolves a display name (case-insensitive) to its desktop-entry
// file name, or "" for an unrecognized browser.
func (l LinuxCatalog) DesktopFor(name string) string {
	for _, b := range l.Browsers {
		if strings.EqualFold(b.Name, name) {
			return b.Desktop
		}
	}
	return ""
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog. The embedded document is part of the
// binary, so a parse failure is a build defect and reported as an error only
// once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// Load returns the catalog from path when non-empty, from the file named by
// WEBPICK_CATALOG when set, and otherwise the embedded defaults. An override
// file replaces the catalog wholesale.
func Load(path string) (*Catalog, error) {
	if path == "" {
		path = os.Getenv(EnvCatalog)
	}
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

func parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &cat, nil
}
