package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/fileutil"
	"github.com/webpick/webpick/logutil"
)

// Launch Services locations. lsregister is not on PATH.
const (
	LSRegisterPath = "/System/Library/Frameworks/CoreServices.framework" +
		"/Frameworks/LaunchServices.framework/Support/lsregister"
	LSHandlerDomain = "com.apple.launchservices/com.apple.launchservices.secure"
)

// darwinProvider enumerates application bundles through Spotlight metadata
// and filters them down to actual browsers with a layered eligibility check:
// whitelist, blacklist, name heuristic, Info.plist URL-scheme declaration,
// and Launch Services registration.
type darwinProvider struct {
	run      cmdutil.Runner
	cat      *catalog.Catalog
	exists   func(string) bool
	readFile func(string) ([]byte, error)
	tempFile func(string) (string, func(), error)
	home     string
	log      *slog.Logger
}

func newDarwinProvider(run cmdutil.Runner, cat *catalog.Catalog) *darwinProvider {
	home, _ := os.UserHomeDir()
	return &darwinProvider{
		run:      run,
		cat:      cat,
		exists:   fileutil.Exists,
		readFile: os.ReadFile,
		tempFile: fileutil.TempFile,
		home:     home,
		log:      logutil.NewLogger("registry.darwin"),
	}
}

// Discover implements Provider.
func (d *darwinProvider) Discover(ctx context.Context) (browsers []Browser) {
	// Enumeration walks the whole metadata index; if anything goes wrong
	// partial results are discarded in favor of the fixed fallback list.
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("enumeration failed, using fallback list", "panic", r)
			browsers = d.fallback(ctx)
		}
	}()

	bundles := d.enumerateBundles(ctx)
	if len(bundles) == 0 {
		d.log.Debug("metadata enumeration unavailable, using fallback list")
		return d.fallback(ctx)
	}

	seen := make(map[string]bool)
	for _, bundle := range bundles {
		id := d.bundleID(ctx, bundle)
		if id == "" {
			continue
		}
		if !d.eligible(ctx, bundle, id) {
			continue
		}
		key := strings.ToLower(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		browsers = append(browsers, Browser{
			Name: strings.TrimSuffix(filepath.Base(bundle), ".app"),
			Path: bundle,
			ID:   id,
		})
	}

	d.markDefaultBrowser(ctx, browsers)
	sortByName(browsers)
	d.log.Debug("discovery complete", "count", len(browsers))
	return browsers
}

// enumerateBundles lists application bundles system-wide. Spotlight is used
// instead of a hardcoded directory list because browsers may be installed
// anywhere.
func (d *darwinProvider) enumerateBundles(ctx context.Context) []string {
	out := d.run.Output(ctx, "mdfind", "kMDItemContentType == 'com.apple.application-bundle'")
	var bundles []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bundles = append(bundles, line)
		}
	}
	return bundles
}

// bundleID reads a bundle's identifier from the metadata store. Returns ""
// for bundles without one.
func (d *darwinProvider) bundleID(ctx context.Context, bundle string) string {
	out := d.run.Output(ctx, "mdls", "-name", "kMDItemCFBundleIdentifier", "-raw", bundle)
	id := strings.TrimSpace(out)
	if id == "(null)" {
		return ""
	}
	return id
}

// eligible applies the layered filter, short-circuiting on the first check
// that decides.
func (d *darwinProvider) eligible(ctx context.Context, bundle, id string) bool {
	fileName := filepath.Base(bundle)

	if d.cat.Darwin.IsKnown(id) {
		return true
	}
	if d.cat.Darwin.IsExcluded(id, fileName) {
		return false
	}
	if !d.cat.Darwin.HasKeyword(fileName) {
		return false
	}
	if !d.declaresHTTPScheme(ctx, bundle) {
		return false
	}
	return d.registeredHandler(ctx, id)
}

// infoPlist models the URL-type declarations of a bundle manifest.
type infoPlist struct {
	CFBundleURLTypes []struct {
		CFBundleURLSchemes []string `json:"CFBundleURLSchemes"`
	} `json:"CFBundleURLTypes"`
}

// declaresHTTPScheme checks the bundle manifest for an http or https
// URL-type declaration. Either scheme suffices. A structured parse through
// plutil is attempted first; on failure a raw substring scan of the manifest
// bytes is used.
func (d *darwinProvider) declaresHTTPScheme(ctx context.Context, bundle string) bool {
	manifest := filepath.Join(bundle, "Contents", "Info.plist")

	out := d.run.Output(ctx, "plutil", "-convert", "json", "-o", "-", manifest)
	if out != "" {
		var info infoPlist
		if err := json.Unmarshal([]byte(out), &info); err == nil {
			for _, urlType := range info.CFBundleURLTypes {
				for _, scheme := range urlType.CFBundleURLSchemes {
					if scheme == "http" || scheme == "https" {
						return true
					}
				}
			}
			return false
		}
	}

	raw, err := d.readFile(manifest)
	if err != nil {
		return false
	}
	return strings.Contains(string(raw), "http")
}

// registeredHandler verifies that Launch Services actually knows the
// identifier as an HTTP handler. Three queries are tried; any single
// confirmation is enough. When none of the queries produce data the bundle
// is rejected, which makes the catalog whitelist the safety net on hosts
// where introspection is unavailable.
func (d *darwinProvider) registeredHandler(ctx context.Context, id string) bool {
	lowerID := strings.ToLower(id)

	if dump := d.run.Output(ctx, LSRegisterPath, "-dump"); dump != "" {
		if strings.Contains(strings.ToLower(dump), lowerID) {
			return true
		}
	}

	if out := d.run.Output(ctx, "duti", "-x", "http"); out != "" {
		if strings.Contains(strings.ToLower(out), lowerID) {
			return true
		}
	}

	if raw := d.run.Output(ctx, "defaults", "read", LSHandlerDomain, "LSHandlers"); raw != "" {
		for _, block := range splitHandlerBlocks(raw) {
			if blockHasHTTPScheme(block, true) && strings.Contains(strings.ToLower(block), lowerID) {
				return true
			}
		}
	}

	return false
}

// fallback probes a fixed set of well-known application paths.
func (d *darwinProvider) fallback(ctx context.Context) []Browser {
	var browsers []Browser
	for _, app := range d.cat.Darwin.Fallback {
		var path string
		for _, candidate := range app.Paths {
			candidate = d.expandHome(candidate)
			if d.exists(candidate) {
				path = candidate
				break
			}
		}
		if path == "" {
			continue
		}
		browsers = append(browsers, Browser{Name: app.Name, Path: path, ID: app.ID})
	}

	d.markDefaultBrowser(ctx, browsers)
	sortByName(browsers)
	return browsers
}

func (d *darwinProvider) expandHome(path string) string {
	if strings.HasPrefix(path, "~/") && d.home != "" {
		return filepath.Join(d.home, path[2:])
	}
	return path
}

// markDefaultBrowser resolves the current http handler and flags the
// matching browser.
func (d *darwinProvider) markDefaultBrowser(ctx context.Context, browsers []Browser) {
	id := d.defaultID(ctx)
	if id == "" {
		return
	}
	markDefault(browsers, func(b Browser) bool {
		return strings.EqualFold(b.ID, id)
	})
}

// lsHandlerStore models the JSON conversion of the Launch Services handler
// database.
type lsHandlerStore struct {
	LSHandlers []struct {
		LSHandlerURLScheme string `json:"LSHandlerURLScheme"`
		LSHandlerRoleAll   string `json:"LSHandlerRoleAll"`
	} `json:"LSHandlers"`
}

// defaultID locates the identifier registered as the role-all handler for
// the http scheme. Three tiers, first success wins: a structured export of
// the handler database, the duti query tool, and a raw textual scan of the
// database.
func (d *darwinProvider) defaultID(ctx context.Context) string {
	if id := d.defaultFromExport(ctx); id != "" {
		return id
	}
	if id := d.defaultFromDuti(ctx); id != "" {
		return id
	}
	return d.defaultFromRawStore(ctx)
}

// defaultFromExport dumps the handler database to a temporary file, converts
// it to JSON, and scans the structured handler list. The temporary file is
// removed on every exit path.
func (d *darwinProvider) defaultFromExport(ctx context.Context) string {
	path, cleanup, err := d.tempFile("webpick-lshandlers-*.plist")
	if err != nil {
		return ""
	}
	defer cleanup()

	d.run.Output(ctx, "defaults", "export", LSHandlerDomain, path)
	out := d.run.Output(ctx, "plutil", "-convert", "json", "-o", "-", path)
	if out == "" {
		return ""
	}

	var store lsHandlerStore
	if err := json.Unmarshal([]byte(out), &store); err != nil {
		d.log.Debug("handler export parse failed", "error", err)
		return ""
	}
	for _, handler := range store.LSHandlers {
		if handler.LSHandlerURLScheme == "http" && handler.LSHandlerRoleAll != "" {
			return handler.LSHandlerRoleAll
		}
	}
	return ""
}

// defaultFromDuti parses the "Bundle ID:" line of the duti current-handler
// listing.
func (d *darwinProvider) defaultFromDuti(ctx context.Context) string {
	out := d.run.Output(ctx, "duti", "-x", "http")
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Bundle ID:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// defaultFromRawStore scans the textual form of the handler database for an
// http-scheme block and extracts its role-all assignment.
func (d *darwinProvider) defaultFromRawStore(ctx context.Context) string {
	raw := d.run.Output(ctx, "defaults", "read", LSHandlerDomain, "LSHandlers")
	for _, block := range splitHandlerBlocks(raw) {
		if !blockHasHTTPScheme(block, false) {
			continue
		}
		if id := blockRoleAll(block); id != "" {
			return id
		}
	}
	return ""
}

// splitHandlerBlocks cuts the defaults-read text into per-handler "{ ... }"
// blocks. Nested one-line dictionaries stay inside their parent block.
func splitHandlerBlocks(raw string) []string {
	var blocks []string
	var current []string
	depth := 0
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		opens := strings.Count(trimmed, "{")
		closes := strings.Count(trimmed, "}")

		if depth > 0 {
			current = append(current, line)
		}
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
		if depth == 0 && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	return blocks
}

// blockHasHTTPScheme reports whether a handler block declares the http URL
// scheme. When allowHTTPS is true the https scheme also qualifies.
func blockHasHTTPScheme(block string, allowHTTPS bool) bool {
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "LSHandlerURLScheme") {
			continue
		}
		value := handlerValue(trimmed)
		if value == "http" || (allowHTTPS && value == "https") {
			return true
		}
	}
	return false
}

// blockRoleAll extracts the role-all identifier from a handler block,
// skipping placeholder assignments.
func blockRoleAll(block string) string {
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "LSHandlerRoleAll") {
			continue
		}
		value := handlerValue(trimmed)
		if value != "" && value != "-" {
			return value
		}
	}
	return ""
}

// handlerValue extracts the value after "=" in a defaults-read line,
// stripping quotes and the trailing semicolon.
func handlerValue(line string) string {
	_, after, ok := strings.Cut(line, "=")
	if !ok {
		return ""
	}
	return strings.Trim(strings.TrimSpace(after), `";`)
}

// DarwinDefaultID resolves the bundle identifier currently registered as the
// http handler. It is shared with the default setter, which re-runs
// detection to verify its own changes took effect.
func DarwinDefaultID(ctx context.Context, run cmdutil.Runner) string {
	d := &darwinProvider{
		run:      run,
		tempFile: fileutil.TempFile,
		log:      logutil.NewLogger("registry.darwin"),
	}
	return d.defaultID(ctx)
}
