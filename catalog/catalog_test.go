package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParsesEmbeddedDocument(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.Windows.Installs)
	assert.NotEmpty(t, cat.Windows.ProgIDs)
	assert.NotEmpty(t, cat.Darwin.Known)
	assert.NotEmpty(t, cat.Darwin.Fallback)
	assert.NotEmpty(t, cat.Linux.Browsers)
}

func TestDefaultNameForProgID(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Edge", cat.Windows.DefaultNameForProgID("MSEdgeHTM.Url"))
	assert.Equal(t, "Chrome", cat.Windows.DefaultNameForProgID("ChromeHTML"))
	assert.Equal(t, "Firefox", cat.Windows.DefaultNameForProgID("FirefoxURL-abc123"))
	assert.Empty(t, cat.Windows.DefaultNameForProgID("SomeOtherProgId"))
}

func TestDarwinWhitelist(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.True(t, cat.Darwin.IsKnown("com.google.Chrome"))
	assert.True(t, cat.Darwin.IsKnown("COM.GOOGLE.CHROME"))
	assert.False(t, cat.Darwin.IsKnown("com.example.notabrowser"))
}

func TestDarwinExclusions(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.True(t, cat.Darwin.IsExcluded("com.apple.mail", "Mail.app"))
	assert.True(t, cat.Darwin.IsExcluded("com.jetbrains.goland", "GoLand.app"))
	assert.True(t, cat.Darwin.IsExcluded("com.example.thing", "Slack Helper.app"))
	assert.False(t, cat.Darwin.IsExcluded("com.example.surfapp", "Surf.app"))
}

func TestDarwinKeywords(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.True(t, cat.Darwin.HasKeyword("Some Browser.app"))
	assert.True(t, cat.Darwin.HasKeyword("WebExplorer.app"))
	assert.False(t, cat.Darwin.HasKeyword("Calculator.app"))
}

func TestDesktopFor(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "firefox.desktop", cat.Linux.DesktopFor("firefox"))
	assert.Equal(t, "firefox.desktop", cat.Linux.DesktopFor("FIREFOX"))
	assert.Equal(t, "google-chrome.desktop", cat.Linux.DesktopFor("Chrome"))
	assert.Empty(t, cat.Linux.DesktopFor("netscape"))
}

func TestLoadOverrideFile(t *testing.T) {
	override := `
windows:
  installs:
    - name: Netscape
      path: 'C:\Program Files\Netscape\netscape.exe'
  progids:
    - substring: NetscapeURL
      name: Netscape
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Windows.Installs, 1)
	assert.Equal(t, "Netscape", cat.Windows.Installs[0].Name)
	assert.Empty(t, cat.Linux.Browsers, "override replaces the catalog wholesale")
}

func TestLoadMissingOverride(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv(EnvCatalog, "")

	cat, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Linux.Browsers)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	override := "linux:\n  browsers:\n    - name: Lynx\n      desktop: lynx.desktop\n      paths: [/usr/bin/lynx]\n"
	path := filepath.Join(t.TempDir(), "env-catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))
	t.Setenv(EnvCatalog, path)

	cat, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "lynx.desktop", cat.Linux.DesktopFor("Lynx"))
}
