// Package browser launches URLs in the system default browser, used by the
// open command to verify a default-browser switch actually took effect.
// The launch itself is delegated to github.com/pkg/browser.
package browser

import (
	"fmt"
	"strings"

	pkgbrowser "github.com/pkg/browser"
)

// ValidateURL rejects anything that is not plain http or https. file:// and
// javascript: URLs must never reach the launch command.
func ValidateURL(url string) error {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return nil
	}
	return fmt.Errorf("invalid URL scheme: URL must start with http:// or https://")
}

// Open launches url in the OS default browser.
func Open(url string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	return pkgbrowser.OpenURL(url)
}
