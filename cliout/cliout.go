// Package cliout provides styled terminal output for webpick commands.
// It supports a human-readable default format and a machine-readable JSON
// format, with ANSI colors and Unicode symbols degraded to ASCII on
// terminals that cannot display them.
package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is machine-readable JSON.
	FormatJSON Format = "json"
)

// ANSI escape sequences.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"

	brightRed    = "\033[91m"
	brightGreen  = "\033[92m"
	brightYellow = "\033[93m"
	brightBlue   = "\033[94m"
)

// Unicode symbols with ASCII fallbacks.
const (
	symCheck   = "✓"
	symCross   = "✗"
	symWarning = "⚠"
	symInfo    = "ℹ"
	symDot     = "•"

	asciiCheck   = "[+]"
	asciiCross   = "[-]"
	asciiWarning = "[!]"
	asciiInfo    = "[i]"
	asciiDot     = "*"
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	noColor      = false

	supportsUnicode = detectUnicodeSupport()
)

// detectUnicodeSupport checks whether the console can display Unicode.
// Unix terminals generally can; on Windows only the modern hosts do.
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	if os.Getenv("WT_SESSION") != "" || os.Getenv("ConEmuPID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "vscode" || os.Getenv("TERM") != "" {
		return true
	}
	return os.Getenv("PSModulePath") != ""
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "", "default":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// IsJSON returns true when the JSON format is active.
func IsJSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat == FormatJSON
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func paint(color, text string) string {
	mu.RLock()
	off := noColor
	mu.RUnlock()
	if off {
		return text
	}
	return color + text + reset
}

func icon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// Header prints a bold header with a divider.
func Header(text string) {
	fmt.Printf("\n%s\n", paint(bold, text))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with a green check.
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(brightGreen, icon(symCheck, asciiCheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red cross.
func Error(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(brightRed, icon(symCross, asciiCross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func Warning(format string, args ...interface{}) {
	fmt.Printf("%s  %s\n", paint(brightYellow, icon(symWarning, asciiWarning)), fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func Info(format string, args ...interface{}) {
	fmt.Printf("%s  %s\n", paint(brightBlue, icon(symInfo, asciiInfo)), fmt.Sprintf(format, args...))
}

// Item prints an indented item.
func Item(format string, args ...interface{}) {
	fmt.Printf("   %s\n", fmt.Sprintf(format, args...))
}

// Bullet prints a bulleted list item.
func Bullet(format string, args ...interface{}) {
	fmt.Printf("  %s %s\n", icon(symDot, asciiDot), fmt.Sprintf(format, args...))
}

// Label prints an aligned label and value pair.
func Label(label, value string) {
	fmt.Printf("   %s %s\n", paint(dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Plain prints unstyled text.
func Plain(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Muted returns dimmed text.
func Muted(format string, args ...interface{}) string {
	return paint(dim, fmt.Sprintf(format, args...))
}

// Emphasize returns bold text.
func Emphasize(format string, args ...interface{}) string {
	return paint(bold, fmt.Sprintf(format, args...))
}

// Highlight returns bold cyan text.
func Highlight(format string, args ...interface{}) string {
	return paint(bold+cyan, fmt.Sprintf(format, args...))
}

// DefaultTag returns the marker appended to the default browser row.
func DefaultTag() string {
	return paint(green, " "+icon(symCheck, asciiCheck)+" default")
}

// Prompt prints an inline prompt without a trailing newline.
func Prompt(text string) {
	fmt.Printf("%s ", paint(yellow, text))
}

// Newline prints a blank line.
func Newline() {
	fmt.Println()
}
