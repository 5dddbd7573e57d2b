// Package setter switches the operating system's default HTTP/HTTPS handler
// to a chosen browser. Each platform gets an ordered chain of strategies;
// the chain stops at the first strategy that verifies success and otherwise
// falls through to a terminal manual-instructions strategy that always
// reports failure (while still being a useful outcome for the user).
package setter

import (
	"context"
	"log/slog"

	"github.com/webpick/webpick/catalog"
	"github.com/webpick/webpick/cmdutil"
	"github.com/webpick/webpick/osutil"
)

// Target identifies the browser to make default.
type Target struct {
	// Name is the display name, used for narration and table lookups.
	Name string
	// ID is the platform identifier: a bundle identifier on macOS, a
	// lowercase tag elsewhere.
	ID string
}

// Outcome is the result of one strategy attempt.
type Outcome struct {
	OK   bool
	Note string
}

// Strategy is one method of switching the default handler.
type Strategy struct {
	Name  string
	Apply func(ctx context.Context, t Target) Outcome
}

// Chain runs strategies in order and returns at the first success. When
// every strategy fails the last outcome is returned with OK false.
func Chain(ctx context.Context, t Target, strategies []Strategy, log *slog.Logger) Outcome {
	var last Outcome
	for _, s := range strategies {
		last = s.Apply(ctx, t)
		log.Debug("strategy attempted", "strategy", s.Name, "ok", last.OK, "note", last.Note)
		if last.OK {
			return last
		}
	}
	return last
}

// Setter attempts to make a browser the OS default.
type Setter interface {
	// Set returns true only when the change was verified. Progress and
	// manual instructions are narrated to the terminal as a side channel.
	Set(ctx context.Context, t Target) bool
}

// New returns the Setter for an OS family.
func New(family osutil.Family, run cmdutil.Runner, cat *catalog.Catalog) Setter {
	switch family {
	case osutil.FamilyWindows:
		return newWindowsSetter()
	case osutil.FamilyDarwin:
		return newDarwinSetter(run)
	case osutil.FamilyLinux:
		return newLinuxSetter(run, cat)
	default:
		return unsupportedSetter{}
	}
}

type unsupportedSetter struct{}

func (unsupportedSetter) Set(context.Context, Target) bool { return false }
