// Package notify sends desktop notifications through the cross-platform
// beeep library. Notifications are best-effort: a host without a
// notification daemon simply misses them.
package notify

import (
	"github.com/gen2brain/beeep"
)

// Notification is one message for the OS notification system.
type Notification struct {
	Title   string
	Message string
}

// Notifier delivers notifications.
type Notifier interface {
	Send(n Notification) error
}

// Beeep is the production Notifier.
type Beeep struct{}

// Send implements Notifier.
func (Beeep) Send(n Notification) error {
	return beeep.Notify(n.Title, n.Message, "")
}

// Discard is a Notifier that drops everything, for tests and quiet mode.
type Discard struct{}

// Send implements Notifier.
func (Discard) Send(Notification) error { return nil }
