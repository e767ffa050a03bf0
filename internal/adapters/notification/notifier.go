// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/daybook/internal/config"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if n.cfg.Sound {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

// NotifyEvent announces one of today's events.
func (n *Notifier) NotifyEvent(content string) error {
	return n.Notify("📅 Today", content)
}

// NotifyDueTasks announces how many tasks are still open today.
func (n *Notifier) NotifyDueTasks(count int) error {
	if count == 0 {
		return nil
	}
	word := "tasks"
	if count == 1 {
		word = "task"
	}
	return n.Notify("daybook", fmt.Sprintf("%d open %s today", count, word))
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
