package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier delivers fire-and-forget user notifications. Implementations
// must never fail the caller: delivery problems are logged and swallowed.
type Notifier interface {
	Notify(title, body string)
}

// DesktopNotifier sends notifications through the OS notification center.
type DesktopNotifier struct {
	logger *slog.Logger
}

// NewDesktopNotifier creates a new DesktopNotifier. The app name is what the
// notification center attributes the toasts to.
func NewDesktopNotifier(logger *slog.Logger, appName string) *DesktopNotifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &DesktopNotifier{logger: logger}
}

// Notify shows a desktop notification with the given title and body.
func (n *DesktopNotifier) Notify(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		n.logger.Warn("DesktopNotifier: failed to send notification", "title", title, "error", err)
	}
}
