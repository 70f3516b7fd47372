package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Console writes one line per notification.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
}

var _ driven.Notifier = (*Console)(nil)

// NewConsole creates a console notifier. A nil theme uses DefaultTheme.
func NewConsole(w io.Writer, theme *Theme) *Console {
	return &Console{w: w, styles: newStyles(w, theme)}
}

// Notify prints the notification with a level marker.
func (c *Console) Notify(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var line string
	switch n.Level {
	case domain.NotificationSuccess:
		line = c.styles.success.Render("✓ " + n.Message)
	case domain.NotificationError:
		line = c.styles.err.Render("✗ " + n.Message)
		if n.Err != nil {
			line += " " + c.styles.muted.Render("("+n.Err.Error()+")")
		}
	default:
		line = c.styles.info.Render("• " + n.Message)
	}
	fmt.Fprintln(c.w, line)
}
