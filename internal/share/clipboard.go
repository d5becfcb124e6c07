package share

import (
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultCopiedFor is how long the "copied" acknowledgement stays visible.
const DefaultCopiedFor = 2 * time.Second

// Clipboard copies text to the system clipboard and tracks the transient
// acknowledgement shown after a successful copy.
type Clipboard struct {
	copiedAt  time.Time
	write     func(string) error
	now       func() time.Time
	copiedFor time.Duration
	mu        sync.Mutex
}

// NewClipboard creates a clipboard whose acknowledgement clears after
// copiedFor. Zero uses DefaultCopiedFor.
func NewClipboard(copiedFor time.Duration) *Clipboard {
	if copiedFor <= 0 {
		copiedFor = DefaultCopiedFor
	}
	return &Clipboard{
		write:     clipboard.WriteAll,
		now:       time.Now,
		copiedFor: copiedFor,
	}
}

// Copy writes text to the clipboard. It is best-effort: a failure is logged
// and returned, and no acknowledgement is recorded.
func (c *Clipboard) Copy(text string) error {
	if err := c.write(text); err != nil {
		slog.Debug("Clipboard write failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.copiedAt = c.now()
	c.mu.Unlock()
	return nil
}

// Copied reports whether the acknowledgement is still showing.
func (c *Clipboard) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.copiedAt.IsZero() {
		return false
	}
	return c.now().Sub(c.copiedAt) < c.copiedFor
}

// CopiedFor returns the acknowledgement duration.
func (c *Clipboard) CopiedFor() time.Duration {
	return c.copiedFor
}
