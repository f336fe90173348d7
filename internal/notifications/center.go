package notifications

import (
	"sync"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
	"github.com/ducminhle1904/nextrade-dashboard/internal/orders"
)

// DefaultLimit is how many toasts stay stacked on screen.
const DefaultLimit = 5

type CenterParams struct {
	// How long a toast stays visible. Defaults to 4s.
	TTL time.Duration
	// Defaults to DefaultLimit.
	Limit int
	// Optional. Every pushed toast is also sent here.
	Forward Notifier
	Logger  *logger.Logger
}

// Center holds the toasts currently on screen. Old toasts expire after TTL
// and the oldest is dropped once Limit is reached.
type Center struct {
	p   CenterParams
	log *logger.Logger
	now func() time.Time

	mu    sync.Mutex
	items []orders.Notification
}

func NewCenter(p CenterParams) *Center {
	if p.TTL <= 0 {
		p.TTL = 4 * time.Second
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Logger == nil {
		p.Logger = logger.Discard()
	}
	return &Center{p: p, log: p.Logger, now: time.Now}
}

// Push shows n. A failed forward is logged and otherwise ignored.
func (c *Center) Push(n orders.Notification) {
	if n.At.IsZero() {
		n.At = c.now()
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	if len(c.items) > c.p.Limit {
		c.items = c.items[len(c.items)-c.p.Limit:]
	}
	c.mu.Unlock()

	if c.p.Forward == nil {
		return
	}
	if err := c.p.Forward.SendAlert(string(n.Level), Message(n)); err != nil {
		c.log.Warning("forward notification %q: %v", n.Title, err)
	}
}

// Active returns the toasts that have not expired, oldest first.
func (c *Center) Active() []orders.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.p.TTL)
	kept := c.items[:0]
	for _, n := range c.items {
		if n.At.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.items = kept
	return append([]orders.Notification(nil), kept...)
}

// Message is the one-line text of a toast.
func Message(n orders.Notification) string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + "\n" + n.Description
}
