package toasts

import (
	"slices"

	"github.com/colonyops/toast/internal/core/notify"
)

// Controller tracks which toasts are on screen and where each one is in its
// animation. It never mutates the store; it only reconciles snapshots.
type Controller struct {
	timing  timing
	measure func(notify.Notification) int

	items   []*item
	version uint64
	applied bool
	focus   notify.ID
}

// NewController creates a controller. measure returns the full rendered
// height of a toast and is used to collapse the gap it leaves behind.
func NewController(enterFrames, exitFrames int, measure func(notify.Notification) int) *Controller {
	return &Controller{
		timing: timing{
			enterFrames: max(enterFrames, 1),
			exitFrames:  max(exitFrames, 1),
		},
		measure: measure,
	}
}

// Apply reconciles the display with snap. Notifications new to the display
// start entering, displayed notifications missing from snap start exiting.
// Snapshots older than one already applied are ignored. It reports whether
// anything changed.
func (c *Controller) Apply(snap notify.Snapshot) bool {
	if c.applied && snap.Version <= c.version {
		return false
	}
	c.applied = true
	c.version = snap.Version

	changed := false

	for _, it := range c.items {
		if it.live() && !snap.Has(it.n.ID) {
			it.startExit(c.timing, c.measure(it.n))
			changed = true
		}
	}

	for _, n := range snap.Items {
		if c.index(n.ID) >= 0 {
			continue
		}
		c.insert(&item{n: n, phase: phaseEntering})
		changed = true
	}

	if c.focus != "" && !c.isLive(c.focus) {
		c.focus = ""
	}

	return changed
}

// insert places it by insertion sequence so the display order always matches
// the store order, even when exiting items are interleaved.
func (c *Controller) insert(it *item) {
	i, _ := slices.BinarySearchFunc(c.items, it.n.Seq, func(e *item, seq uint64) int {
		switch {
		case e.n.Seq < seq:
			return -1
		case e.n.Seq > seq:
			return 1
		default:
			return 0
		}
	})
	c.items = slices.Insert(c.items, i, it)
}

// Tick advances every animating item by one frame and unmounts items whose
// exit has finished. It reports whether anything is still animating.
func (c *Controller) Tick() bool {
	for _, it := range c.items {
		it.step(c.timing)
	}
	c.items = slices.DeleteFunc(c.items, func(it *item) bool { return it.phase == phaseGone })
	return c.Animating()
}

// Animating reports whether any item is entering, exiting or collapsing.
func (c *Controller) Animating() bool {
	return slices.ContainsFunc(c.items, func(it *item) bool { return it.phase != phaseVisible })
}

// HasToasts reports whether anything is on screen, including exiting toasts.
func (c *Controller) HasToasts() bool {
	return len(c.items) > 0
}

// Live returns the notifications that are active in the store, in display
// order.
func (c *Controller) Live() []notify.Notification {
	var out []notify.Notification
	for _, it := range c.items {
		if it.live() {
			out = append(out, it.n)
		}
	}
	return out
}

// Focused returns the toast manual actions apply to: the explicitly focused
// toast if it is still live, otherwise the newest live toast.
func (c *Controller) Focused() (notify.Notification, bool) {
	var last *item
	for _, it := range c.items {
		if !it.live() {
			continue
		}
		if it.n.ID == c.focus {
			return it.n, true
		}
		last = it
	}
	if last == nil {
		return notify.Notification{}, false
	}
	return last.n, true
}

// FocusNext moves focus to the next older live toast, wrapping around.
func (c *Controller) FocusNext() {
	c.moveFocus(-1)
}

// FocusPrev moves focus to the next newer live toast, wrapping around.
func (c *Controller) FocusPrev() {
	c.moveFocus(1)
}

func (c *Controller) moveFocus(delta int) {
	live := c.Live()
	if len(live) == 0 {
		c.focus = ""
		return
	}

	cur, _ := c.Focused()
	i := slices.IndexFunc(live, func(n notify.Notification) bool { return n.ID == cur.ID })
	i = (i + delta + len(live)) % len(live)
	c.focus = live[i].ID
}

func (c *Controller) index(id notify.ID) int {
	return slices.IndexFunc(c.items, func(it *item) bool { return it.n.ID == id })
}

func (c *Controller) isLive(id notify.ID) bool {
	i := c.index(id)
	return i >= 0 && c.items[i].live()
}
