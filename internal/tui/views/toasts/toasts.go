// Package toasts renders active notifications as an animated stack in the
// lower-right corner of the screen.
package toasts

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/notify"
)

// Store is the subset of the notification store the view needs.
type Store interface {
	Subscribe(fn notify.Listener) (unsubscribe func())
	Snapshot() notify.Snapshot
	Dismiss(id notify.ID) bool
	DismissAll() int
	Success(title, message string) notify.ID
	Error(title, message string) notify.ID
}

// Options configures the toast stack.
type Options struct {
	Width         int
	Markdown      bool
	FrameInterval time.Duration
	EnterFrames   int
	ExitFrames    int
	Keys          KeyMap

	// CopyFunc writes text to the clipboard. Defaults to the system clipboard.
	CopyFunc func(string) error
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:         50,
		FrameInterval: 40 * time.Millisecond,
		EnterFrames:   6,
		ExitFrames:    6,
		Keys:          DefaultKeyMap(),
		CopyFunc:      clipboard.WriteAll,
	}
}

type frameMsg time.Time

// Toasts is the notification view. It is a pointer-backed component owned by
// the host model: the host forwards messages to Update and keys to HandleKey
// and draws the stack with Overlay.
type Toasts struct {
	store      Store
	opts       Options
	controller *Controller
	view       *View

	box         *mailbox
	unsubscribe func()
	ticking     bool
}

// New creates a toast view for store. It does nothing until mounted.
func New(store Store, opts Options) *Toasts {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = def.FrameInterval
	}
	if opts.CopyFunc == nil {
		opts.CopyFunc = def.CopyFunc
	}
	if len(opts.Keys.Dismiss.Keys()) == 0 {
		opts.Keys = def.Keys
	}

	t := &Toasts{store: store, opts: opts}
	t.controller = NewController(opts.EnterFrames, opts.ExitFrames, func(n notify.Notification) int {
		return t.view.Height(n)
	})
	t.view = NewView(t.controller, opts.Width, opts.Markdown)
	return t
}

// Mount subscribes to the store and returns the command that feeds its
// snapshots into the update loop. Mounting an already mounted view is a
// no-op.
func (t *Toasts) Mount() tea.Cmd {
	if t.box != nil {
		return nil
	}

	t.box = newMailbox()
	t.unsubscribe = t.store.Subscribe(t.box.put)
	t.box.put(t.store.Snapshot())

	return t.box.wait()
}

// Unmount deregisters from the store. Pending snapshots are discarded and
// the outstanding wait command returns nil.
func (t *Toasts) Unmount() {
	if t.box == nil {
		return
	}
	t.unsubscribe()
	t.box.close()
	t.box = nil
	t.unsubscribe = nil
}

// Mounted reports whether the view is subscribed to the store.
func (t *Toasts) Mounted() bool {
	return t.box != nil
}

// Update handles snapshot and frame messages. It returns false for messages
// that belong to someone else.
func (t *Toasts) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.box != t.box || t.box == nil {
			return nil, true
		}
		t.apply(msg.snap)
		return tea.Batch(t.box.wait(), t.ensureTick()), true
	case frameMsg:
		if !t.controller.Tick() {
			t.ticking = false
			return nil, true
		}
		return t.scheduleTick(), true
	}
	return nil, false
}

func (t *Toasts) apply(snap notify.Snapshot) {
	if t.controller.Apply(snap) {
		log.Debug().
			Uint64("version", snap.Version).
			Int("active", snap.Len()).
			Msg("toasts reconciled")
	}
}

// ensureTick starts the frame tick if something is animating and no tick is
// already scheduled.
func (t *Toasts) ensureTick() tea.Cmd {
	if t.ticking || !t.controller.Animating() {
		return nil
	}
	t.ticking = true
	return t.scheduleTick()
}

func (t *Toasts) scheduleTick() tea.Cmd {
	return tea.Tick(t.opts.FrameInterval, func(ts time.Time) tea.Msg {
		return frameMsg(ts)
	})
}

// HandleKey applies a toast binding. It returns false when no live toast is
// on screen or the key is not a toast binding, so the host can handle it.
func (t *Toasts) HandleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	focused, ok := t.controller.Focused()
	if !ok {
		return nil, false
	}

	k := t.opts.Keys
	switch {
	case key.Matches(msg, k.Dismiss):
		t.store.Dismiss(focused.ID)
	case key.Matches(msg, k.DismissAll):
		t.store.DismissAll()
	case key.Matches(msg, k.Next):
		t.controller.FocusNext()
	case key.Matches(msg, k.Prev):
		t.controller.FocusPrev()
	case key.Matches(msg, k.Copy):
		t.copy(focused)
	default:
		return nil, false
	}
	return nil, true
}

func (t *Toasts) copy(n notify.Notification) {
	text := n.Title
	if n.Message != "" {
		text += "\n" + n.Message
	}

	if err := t.opts.CopyFunc(text); err != nil {
		log.Warn().Err(err).Str("id", string(n.ID)).Msg("failed to copy toast")
		t.store.Error("Copy failed", err.Error())
		return
	}
	t.store.Success("Copied to clipboard", firstLine(n.Title))
}

// HasToasts reports whether anything is on screen, exiting toasts included.
func (t *Toasts) HasToasts() bool {
	return t.controller.HasToasts()
}

// Live returns the notifications currently shown as active.
func (t *Toasts) Live() []notify.Notification {
	return t.controller.Live()
}

// Help returns the key bindings that apply while toasts are shown.
func (t *Toasts) Help() []key.Binding {
	return t.opts.Keys.ShortHelp()
}

// View renders the stack on its own.
func (t *Toasts) View() string {
	return t.view.Render()
}

// Overlay composites the stack over background in the lower-right corner.
func (t *Toasts) Overlay(background string, width, height int) string {
	return t.view.Overlay(background, width, height)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
