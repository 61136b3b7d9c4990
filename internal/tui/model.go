// Package tui implements the interactive toast playground: a placeholder page
// with the notification stack composited over it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/tui/views/toasts"
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// UIState is the input mode of the host model.
type UIState int

const (
	stateNormal UIState = iota
	stateComposing
)

// Options configures the TUI.
type Options struct {
	Store  *notify.Store
	Router *notify.Router
	Config *config.Config
	Build  BuildInfo

	Demo    bool             // seed one toast of each kind on start
	Initial []notify.Request // enqueued on start

	CopyFunc func(string) error // clipboard writer for the toast view (optional)
}

// Model is the root Bubble Tea model.
type Model struct {
	store  *notify.Store
	router *notify.Router
	cfg    *config.Config
	build  BuildInfo
	keys   keyMap

	toasts *toasts.Toasts

	state       UIState
	input       textinput.Model
	composeKind notify.Kind
	persistent  bool
	status      string

	width, height int
	seed          []notify.Request
}

// New creates the root model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	input := textinput.New()
	input.Placeholder = "Title"
	input.CharLimit = 120
	input.SetWidth(40)
	input.SetStyles(textinput.DefaultStyles(true))

	seed := opts.Initial
	if opts.Demo {
		seed = append(demoRequests(cfg.Toast.DefaultTTL), seed...)
	}

	return Model{
		store:  opts.Store,
		router: opts.Router,
		cfg:    cfg,
		build:  opts.Build,
		keys:   defaultKeyMap(),
		toasts: toasts.New(opts.Store, toastOptions(cfg.Toast, opts.CopyFunc)),
		input:  input,
		seed:   seed,
	}
}

func toastOptions(c config.ToastConfig, copyFn func(string) error) toasts.Options {
	opts := toasts.DefaultOptions()
	opts.Width = c.Width
	opts.Markdown = c.Markdown
	opts.FrameInterval = c.FrameInterval
	opts.EnterFrames = c.EnterFrames
	opts.ExitFrames = c.ExitFrames
	if copyFn != nil {
		opts.CopyFunc = copyFn
	}
	return opts
}

// Toasts returns the notification view. The caller that runs the program
// unmounts it on exit.
func (m Model) Toasts() *toasts.Toasts {
	return m.toasts
}

// Init mounts the toast view and enqueues the seed notifications.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.toasts.Mount()}
	if len(m.seed) > 0 {
		cmds = append(cmds, enqueueAll(m.store, m.seed))
	}
	return tea.Batch(cmds...)
}

type enqueueFailedMsg struct{ err error }

func enqueueAll(store *notify.Store, reqs []notify.Request) tea.Cmd {
	return func() tea.Msg {
		var errs []error
		for _, r := range reqs {
			if _, err := store.Enqueue(r); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return enqueueFailedMsg{err: errors.Join(errs...)}
		}
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.toasts.Update(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case enqueueFailedMsg:
		log.Error().Err(msg.err).Msg("failed to enqueue notification")
		m.status = msg.err.Error()
		m.store.Errorf("Enqueue failed: %s", describeEnqueueError(msg.err))
		return m, nil
	case routedMsg:
		m.status = fmt.Sprintf("routed %d events, %d muted", msg.routed, msg.muted)
		if msg.muted > 0 {
			m.store.Warn("Events muted", fmt.Sprintf("%d of %d events matched a mute rule", msg.muted, msg.routed+msg.muted))
		} else {
			m.store.Info("Events routed", fmt.Sprintf("%d events published", msg.routed))
		}
		return m, nil
	}

	if m.state == stateComposing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m, tea.Quit
	}

	if m.state == stateComposing {
		return m.handleComposeKey(msg)
	}

	if cmd, ok := m.toasts.HandleKey(msg); ok {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Events):
		return m, routeEvents(m.router, demoEvents(m.cfg.Toast.DefaultTTL))
	}

	if kind, ok := m.keys.composeKind(msg.String()); ok {
		m.state = stateComposing
		m.composeKind = kind
		m.persistent = false
		m.status = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeCompose()
		return m, nil
	case key.Matches(msg, m.keys.Persistent):
		m.persistent = !m.persistent
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitCompose()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	ttl := m.cfg.Toast.DefaultTTL
	if m.persistent {
		ttl = 0
	}

	_, err := m.store.Enqueue(notify.Request{
		Kind:        m.composeKind,
		Title:       m.input.Value(),
		AutoDismiss: ttl,
	})
	if err != nil {
		m.status = describeEnqueueError(err)
		return m, nil
	}

	m.closeCompose()
	return m, nil
}

func (m *Model) closeCompose() {
	m.state = stateNormal
	m.input.Blur()
	m.input.SetValue("")
}

// describeEnqueueError turns field errors into a short status line.
func describeEnqueueError(err error) string {
	var fe criterio.FieldErrors
	if errors.As(err, &fe) && len(fe) > 0 {
		return fmt.Sprintf("%s %s", fe[0].Field, fe[0].Err)
	}
	return err.Error()
}

type routedMsg struct {
	routed int
	muted  int
}

// routeEvents sends events through the router the way another part of an
// application would publish them.
func routeEvents(router *notify.Router, events []notify.Event) tea.Cmd {
	if router == nil {
		return nil
	}
	return func() tea.Msg {
		var out routedMsg
		for _, ev := range events {
			id, err := router.Route(context.Background(), ev)
			switch {
			case err != nil:
				return enqueueFailedMsg{err: err}
			case id == "":
				out.muted++
			default:
				out.routed++
			}
		}
		return out
	}
}

func demoRequests(ttl time.Duration) []notify.Request {
	return []notify.Request{
		{Kind: notify.KindSuccess, Title: "Saved", Message: "Your changes were saved.", AutoDismiss: ttl},
		{Kind: notify.KindInfo, Title: "Heads up", Message: "A new version is available.", AutoDismiss: ttl + 2*time.Second},
		{Kind: notify.KindWarning, Title: "Low disk space", Message: "Less than 1 GB left on /var.", AutoDismiss: ttl + 4*time.Second},
		{Kind: notify.KindError, Title: "Sync failed", Message: "Press **x** to dismiss this one."},
	}
}

func demoEvents(ttl time.Duration) []notify.Event {
	return []notify.Event{
		{Topic: "build/api", Kind: notify.KindSuccess, Title: "Build passed", Message: "api@main in 42s", AutoDismiss: ttl},
		{Topic: "deploy/production", Kind: notify.KindInfo, Title: "Deploy started", Message: "rolling out v1.4.2", AutoDismiss: ttl},
		{Topic: "lint/web", Kind: notify.KindWarning, Title: "Lint warnings", Message: "3 warnings in web/", AutoDismiss: ttl},
		{Topic: "build/worker", Kind: notify.KindError, Title: "Build failed", Message: "worker: tests exited 1", AutoDismiss: ttl},
	}
}
