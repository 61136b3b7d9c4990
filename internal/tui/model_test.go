package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/pkg/sched"
	"github.com/colonyops/toast/pkg/tuitest"
)

type fixture struct {
	store *notify.Store
	cfg   *config.Config
	model Model
	wait  tea.Cmd
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	clock := sched.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := notify.NewStore(
		notify.WithIDs(notify.NewSequence("t")),
		notify.WithScheduler(clock),
		notify.WithClock(clock.Now),
		notify.WithDefaultTTL(5*time.Second),
	)
	t.Cleanup(store.Close)

	cfg := config.DefaultConfig()
	opts.Store = store
	opts.Config = &cfg
	opts.CopyFunc = func(string) error { return nil }

	m := New(opts)
	wait := m.Toasts().Mount()
	t.Cleanup(m.Toasts().Unmount)

	f := &fixture{store: store, cfg: &cfg, model: m, wait: wait}
	f.deliver(t)
	return f
}

func (f *fixture) send(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		updated, c := f.model.Update(msg)
		f.model = updated.(Model)
		cmd = c
	}
	return cmd
}

func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	for _, k := range tuitest.Type(s) {
		f.send(t, k)
	}
}

// deliver feeds the latest store snapshot to the model.
func (f *fixture) deliver(t *testing.T) {
	t.Helper()
	f.send(t, f.wait())
}

func TestModel_compose_enqueues(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, tuitest.KeyPress('s'))
	require.Equal(t, stateComposing, f.model.state)

	f.typeText(t, "Hello")
	f.send(t, tuitest.KeyEnter())

	assert.Equal(t, stateNormal, f.model.state)
	items := f.store.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, notify.KindSuccess, items[0].Kind)
	assert.Equal(t, "Hello", items[0].Title)
	assert.Equal(t, f.cfg.Toast.DefaultTTL, items[0].AutoDismiss)
}

func TestModel_compose_persistent(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, tuitest.KeyPress('e'))
	f.typeText(t, "Broken")
	f.send(t, tuitest.KeyCtrl('p'), tuitest.KeyEnter())

	items := f.store.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, notify.KindError, items[0].Kind)
	assert.True(t, items[0].Persistent())
}

func TestModel_compose_rejects_blank_title(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, tuitest.KeyPress('w'))
	f.typeText(t, "   ")
	f.send(t, tuitest.KeyEnter())

	assert.Equal(t, stateComposing, f.model.state)
	assert.Contains(t, f.model.status, "title")
	assert.Zero(t, f.store.Len())
}

func TestModel_compose_cancel(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, tuitest.KeyPress('i'))
	f.typeText(t, "never")
	f.send(t, tuitest.KeyEsc())

	assert.Equal(t, stateNormal, f.model.state)
	assert.Zero(t, f.store.Len())
}

func TestModel_compose_captures_toast_keys(t *testing.T) {
	f := newFixture(t, Options{})
	f.store.Info("keep me", "")
	f.deliver(t)

	f.send(t, tuitest.KeyPress('i'))
	f.typeText(t, "xX")

	assert.Equal(t, 1, f.store.Len())
	assert.Equal(t, "xX", f.model.input.Value())
}

func TestModel_forwards_toast_keys(t *testing.T) {
	f := newFixture(t, Options{})
	f.store.Info("one", "")
	f.store.Info("two", "")
	f.deliver(t)

	f.send(t, tuitest.KeyPress('x'))
	assert.Equal(t, []string{"one"}, titles(f.store.Snapshot()))

	f.deliver(t)
	f.send(t, tuitest.KeyPress('X'))
	assert.Zero(t, f.store.Len())
}

func TestModel_quit(t *testing.T) {
	f := newFixture(t, Options{})

	cmd := f.send(t, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = f.send(t, tuitest.KeyCtrl('c'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_demo_seeds_each_kind(t *testing.T) {
	f := newFixture(t, Options{Demo: true})
	require.Len(t, f.model.seed, len(notify.Kinds()))

	assert.Nil(t, enqueueAll(f.store, f.model.seed)())

	seen := map[notify.Kind]bool{}
	for _, n := range f.store.Snapshot().Items {
		seen[n.Kind] = true
	}
	assert.Len(t, seen, len(notify.Kinds()))
}

func TestModel_initial_requests_are_seeded(t *testing.T) {
	f := newFixture(t, Options{Initial: []notify.Request{{Kind: notify.KindInfo, Title: "from compose"}}})

	assert.Nil(t, enqueueAll(f.store, f.model.seed)())
	assert.Equal(t, []string{"from compose"}, titles(f.store.Snapshot()))
}

func TestModel_enqueue_failure_sets_status(t *testing.T) {
	f := newFixture(t, Options{})

	msg := enqueueAll(f.store, []notify.Request{{Kind: "nope", Title: "x"}})()
	require.IsType(t, enqueueFailedMsg{}, msg)

	f.send(t, msg)
	assert.Contains(t, f.model.status, "invalid")

	snap := f.store.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, notify.KindError, snap.Items[0].Kind)
	assert.Contains(t, snap.Items[0].Title, "Enqueue failed")
	assert.Contains(t, snap.Items[0].Title, "nope")
}

func TestModel_routes_demo_events(t *testing.T) {
	f := newFixture(t, Options{})
	router, err := notify.NewRouter(f.store, []notify.Rule{{Pattern: "lint/**", Mute: true}}, zerolog.Nop())
	require.NoError(t, err)
	f.model.router = router

	cmd := f.send(t, tuitest.KeyPress('d'))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, routedMsg{routed: 3, muted: 1}, msg)
	assert.Equal(t, 3, f.store.Len())

	for _, n := range f.store.Snapshot().Items {
		assert.NotEmpty(t, n.Source)
	}

	f.send(t, msg)
	assert.Contains(t, f.model.status, "3 events")

	snap := f.store.Snapshot()
	require.Equal(t, 4, snap.Len())
	summary := snap.Items[3]
	assert.Equal(t, notify.KindWarning, summary.Kind)
	assert.Equal(t, "Events muted", summary.Title)
	assert.Equal(t, "1 of 4 events matched a mute rule", summary.Message)
	assert.Empty(t, summary.Source)
}

func TestModel_routed_events_without_mutes_post_info(t *testing.T) {
	f := newFixture(t, Options{})

	f.send(t, routedMsg{routed: 2})

	snap := f.store.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, notify.KindInfo, snap.Items[0].Kind)
	assert.Equal(t, "2 events published", snap.Items[0].Message)
}

func TestModel_View(t *testing.T) {
	f := newFixture(t, Options{Build: BuildInfo{Version: "v1.2.3", Commit: "abcdef123"}})
	f.send(t, tuitest.WindowSize(160, 30))

	out := tuitest.StripANSI(f.model.render())
	assert.Contains(t, out, "toast")
	assert.Contains(t, out, "v1.2.3 (abcdef1)")
	assert.Contains(t, out, "s success")
	assert.NotContains(t, out, "x dismiss")

	f.store.Warn("careful", "")
	f.deliver(t)

	out = tuitest.StripANSI(f.model.render())
	assert.Contains(t, out, "x dismiss")
}

func TestModel_View_compose_prompt(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(t, tuitest.KeyPress('w'), tuitest.KeyCtrl('p'))

	out := tuitest.StripANSI(f.model.render())
	assert.Contains(t, out, "New warning toast (persistent)")
	assert.Contains(t, out, "enter send")
}

func TestBuildInfo_Label(t *testing.T) {
	assert.Empty(t, BuildInfo{Version: "dev"}.Label())
	assert.Empty(t, BuildInfo{}.Label())
	assert.Equal(t, "v1.0.0", BuildInfo{Version: "v1.0.0"}.Label())
	assert.Equal(t, "v1.0.0 (0123456)", BuildInfo{Version: "v1.0.0", Commit: "0123456789"}.Label())
}

func titles(snap notify.Snapshot) []string {
	out := make([]string, len(snap.Items))
	for i, n := range snap.Items {
		out[i] = n.Title
	}
	return out
}
