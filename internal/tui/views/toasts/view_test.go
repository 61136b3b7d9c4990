package toasts

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/pkg/tuitest"
)

const testWidth = 40

func newTestView(markdown bool) (*Controller, *View) {
	var v *View
	c := NewController(2, 2, func(n notify.Notification) int { return v.Height(n) })
	v = NewView(c, testWidth, markdown)
	return c, v
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func TestView_Render_empty(t *testing.T) {
	_, v := newTestView(false)
	assert.Empty(t, v.Render())
}

func TestView_Render_each_kind(t *testing.T) {
	tests := []struct {
		kind notify.Kind
		icon string
	}{
		{notify.KindSuccess, styles.IconNotifySuccess},
		{notify.KindError, styles.IconNotifyError},
		{notify.KindWarning, styles.IconNotifyWarning},
		{notify.KindInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, v := newTestView(false)
			c.Apply(snap(1, notify.Notification{ID: "a", Kind: tt.kind, Title: "Saved", Message: "all good", Seq: 1}))
			settle(t, c)

			out := tuitest.StripANSI(v.Render())
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "Saved")
			assert.Contains(t, out, "all good")
			assert.Contains(t, out, styles.IconClose)
		})
	}
}

func TestView_unknown_kind_panics(t *testing.T) {
	_, v := newTestView(false)
	assert.Panics(t, func() {
		v.Height(notify.Notification{ID: "a", Kind: "bogus", Title: "x"})
	})
}

func TestView_Render_oldest_first(t *testing.T) {
	c, v := newTestView(false)
	c.Apply(snap(1, note("first", 1), note("second", 2)))
	settle(t, c)

	out := v.Render()
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestView_Render_fits_width(t *testing.T) {
	c, v := newTestView(false)
	c.Apply(snap(1, notify.Notification{
		ID:      "a",
		Kind:    notify.KindWarning,
		Title:   "A title that is much longer than the toast is wide",
		Message: "A message that needs to wrap across several lines because it does not fit on one.",
		Seq:     1,
	}))
	settle(t, c)

	out := v.Render()
	assert.Greater(t, lineCount(out), 4, "message should wrap")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, testWidth, ansi.StringWidth(line))
	}
	assert.Contains(t, ansi.Strip(out), "…")
}

func TestView_enter_slides_in_from_right(t *testing.T) {
	c, v := newTestView(false)
	c.Apply(snap(1, note("a", 1)))

	// Frame zero is fully off screen but already holds its space.
	out := v.Render()
	assert.Equal(t, v.Height(note("a", 1)), lineCount(out))
	assert.Empty(t, strings.TrimSpace(ansi.Strip(out)))

	c.Tick()
	out = v.Render()
	first := strings.Split(out, "\n")[0]
	assert.True(t, strings.HasPrefix(first, strings.Repeat(" ", testWidth/2)), "half way in: %q", first)
	assert.Equal(t, testWidth, ansi.StringWidth(first))

	c.Tick()
	first = strings.Split(v.Render(), "\n")[0]
	assert.False(t, strings.HasPrefix(first, " "))
}

func TestView_collapse_reflows_siblings(t *testing.T) {
	c, v := newTestView(false)
	c.Apply(snap(1, note("a", 1), note("b", 2)))
	settle(t, c)

	h := v.Height(note("a", 1))
	require.Equal(t, 2*h, lineCount(v.Render()))

	c.Apply(snap(2, note("b", 2)))
	c.Tick()
	c.Tick()
	require.Equal(t, phaseCollapsing, c.items[0].phase)
	assert.Equal(t, 2*h, lineCount(v.Render()))

	for want := 2*h - 1; want > h; want-- {
		c.Tick()
		assert.Equal(t, want, lineCount(v.Render()))
	}

	c.Tick()
	assert.Len(t, c.items, 1)
	assert.Equal(t, h, lineCount(v.Render()))
	assert.Contains(t, v.Render(), "b")
}

func TestView_Render_markdown(t *testing.T) {
	c, v := newTestView(true)
	c.Apply(snap(1, notify.Notification{ID: "a", Kind: notify.KindInfo, Title: "Docs", Message: "some **bold** text", Seq: 1}))
	settle(t, c)

	out := tuitest.StripANSI(v.Render())
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**")
}

func TestView_Overlay_empty_returns_background(t *testing.T) {
	_, v := newTestView(false)
	bg := "background content"
	assert.Equal(t, bg, v.Overlay(bg, 80, 24))
}

func TestView_Overlay_positions_lower_right(t *testing.T) {
	c, v := newTestView(false)
	c.Apply(snap(1, notify.Notification{ID: "a", Kind: notify.KindSuccess, Title: "positioned", Seq: 1}))
	settle(t, c)

	width, height := 120, 40
	out := v.Overlay(tuitest.Background(width, height), width, height)

	lines := strings.Split(out, "\n")
	row := -1
	for i, line := range lines {
		if strings.Contains(line, "positioned") {
			row = i
			break
		}
	}
	require.NotEqual(t, -1, row, "toast text not found in output")
	assert.Greater(t, row, height/2, "toast should be in the lower half")

	col := ansi.StringWidth(ansi.Strip(lines[row])[:strings.Index(ansi.Strip(lines[row]), "positioned")])
	assert.Greater(t, col, width/2, "toast should be in the right half")
}
