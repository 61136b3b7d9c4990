package toasts

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
)

// horizontal border plus padding around a toast's content.
const chrome = 4

// View renders the controller's toasts as a stack, oldest at the top and
// newest at the bottom.
type View struct {
	controller *Controller
	width      int
	markdown   bool

	md     *glamour.TermRenderer
	bodies map[notify.ID][]string
}

// NewView creates a view for controller. width is the outer width of each
// toast, border included.
func NewView(controller *Controller, width int, markdown bool) *View {
	return &View{
		controller: controller,
		width:      max(width, chrome+8),
		markdown:   markdown,
		bodies:     make(map[notify.ID][]string),
	}
}

// placement is one rendered toast within the stack.
type placement struct {
	content string
	dx      int // columns shifted right by the slide animation
	y       int
}

// layout positions every toast. Collapsing toasts have no content and only
// hold vertical space. It returns the placements and the total stack height.
func (v *View) layout() ([]placement, int) {
	items := v.controller.items
	v.prune(items)

	focused, _ := v.controller.Focused()

	var (
		out []placement
		y   int
	)
	for _, it := range items {
		if it.phase == phaseCollapsing {
			y += it.collapsedHeight()
			continue
		}

		box := v.renderBox(it.n, it.progress(v.controller.timing), it.live() && it.n.ID == focused.ID)
		boxW := lipgloss.Width(box)
		h := lipgloss.Height(box)

		dx := int(math.Round((1 - it.progress(v.controller.timing)) * float64(boxW)))
		if dx < boxW {
			out = append(out, placement{content: clip(box, boxW-dx), dx: dx, y: y})
		}
		y += h
	}

	return out, y
}

// Render returns the stack as a single block of text.
func (v *View) Render() string {
	placements, total := v.layout()
	if total == 0 {
		return ""
	}

	rows := make([]string, total)
	for _, p := range placements {
		for i, line := range strings.Split(p.content, "\n") {
			if p.y+i < total {
				rows[p.y+i] = strings.Repeat(" ", p.dx) + line
			}
		}
	}
	return strings.Join(rows, "\n")
}

// Overlay composites the toast stack over background in the lower-right
// corner.
func (v *View) Overlay(background string, width, height int) string {
	placements, total := v.layout()
	if total == 0 {
		return background
	}

	rightX := max(width-v.outerWidth()-1, 0)
	bottomY := max(height-total, 0)

	layers := []*lipgloss.Layer{lipgloss.NewLayer(background)}
	for _, p := range placements {
		layers = append(layers, lipgloss.NewLayer(p.content).X(rightX+p.dx).Y(bottomY+p.y).Z(2))
	}

	return lipgloss.NewCompositor(layers...).Render()
}

// Height returns the full rendered height of n.
func (v *View) Height(n notify.Notification) int {
	return lipgloss.Height(v.renderBox(n, 1, false))
}

func (v *View) outerWidth() int {
	return v.width
}

func (v *View) innerWidth() int {
	return v.width - chrome
}

// renderBox draws one toast with its colors faded toward the background by
// visibility.
func (v *View) renderBox(n notify.Notification, visibility float64, focused bool) string {
	icon, accent := kindStyle(n.Kind)
	inner := v.innerWidth()

	accent = styles.Blend(styles.ColorBackground, accent, visibility)
	fg := styles.Blend(styles.ColorBackground, styles.ColorForeground, visibility)

	closeGlyph := styles.ToastCloseStyle.Render(styles.IconClose)
	titleW := inner - ansi.StringWidth(icon) - 1 - ansi.StringWidth(styles.IconClose) - 1
	title := ansi.Truncate(n.Title, max(titleW, 1), "…")

	head := lipgloss.NewStyle().Foreground(accent).Render(icon) + " " +
		styles.ToastTitleStyle.Foreground(accent).Render(title)
	lines := []string{pad(head, inner-ansi.StringWidth(styles.IconClose)) + closeGlyph}

	for _, l := range v.body(n) {
		if !v.markdown {
			l = styles.ToastMessageStyle.Foreground(fg).Render(l)
		}
		lines = append(lines, pad(l, inner))
	}

	st := styles.ToastStyle.BorderForeground(accent)
	if focused {
		st = st.Border(lipgloss.ThickBorder())
	}
	return st.Render(strings.Join(lines, "\n"))
}

// body returns the message lines for n, wrapped to the content width.
func (v *View) body(n notify.Notification) []string {
	if n.Message == "" {
		return nil
	}
	if lines, ok := v.bodies[n.ID]; ok {
		return lines
	}

	text := ""
	if v.markdown {
		text = v.renderMarkdown(n.Message)
	}
	if text == "" {
		text = ansi.Wrap(n.Message, v.innerWidth(), " -")
	}

	lines := strings.Split(text, "\n")
	v.bodies[n.ID] = lines
	return lines
}

func (v *View) renderMarkdown(src string) string {
	if v.md == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.ToastMarkdownStyle()),
			glamour.WithWordWrap(v.innerWidth()),
		)
		if err != nil {
			log.Debug().Err(err).Msg("markdown renderer unavailable")
			v.markdown = false
			return ""
		}
		v.md = r
	}

	out, err := v.md.Render(src)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render toast markdown")
		return ""
	}
	return strings.TrimSpace(out)
}

// prune drops cached bodies for toasts that are no longer on screen.
func (v *View) prune(items []*item) {
	if len(v.bodies) <= len(items) {
		return
	}
	keep := make(map[notify.ID]bool, len(items))
	for _, it := range items {
		keep[it.n.ID] = true
	}
	for id := range v.bodies {
		if !keep[id] {
			delete(v.bodies, id)
		}
	}
}

// kindStyle maps a kind to its icon and accent color. Kinds are validated when
// enqueued, so an unknown kind here is a programming error.
func kindStyle(k notify.Kind) (string, color.Color) {
	switch k {
	case notify.KindSuccess:
		return styles.IconNotifySuccess, styles.ColorSuccess
	case notify.KindError:
		return styles.IconNotifyError, styles.ColorError
	case notify.KindWarning:
		return styles.IconNotifyWarning, styles.ColorWarning
	case notify.KindInfo:
		return styles.IconNotifyInfo, styles.ColorInfo
	default:
		panic(fmt.Sprintf("toasts: unknown notification kind %q", k))
	}
}

func pad(s string, width int) string {
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

// clip keeps the leftmost width columns of every line.
func clip(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}
