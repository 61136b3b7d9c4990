// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
	ColorInfo       color.Color
)

// Style exports.
var (
	// ToastStyle is the base box for a toast; the border color is set per kind
	// and per animation frame.
	ToastStyle        lipgloss.Style
	ToastTitleStyle   lipgloss.Style
	ToastMessageStyle lipgloss.Style
	ToastCloseStyle   lipgloss.Style

	PageTitleStyle lipgloss.Style
	PageTextStyle  lipgloss.Style
	HelpStyle      lipgloss.Style
	PromptStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorInfo = p.Info

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastTitleStyle = lipgloss.NewStyle().
		Bold(true)
	ToastMessageStyle = lipgloss.NewStyle()
	ToastCloseStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	PageTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	PageTextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// Blend returns the color t of the way from a to b in Lab space. t is
// clamped to [0, 1]. Colors that cannot be converted fall back to b.
func Blend(a, b color.Color, t float64) color.Color {
	t = min(max(t, 0), 1)

	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB {
		return b
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// hex returns c as a "#rrggbb" string, or nil when c is unset.
func hex(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	h := cc.Hex()
	return &h
}

// ToastMarkdownStyle returns the Glamour style for toast bodies: the dark
// preset recolored with the active palette, without document margins so the
// text lines up with the title.
func ToastMarkdownStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	var noMargin uint
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	text := hex(ColorForeground)
	accent := hex(ColorInfo)

	cfg.Document.Color = text
	cfg.Paragraph.Color = text
	cfg.Strong.Color = text
	cfg.Emph.Color = text
	cfg.Heading.Color = hex(ColorPrimary)
	cfg.Link.Color = accent
	cfg.LinkText.Color = accent
	cfg.Code.Color = accent
	cfg.Code.BackgroundColor = hex(ColorSurface)
	cfg.CodeBlock.Color = hex(ColorMuted)

	return cfg
}
