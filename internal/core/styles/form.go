package styles

import (
	"image/color"

	"github.com/charmbracelet/huh"
	lipglossv1 "github.com/charmbracelet/lipgloss"
)

// FormTheme returns a huh theme using the active palette. huh still renders
// with lipgloss v1, so colors are passed as hex strings.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := v1Color(ColorPrimary)
	fg := v1Color(ColorForeground)
	muted := v1Color(ColorMuted)
	errC := v1Color(ColorError)
	okC := v1Color(ColorSuccess)

	t.Focused.Base = t.Focused.Base.BorderForeground(primary)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errC)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errC)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary)
	t.Focused.Option = t.Focused.Option.Foreground(fg)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(okC)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(primary).Foreground(v1Color(ColorBackground))
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(muted)

	return t
}

func v1Color(c color.Color) lipglossv1.Color {
	if h := hex(c); h != nil {
		return lipglossv1.Color(*h)
	}
	return lipglossv1.Color("")
}
