package styles

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	lipglossv1 "github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_sorted_and_resolvable(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		p, ok := GetPalette(name)
		require.True(t, ok, name)
		assert.NotNil(t, p.Success, name)
		assert.NotNil(t, p.Info, name)
	}

	_, ok := GetPalette("does-not-exist")
	assert.False(t, ok)
}

func TestBlend_endpoints(t *testing.T) {
	black := lipgloss.Color("#000000")
	white := lipgloss.Color("#ffffff")

	hex := func(t *testing.T, c interface{ RGBA() (r, g, b, a uint32) }) string {
		t.Helper()
		cc, ok := colorful.MakeColor(c)
		require.True(t, ok)
		return cc.Hex()
	}

	assert.Equal(t, "#000000", hex(t, Blend(black, white, 0)))
	assert.Equal(t, "#ffffff", hex(t, Blend(black, white, 1)))
	assert.Equal(t, "#ffffff", hex(t, Blend(black, white, 7)), "t is clamped")

	mid := hex(t, Blend(black, white, 0.5))
	assert.NotEqual(t, "#000000", mid)
	assert.NotEqual(t, "#ffffff", mid)
}

func TestSetTheme_rebuilds_colors(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, _ := GetPalette("gruvbox")
	SetTheme(p)

	assert.Equal(t, p.Error, ColorError)
	assert.Equal(t, p, CurrentPalette)
}

func TestFormTheme_uses_palette(t *testing.T) {
	theme := FormTheme()
	require.NotNil(t, theme)

	want, ok := colorful.MakeColor(ColorPrimary)
	require.True(t, ok)
	assert.Equal(t, lipglossv1.Color(want.Hex()), theme.Focused.Title.GetForeground())
}
