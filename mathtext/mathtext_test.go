package mathtext

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/benoitkugler/figtemplate/figfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiskLabels(t *testing.T) {
	l, err := Parse(`$\Delta^{*}(z_0, R)$`, StrictErrorMode)
	require.NoError(t, err)
	require.Len(t, l, 1)
	math := l[0].(List)
	require.Len(t, math, 6)

	delta := math[0].(Scripts)
	assert.Equal(t, Symbol{R: 'Δ', Slant: figfont.Regular}, delta.Base)
	assert.Equal(t, List{Symbol{R: '*'}}, delta.Sup)
	assert.Nil(t, delta.Sub)

	assert.Equal(t, Symbol{R: '('}, math[1])
	z0 := math[2].(Scripts)
	assert.Equal(t, Symbol{R: 'z', Slant: figfont.Italic}, z0.Base)
	assert.Equal(t, Symbol{R: '0'}, z0.Sub)
	assert.Equal(t, Symbol{R: ',', Punct: true}, math[3])
	assert.Equal(t, Symbol{R: 'R', Slant: figfont.Italic}, math[4])

	assert.Equal(t, "Δ^*(z_0,R)", l.String())
}

func TestParseBarAndPartial(t *testing.T) {
	l, err := Parse(`$\bar{\Delta}^{*}(z_0, R)$`, StrictErrorMode)
	require.NoError(t, err)
	first := l[0].(List)[0].(Scripts)
	bar, ok := first.Base.(Bar)
	require.True(t, ok)
	assert.Equal(t, List{Symbol{R: 'Δ'}}, bar.Body)

	l, err = Parse(`$\partial\Delta(z_0, R)$`, StrictErrorMode)
	require.NoError(t, err)
	math := l[0].(List)
	assert.Equal(t, Symbol{R: '∂', Slant: figfont.Italic}, math[0])
	assert.Equal(t, Symbol{R: 'Δ'}, math[1])
}

func TestParseMixedText(t *testing.T) {
	l, err := Parse(`radius $R$ \$5`, StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, "radius R $5", l.String())
	assert.Equal(t, Symbol{R: 'r'}, l[0]) // upright outside math

	l, err = Parse(`$a\,b\quad c$`, StrictErrorMode)
	require.NoError(t, err)
	math := l[0].(List)
	assert.Equal(t, Space(3./18), math[1])
	assert.Equal(t, Space(1), math[3])

	l, err = Parse(`$\mathrm{d}x$`, StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, List{Symbol{R: 'd'}}, l[0].(List)[0])
}

func TestParseErrors(t *testing.T) {
	for src, want := range map[string]error{
		`$x`:       ErrUnclosedMath,
		`${x$`:     ErrUnbalancedGroup,
		`$x}$`:     ErrUnbalancedGroup,
		`$x^$`:     ErrMissingArgument,
		`$x^1^2$`:  ErrDoubleScript,
		`$\foo x$`: ErrUnknownCommand,
		`$\bar$`:   ErrMissingArgument,
	} {
		_, err := Parse(src, StrictErrorMode)
		assert.ErrorIs(t, err, want, src)
	}
}

func TestUnknownCommandModes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	l, err := Parse(`$\foo$`, WarnErrorMode)
	require.NoError(t, err)
	assert.Equal(t, `\foo`, l.String())
	assert.Contains(t, buf.String(), "command=foo")

	buf.Reset()
	l, err = Parse(`$\foo$`, IgnoreErrorMode)
	require.NoError(t, err)
	assert.Equal(t, `\foo`, l.String())
	assert.Empty(t, buf.String())
}

// every glyph is half an em wide and 0.7 em high
type fakeFonts struct{}

func (fakeFonts) Advance(r rune, _ figfont.Slant, size float64) float64 { return size / 2 }

func (fakeFonts) InkExtent(r rune, _ figfont.Slant, size float64) (float64, float64) {
	if r == ',' {
		return 0.1 * size, 0.2 * size
	}
	return 0.7 * size, 0
}

func TestLayoutSubscript(t *testing.T) {
	l, err := Parse(`$z_0$`, StrictErrorMode)
	require.NoError(t, err)
	b := Layout(l, 10, fakeFonts{})
	require.Len(t, b.Glyphs, 2)

	z, zero := b.Glyphs[0], b.Glyphs[1]
	assert.Equal(t, 'z', z.R)
	assert.Equal(t, 10., z.Size)
	assert.Equal(t, 0., z.Y)
	assert.InDelta(t, 7, zero.Size, 1e-9)
	assert.InDelta(t, 5, zero.X, 1e-9)
	assert.InDelta(t, subDrop*10, zero.Y, 1e-9) // lowered
	assert.InDelta(t, 5+3.5+0.5, b.Width, 1e-9)
	assert.InDelta(t, 7, b.Ascent, 1e-9)
}

func TestLayoutSuperscriptAndBar(t *testing.T) {
	l, err := Parse(`$\bar{\Delta}^{*}$`, StrictErrorMode)
	require.NoError(t, err)
	b := Layout(l, 10, fakeFonts{})
	require.Len(t, b.Glyphs, 2)
	require.Len(t, b.Rules, 1)

	star := b.Glyphs[1]
	assert.Less(t, star.Y, 0.) // raised
	assert.InDelta(t, 7, star.Size, 1e-9)

	bar := b.Rules[0]
	assert.Less(t, bar.Y+bar.H, -7.) // above the glyph ink
	assert.InDelta(t, 7+barGap*10+ruleThick*10, -bar.Y, 1e-9)
	assert.GreaterOrEqual(t, b.Ascent, -bar.Y)
}

func TestLayoutPunctuation(t *testing.T) {
	l, err := Parse(`$a,b$`, StrictErrorMode)
	require.NoError(t, err)
	b := Layout(l, 18, fakeFonts{})
	assert.InDelta(t, 9*3+3, b.Width, 1e-9)
	assert.InDelta(t, 3.6, b.Descent, 1e-9)
	assert.InDelta(t, 9+9+3, b.Glyphs[2].X, 1e-9)
}
