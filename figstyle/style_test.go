package figstyle

import (
	"bytes"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAcademic(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)
	defer Reset()

	SetupAcademic()

	p := Current()
	assert.True(t, p.UseTeX)
	assert.Equal(t, "serif", p.FontFamily)
	assert.Equal(t, []string{"Times New Roman", "Computer Modern Roman"}, p.FontSerif)
	assert.Equal(t, p.FontSerif, p.Families())
	assert.Equal(t, TickIn, p.XTickDirection)
	assert.Equal(t, TickIn, p.YTickDirection)
	assert.True(t, p.XTickTop)
	assert.True(t, p.YTickRight)
	assert.Equal(t, 12., p.FontSize)
	assert.Equal(t, 14., p.AxesLabelSize)
	assert.Equal(t, 12., p.LegendFontSize)
	assert.Equal(t, [2]float64{6.4, 4.8}, p.FigSize)
	assert.False(t, p.AxesGrid)

	assert.Contains(t, buf.String(), "Loaded academic style settings.")
}

func TestCurrentIsACopy(t *testing.T) {
	defer Reset()
	Use(Academic())
	p := Current()
	p.FontSerif[0] = "Comic Sans"
	assert.Equal(t, "Times New Roman", Current().FontSerif[0])

	// the caller keeps ownership of the slices given to Use
	mine := Academic()
	Use(mine)
	mine.FontSerif[0] = "Comic Sans"
	mine.FontSans[0] = "Comic Sans"
	assert.Equal(t, "Times New Roman", Current().FontSerif[0])
	assert.Equal(t, "DejaVu Sans", Current().FontSans[0])

	Reset()
	assert.Equal(t, "sans-serif", Current().FontFamily)
	assert.Equal(t, TickOut, Current().XTickDirection)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#a0cbe2")
	require.NoError(t, err)
	assert.Equal(t, &color.NRGBA{R: 0xa0, G: 0xcb, B: 0xe2, A: 0xff}, c)

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, &color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	c, err = ParseColor("Black")
	require.NoError(t, err)
	assert.Equal(t, &color.NRGBA{A: 0xff}, c)

	c, err = ParseColor("none")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = ParseColor("#12")
	assert.ErrorIs(t, err, errParamMismatch)
	_, err = ParseColor("not-a-color")
	assert.ErrorIs(t, err, errParamMismatch)

	assert.Equal(t, "#a0cbe2", Hex(MustColor("#a0cbe2")))
	assert.Equal(t, "none", Hex(nil))
}

func TestLineStyles(t *testing.T) {
	for s, want := range map[string]LineStyle{"-": Solid, "--": Dashed, ":": Dotted, "-.": DashDot, "dashed": Dashed} {
		got, err := ParseLineStyle(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLineStyle("~~")
	assert.Error(t, err)

	assert.Nil(t, Solid.Dashes(4))
	assert.InDeltaSlice(t, []float64{14.8, 6.4}, Dashed.Dashes(4), 1e-9)
	assert.InDeltaSlice(t, []float64{1, 1.65}, Dotted.Dashes(0.5), 1e-9)
	assert.Equal(t, "--", Dashed.String())
}
