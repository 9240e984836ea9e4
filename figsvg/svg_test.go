package figsvg

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScene() *figdraw.Scene {
	s := figdraw.NewScene(300, 100)
	black := color.NRGBA{A: 0xff}
	var page figpath.Path
	page.AddRect(0, 0, 300, 100)
	s.Add(figdraw.Shape{Path: page, Fill: &figdraw.Paint{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Opacity: 1}, Background: true})
	for i, label := range []string{`$a$`, `$b < c$`, `$d$`} {
		s.BeginGroup(figdraw.Group{ID: "axes_" + string(rune('1'+i)), Class: "axes"})
		var disk figpath.Path
		disk.AddCircle(50+100*float64(i), 50, 30)
		s.Add(figdraw.Shape{
			Path: disk,
			Fill: &figdraw.Paint{Color: color.NRGBA{R: 0xa0, G: 0xcb, B: 0xe2, A: 0xff}, Opacity: 0.6},
			Stroke: &figdraw.Stroke{
				Paint:         figdraw.Paint{Color: black, Opacity: 0.6},
				StrokeOptions: figdraw.StrokeOptions{LineWidth: 4, Dash: []float64{14.8, 6.4}},
			},
		})
		var glyph figpath.Path
		glyph.AddRect(40+100*float64(i), 90, 60+100*float64(i), 95)
		s.Add(figdraw.Shape{Path: glyph, Fill: &figdraw.Paint{Color: black, Opacity: 1}, Title: label})
		s.EndGroup()
	}
	return s
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleScene()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `viewBox="0 0 300 100"`)
	assert.Contains(t, out, `<g id="axes_1" class="axes">`)
	assert.Contains(t, out, `fill="#a0cbe2" fill-opacity="0.6" stroke="#000000" stroke-opacity="0.6" stroke-width="4" stroke-dasharray="14.8,6.4"`)
	assert.Contains(t, out, `<title>$b &lt; c$</title>`)
	// one element per shape, even when filled and stroked
	assert.Equal(t, 7, strings.Count(out, "<path "))
}

func TestInspectRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleScene()))

	sum, err := Inspect(&buf)
	require.NoError(t, err)
	assert.Equal(t, 300., sum.Width)
	assert.Equal(t, 100., sum.Height)
	assert.Equal(t, 3, sum.Axes)
	assert.Equal(t, 3, sum.Groups)
	assert.Equal(t, 7, sum.Paths)
	assert.Equal(t, []string{"$a$", "$b < c$", "$d$"}, sum.Titles)
}

func TestInspectCharset(t *testing.T) {
	// "é" encoded in latin-1
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<svg width=\"10pt\" height=\"20pt\"><g class=\"figure axes\"><path d=\"M0,0\"><title>caf\xe9</title></path></g></svg>"
	sum, err := Inspect(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 10., sum.Width)
	assert.Equal(t, 20., sum.Height)
	assert.Equal(t, 1, sum.Axes)
	assert.Equal(t, []string{"café"}, sum.Titles)
}

func TestInspectErrors(t *testing.T) {
	_, err := Inspect(strings.NewReader(""))
	assert.ErrorIs(t, err, errInvalidSVG)

	_, err = Inspect(strings.NewReader("<svg><g></svg>"))
	assert.ErrorIs(t, err, errInvalidSVG)

	_, err = Inspect(strings.NewReader(`<svg width="abc"></svg>`))
	assert.ErrorIs(t, err, errInvalidSVG)
}
