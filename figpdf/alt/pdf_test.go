package alt

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestWrite(t *testing.T) {
	s := figdraw.NewScene(120, 80)
	var disk figpath.Path
	disk.AddCircle(40, 40, 30)
	s.Add(figdraw.Shape{
		Path: disk,
		Fill: &figdraw.Paint{Color: color.NRGBA{R: 0xa0, G: 0xcb, B: 0xe2, A: 0xff}, Opacity: 0.6},
		Stroke: &figdraw.Stroke{
			Paint:         figdraw.Paint{Color: color.NRGBA{A: 0xff}, Opacity: 0.6},
			StrokeOptions: figdraw.StrokeOptions{LineWidth: 4, Dash: []float64{14.8, 6.4}},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	page := NewPage(s)
	assert.NotEmpty(t, page.Contents)
}

func TestQuadraticElevation(t *testing.T) {
	app := contentstream.NewAppearance(10, 10)
	p := pather{pdf: &app}
	p.Start(fixed.Point26_6{})
	p.QuadBezier(fixed.P(3, 3), fixed.P(6, 0))

	require.Len(t, p.ops, 2)
	cubic, ok := p.ops[1].(contentstream.OpCubicTo)
	require.True(t, ok)
	assert.InDelta(t, 2, cubic.X1, 1e-9)
	assert.InDelta(t, 2, cubic.Y1, 1e-9)
	assert.InDelta(t, 4, cubic.X2, 1e-9)
	assert.InDelta(t, 2, cubic.Y2, 1e-9)
	assert.InDelta(t, 6, cubic.X3, 1e-9)
}

func TestOpacityStatesAreShared(t *testing.T) {
	app := contentstream.NewAppearance(10, 10)
	r := NewRenderer(&app)
	black := color.NRGBA{A: 0xff}
	for i := 0; i < 3; i++ {
		f, s := r.SetupDrawers(true, false)
		require.Nil(t, s)
		f.SetColor(black, 0.5)
	}
	assert.Len(t, r.fillOpacityStates, 1)

	_, s := r.SetupDrawers(false, true)
	s.SetColor(color.NRGBA{A: 0x80}, 1) // alpha is folded into the opacity
	assert.Len(t, r.strokeOpacityStates, 1)
}
