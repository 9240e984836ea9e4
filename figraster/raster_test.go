package figraster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func squareScene() *figdraw.Scene {
	s := figdraw.NewScene(72, 36)
	var sq figpath.Path
	sq.AddRect(10, 10, 30, 30)
	s.Add(figdraw.Shape{Path: sq, Fill: &figdraw.Paint{Color: color.NRGBA{R: 0xff, A: 0xff}, Opacity: 1}})

	var line figpath.Path
	line.AddPolyline([]float64{40, 20, 70, 20}, false)
	s.Add(figdraw.Shape{Path: line, Stroke: &figdraw.Stroke{
		Paint:         figdraw.Paint{Color: color.NRGBA{A: 0xff}, Opacity: 1},
		StrokeOptions: figdraw.StrokeOptions{LineWidth: 4},
	}})
	return s
}

func TestRasterize(t *testing.T) {
	img := Rasterize(squareScene(), 72)
	assert.Equal(t, 72, img.Bounds().Dx())
	assert.Equal(t, 36, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(20, 20)) // inside the square
	assert.Equal(t, white, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(55, 20)) // on the line
	assert.Equal(t, white, img.RGBAAt(55, 28))
}

func TestRasterizeScale(t *testing.T) {
	img := Rasterize(squareScene(), 144)
	assert.Equal(t, 144, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(40, 40))
	assert.Equal(t, white, img.RGBAAt(70, 70))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, squareScene(), 100))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestDashes(t *testing.T) {
	s := figdraw.NewScene(100, 20)
	var line figpath.Path
	line.AddPolyline([]float64{0, 10, 100, 10}, false)
	s.Add(figdraw.Shape{Path: line, Stroke: &figdraw.Stroke{
		Paint:         figdraw.Paint{Color: color.NRGBA{A: 0xff}, Opacity: 1},
		StrokeOptions: figdraw.StrokeOptions{LineWidth: 4, Dash: []float64{20, 20}},
	}})
	img := Rasterize(s, 72)
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(10, 10)) // first dash
	assert.Equal(t, white, img.RGBAAt(30, 10))               // first gap
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(50, 10))
}
