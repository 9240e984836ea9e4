package disks

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/figsvg"
	"github.com/benoitkugler/figtemplate/figure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func academic(t *testing.T) {
	figstyle.SetupAcademic()
	t.Cleanup(figstyle.Reset)
}

func TestThreePanels(t *testing.T) {
	academic(t)
	fig, err := NewFigure()
	require.NoError(t, err)
	assert.Equal(t, 0.25, fig.SubplotParams().Bottom)

	axes := fig.Axes()
	require.Len(t, axes, 3)
	for _, ax := range axes {
		xlim, ylim := ax.Limits()
		assert.Equal(t, [2]float64{-1.3, 1.3}, xlim)
		assert.Equal(t, [2]float64{-1.3, 1.3}, ylim)
		// circle, arrow, two texts and the hole
		assert.Len(t, ax.Artists(), 5)
		box := ax.Box()
		assert.InDelta(t, box.W(), box.H(), 1e-9)
	}

	var buf bytes.Buffer
	require.NoError(t, fig.Write(&buf, figure.SaveOptions{Format: figure.SVG, BBoxTight: true}))
	sum, err := figsvg.Inspect(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Axes)
	assert.Contains(t, sum.Titles, `$\partial\Delta(z_0, R)$`)
	assert.Contains(t, sum.Titles, `$z_0$`)
	assert.Less(t, sum.Width, 24*72.)
}

func TestDraw(t *testing.T) {
	academic(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "src", "chapters", "img", "fig_template_sample.pdf")

	path, err := Draw(Options{Path: target})
	require.NoError(t, err)
	assert.Equal(t, target, path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))

	// running again overwrites the file with the same content
	_, err = Draw(Options{Path: target})
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDrawFormats(t *testing.T) {
	academic(t)
	dir := t.TempDir()

	path, err := Draw(Options{Path: filepath.Join(dir, "sample.svg")})
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	sum, err := figsvg.Inspect(f)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Axes)

	path, err = Draw(Options{Path: filepath.Join(dir, "sample.png"), DPI: 20})
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG")))

	path, err = Draw(Options{Path: filepath.Join(dir, "alt.pdf"), Backend: figure.BackendContentStream})
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	_, err = Draw(Options{Path: filepath.Join(dir, "sample.bmp")})
	assert.ErrorIs(t, err, figure.ErrUnknownFormat)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "fig_template_sample.pdf", filepath.Base(DefaultPath))
	assert.Equal(t, filepath.Join("..", "src", "chapters", "img"), filepath.Dir(DefaultPath))
}
