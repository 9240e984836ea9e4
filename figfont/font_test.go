package figfont

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func withDirs(t *testing.T, dirs []string) {
	SetSearchDirs(dirs)
	ResetCache()
	t.Cleanup(func() {
		SetSearchDirs(nil)
		ResetCache()
	})
}

func TestFallbackToBuiltin(t *testing.T) {
	withDirs(t, []string{t.TempDir()})

	face, err := Resolve([]string{"Times New Roman", "Computer Modern Roman"}, Italic)
	require.NoError(t, err)
	assert.True(t, face.Fallback)
	assert.Equal(t, "Go", face.Name)

	again, err := Resolve([]string{"Times New Roman", "Computer Modern Roman"}, Italic)
	require.NoError(t, err)
	assert.Same(t, face, again)
}

func TestResolveFromDirectory(t *testing.T) {
	dir := t.TempDir()
	// any valid font file will do, the lookup is by file name
	require.NoError(t, os.WriteFile(filepath.Join(dir, "times.ttf"), goregular.TTF, 0o644))
	withDirs(t, []string{dir})

	face, err := Resolve([]string{"Times New Roman"}, Regular)
	require.NoError(t, err)
	assert.False(t, face.Fallback)
	assert.Equal(t, "Times New Roman", face.Name)

	// no italic file: fallback
	face, err = Resolve([]string{"Times New Roman"}, Italic)
	require.NoError(t, err)
	assert.True(t, face.Fallback)
}

func TestGlyphs(t *testing.T) {
	withDirs(t, []string{t.TempDir()})
	face, err := Resolve([]string{"serif"}, Regular)
	require.NoError(t, err)

	for _, r := range "RzΔ∂*" {
		assert.True(t, face.HasGlyph(r), "missing %q", r)
	}

	adv := face.Advance('R', 30)
	assert.Greater(t, adv, 10.)
	assert.Less(t, adv, 30.)
	assert.InDelta(t, 2*face.Advance('R', 15), adv, 0.1)

	m := face.Metrics(30)
	assert.Greater(t, m.Ascent, 15.)
	assert.Greater(t, m.Descent, 0.)

	outline, err := face.Outline('R', 30, 100, 200)
	require.NoError(t, err)
	require.NotEmpty(t, outline)
	b := outline.Bounds()
	// the glyph sits on the baseline, above it in a y-down frame
	assert.InDelta(t, 200, b.Y1, 0.5)
	assert.Less(t, b.Y0, 200.)
	assert.GreaterOrEqual(t, b.X0, 100.)

	space, err := face.Outline(' ', 30, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, space)
}
