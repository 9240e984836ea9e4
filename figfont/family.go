package figfont

import (
	"sync"

	"github.com/benoitkugler/figtemplate/figpath"
)

// Family groups the upright and italic faces used to typeset labels.
type Family struct {
	faces [2]*Face

	mu  sync.Mutex
	ink map[inkKey][2]float64 // at unit size
}

type inkKey struct {
	r     rune
	slant Slant
}

// ResolveFamily resolves both slants of the first available family.
func ResolveFamily(families []string) (*Family, error) {
	regular, err := Resolve(families, Regular)
	if err != nil {
		return nil, err
	}
	italic, err := Resolve(families, Italic)
	if err != nil {
		return nil, err
	}
	return &Family{faces: [2]*Face{regular, italic}, ink: make(map[inkKey][2]float64)}, nil
}

// Face returns the face for the given slant.
func (f *Family) Face(s Slant) *Face { return f.faces[s] }

// Advance returns the advance width of r.
func (f *Family) Advance(r rune, s Slant, size float64) float64 {
	return f.faces[s].Advance(r, size)
}

// measure size used for the ink extents, scaled afterwards
const inkSize = 100

// InkExtent returns the height of r above and below the baseline.
func (f *Family) InkExtent(r rune, s Slant, size float64) (ascent, descent float64) {
	key := inkKey{r, s}
	f.mu.Lock()
	ext, ok := f.ink[key]
	f.mu.Unlock()
	if !ok {
		outline, err := f.faces[s].Outline(r, inkSize, 0, 0)
		if err == nil && len(outline) != 0 {
			b := outline.Bounds()
			ext = [2]float64{-b.Y0 / inkSize, b.Y1 / inkSize}
		}
		f.mu.Lock()
		f.ink[key] = ext
		f.mu.Unlock()
	}
	return ext[0] * size, ext[1] * size
}

// Outline returns r as a path whose origin is (x, y).
func (f *Family) Outline(r rune, s Slant, size, x, y float64) (figpath.Path, error) {
	return f.faces[s].Outline(r, size, x, y)
}
