// Package figfont resolves font families to parsed font files
// and converts glyphs to vector outlines, so that text
// can be drawn by every backend as plain filled paths.
package figfont

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/benoitkugler/figtemplate/figpath"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Slant selects the upright or italic member of a family.
type Slant uint8

const (
	Regular Slant = iota
	Italic
)

func (s Slant) String() string {
	if s == Italic {
		return "italic"
	}
	return "regular"
}

// Metrics are vertical font metrics, in points,
// for a given size. Descent is positive.
type Metrics struct {
	Ascent, Descent, Height float64
}

// Face is a parsed font, usable at any size.
// It is safe for concurrent use.
type Face struct {
	Name     string // family name, as requested
	Fallback bool   // true if Name was not found and a builtin font is used

	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer
}

func toFixed(size float64) fixed.Int26_6 { return fixed.Int26_6(size * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

func (f *Face) index(r rune) sfnt.GlyphIndex {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return idx
}

// HasGlyph returns true if the font defines r.
func (f *Face) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index(r) != 0
}

// Advance returns the horizontal advance of r at size.
func (f *Face) Advance(r rune, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.font.GlyphAdvance(&f.buf, f.index(r), toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// Kern returns the kerning adjustment between a and b at size.
func (f *Face) Kern(a, b rune, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, err := f.font.Kern(&f.buf, f.index(a), f.index(b), toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// Metrics returns the vertical metrics at size.
func (f *Face) Metrics(size float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.font.Metrics(&f.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{Ascent: 0.8 * size, Descent: 0.2 * size, Height: 1.2 * size}
	}
	return Metrics{Ascent: fromFixed(m.Ascent), Descent: fromFixed(m.Descent), Height: fromFixed(m.Height)}
}

// Outline returns the glyph r at size, with its origin (on the baseline)
// at (x, y), in a y-down frame.
func (f *Face) Outline(r rune, size, x, y float64) (figpath.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	segments, err := f.font.LoadGlyph(&f.buf, f.index(r), toFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("loading glyph %q: %w", r, err)
	}
	origin := figpath.ToFixedP(x, y)
	var out figpath.Path
	started := false
	for _, seg := range segments {
		var args [3]fixed.Point26_6
		for i, a := range seg.Args {
			args[i] = a.Add(origin)
		}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				out.Stop(true)
			}
			out.Start(args[0])
			started = true
		case sfnt.SegmentOpLineTo:
			out.Line(args[0])
		case sfnt.SegmentOpQuadTo:
			out.QuadBezier(args[0], args[1])
		case sfnt.SegmentOpCubeTo:
			out.CubeBezier(args[0], args[1], args[2])
		}
	}
	if started {
		out.Stop(true)
	}
	return out, nil
}

type faceKey struct {
	families string
	slant    Slant
}

var (
	cacheMu sync.Mutex
	cache   = map[faceKey]*Face{}

	builtinOnce sync.Once
	builtin     [2]*sfnt.Font
	builtinErr  error
)

func loadBuiltin() {
	builtin[Regular], builtinErr = sfnt.Parse(goregular.TTF)
	if builtinErr != nil {
		return
	}
	builtin[Italic], builtinErr = sfnt.Parse(goitalic.TTF)
}

// Resolve returns the first family of `families` available on the system,
// or the builtin Go font if none is found (a warning is logged).
// Resolved faces are cached.
func Resolve(families []string, slant Slant) (*Face, error) {
	key := faceKey{strings.Join(families, ","), slant}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if face, ok := cache[key]; ok {
		return face, nil
	}

	for _, family := range families {
		path, ok := lookup(family, slant)
		if !ok {
			continue
		}
		fnt, err := parseFile(path)
		if err != nil {
			slog.Warn("can't parse font file", "path", path, "err", err)
			continue
		}
		slog.Debug("resolved font", "family", family, "slant", slant, "path", path)
		face := &Face{Name: family, font: fnt}
		cache[key] = face
		return face, nil
	}

	builtinOnce.Do(loadBuiltin)
	if builtinErr != nil {
		return nil, fmt.Errorf("loading builtin font: %w", builtinErr)
	}
	slog.Warn("font family not found, falling back", "families", families, "slant", slant, "fallback", "Go")
	face := &Face{Name: "Go", Fallback: true, font: builtin[slant]}
	cache[key] = face
	return face, nil
}

// ResetCache drops the resolved faces and the font directory index.
func ResetCache() {
	cacheMu.Lock()
	cache = map[faceKey]*Face{}
	cacheMu.Unlock()
	resetIndex()
}
