package figdraw

import "github.com/benoitkugler/figtemplate/figpath"

// Group is a named subset of a scene, such as the content of one axes.
type Group struct {
	ID, Class string
}

// Shape binds a style to a path. Fill or Stroke may be nil.
type Shape struct {
	Path   figpath.Path
	Fill   *Paint
	Stroke *Stroke

	EvenOdd    bool   // use the even-odd rule instead of non zero winding
	Title      string // optional description, kept by annotating drivers
	Group      int    // index in Scene.Groups, or -1
	Background bool   // covers the whole page, ignored by Bounds and resized by Crop
}

// Scene is an ordered list of shapes, in page coordinates (points, y down).
type Scene struct {
	Width, Height float64
	Groups        []Group
	Shapes        []Shape

	current int // group of the next shapes
}

// NewScene returns an empty scene of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{Width: width, Height: height, current: -1}
}

// BeginGroup starts a new group: every shape added until EndGroup belongs to it.
func (s *Scene) BeginGroup(g Group) {
	s.Groups = append(s.Groups, g)
	s.current = len(s.Groups) - 1
}

// EndGroup closes the current group.
func (s *Scene) EndGroup() { s.current = -1 }

// Add appends a shape to the current group.
// Shapes with neither fill nor stroke are ignored.
func (s *Scene) Add(sh Shape) {
	if sh.Fill == nil && sh.Stroke == nil || len(sh.Path) == 0 {
		return
	}
	sh.Group = s.current
	s.Shapes = append(s.Shapes, sh)
}

// Bounds returns the extent of the non background shapes,
// including the stroke width.
func (s *Scene) Bounds() figpath.Rect {
	box := figpath.EmptyRect()
	for _, sh := range s.Shapes {
		if sh.Background {
			continue
		}
		b := sh.Path.Bounds()
		if sh.Stroke != nil {
			b = b.Outset(sh.Stroke.LineWidth / 2)
		}
		box = box.Union(b)
	}
	return box
}

// Crop returns a new scene restricted to r: shapes are
// translated so that r's top left corner becomes the origin.
func (s *Scene) Crop(r figpath.Rect) *Scene {
	out := NewScene(r.W(), r.H())
	out.Groups = append(out.Groups, s.Groups...)
	out.Shapes = make([]Shape, len(s.Shapes))
	for i, sh := range s.Shapes {
		if sh.Background {
			var page figpath.Path
			page.AddRect(0, 0, out.Width, out.Height)
			sh.Path = page
		} else {
			sh.Path = sh.Path.Translate(-r.X0, -r.Y0)
		}
		out.Shapes[i] = sh
	}
	return out
}

// Draw replays the scene on the driver `d`.
func (s *Scene) Draw(d Driver) {
	annotator, _ := d.(Annotator)
	group := -1
	for _, sh := range s.Shapes {
		if annotator != nil && sh.Group != group {
			if group != -1 {
				annotator.EndGroup()
			}
			if sh.Group != -1 {
				annotator.BeginGroup(s.Groups[sh.Group])
			}
			group = sh.Group
		}
		if annotator != nil && sh.Title != "" {
			annotator.SetTitle(sh.Title)
		}
		sh.draw(d)
	}
	if annotator != nil && group != -1 {
		annotator.EndGroup()
	}
}

func (sh *Shape) draw(d Driver) {
	filler, stroker := d.SetupDrawers(sh.Fill != nil, sh.Stroke != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(!sh.EvenOdd)
		sh.Path.AddTo(filler)
		filler.SetColor(sh.Fill.Color, sh.Fill.Opacity)
		filler.Draw()
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()
		stroker.SetStrokeOptions(sh.Stroke.StrokeOptions)
		sh.Path.AddTo(stroker)
		stroker.SetColor(sh.Stroke.Color, sh.Stroke.Opacity)
		stroker.Draw()
	}
}
