// Package figsvg writes scenes as SVG documents, keeping
// their structure (one group per axes, label sources as titles),
// and reads back a summary of such documents.
package figsvg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ figdraw.Driver    = (*Writer)(nil)
	_ figdraw.Annotator = (*Writer)(nil)
	_ figdraw.Filler    = (*filler)(nil)
	_ figdraw.Stroker   = (*stroker)(nil)
)

// Writer is a driver emitting SVG elements.
// Errors are sticky: the first one is returned by Close.
type Writer struct {
	w     *bufio.Writer
	err   error
	title string // for the next element
	depth int
}

// NewWriter starts a document of the given size, in points.
func NewWriter(w io.Writer, width, height float64) *Writer {
	out := &Writer{w: bufio.NewWriter(w), depth: 1}
	out.printf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`+"\n"+
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%spt" height="%spt" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	return out
}

// Write renders the scene as a standalone SVG document.
func Write(w io.Writer, scene *figdraw.Scene) error {
	out := NewWriter(w, scene.Width, scene.Height)
	scene.Draw(out)
	return out.Close()
}

// Close terminates the document.
func (sw *Writer) Close() error {
	for sw.depth > 1 {
		sw.EndGroup()
	}
	sw.printf("</svg>\n")
	if sw.err != nil {
		return sw.err
	}
	return sw.w.Flush()
}

func (sw *Writer) printf(format string, args ...interface{}) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

func (sw *Writer) indent() string { return strings.Repeat(" ", sw.depth) }

func (sw *Writer) BeginGroup(g figdraw.Group) {
	sw.printf(`%s<g`, sw.indent())
	if g.ID != "" {
		sw.printf(` id="%s"`, escape(g.ID))
	}
	if g.Class != "" {
		sw.printf(` class="%s"`, escape(g.Class))
	}
	sw.printf(">\n")
	sw.depth++
}

func (sw *Writer) EndGroup() {
	if sw.depth <= 1 {
		return
	}
	sw.depth--
	sw.printf("%s</g>\n", sw.indent())
}

func (sw *Writer) SetTitle(title string) { sw.title = title }

func (sw *Writer) SetupDrawers(willFill, willStroke bool) (f figdraw.Filler, s figdraw.Stroker) {
	el := &element{sw: sw}
	if willFill {
		f = &filler{element: el, emit: !willStroke}
	}
	if willStroke {
		s = &stroker{element: el, recordPath: !willFill}
	}
	return f, s
}

// element accumulates the attributes of one <path>
type element struct {
	sw     *Writer
	path   figpath.Path
	fill   string // attributes
	stroke string
}

func (el *element) write() {
	sw := el.sw
	fill := el.fill
	if fill == "" {
		fill = ` fill="none"`
	}
	sw.printf(`%s<path d="%s"%s%s`, sw.indent(), el.path.ToSVGPath(), fill, el.stroke)
	if sw.title != "" {
		sw.printf("><title>%s</title></path>\n", escape(sw.title))
		sw.title = ""
	} else {
		sw.printf("/>\n")
	}
}

func colorAttrs(kind string, c color.NRGBA, opacity float64) string {
	opacity *= float64(c.A) / 255
	s := fmt.Sprintf(` %s="#%02x%02x%02x"`, kind, c.R, c.G, c.B)
	if opacity < 1 {
		s += fmt.Sprintf(` %s-opacity="%s"`, kind, num(opacity))
	}
	return s
}

type filler struct {
	*element
	evenOdd bool
	emit    bool // false when a stroke follows
}

func (f *filler) Clear() { f.path.Clear() }

func (f *filler) Start(a fixed.Point26_6) { f.path.Start(a) }

func (f *filler) Line(b fixed.Point26_6) { f.path.Line(b) }

func (f *filler) QuadBezier(b, c fixed.Point26_6) { f.path.QuadBezier(b, c) }

func (f *filler) CubeBezier(b, c, d fixed.Point26_6) { f.path.CubeBezier(b, c, d) }

func (f *filler) Stop(closeLoop bool) { f.path.Stop(closeLoop) }

func (f *filler) SetWinding(useNonZeroWinding bool) { f.evenOdd = !useNonZeroWinding }

func (f *filler) SetColor(c color.NRGBA, opacity float64) {
	f.fill = colorAttrs("fill", c, opacity)
}

func (f *filler) Draw() {
	if f.evenOdd {
		f.fill += ` fill-rule="evenodd"`
	}
	if f.emit {
		f.write()
	}
}

type stroker struct {
	*element
	recordPath bool // false when the path is recorded by the filler
}

func (s *stroker) Clear() {
	if s.recordPath {
		s.path.Clear()
	}
}

func (s *stroker) Start(a fixed.Point26_6) {
	if s.recordPath {
		s.path.Start(a)
	}
}

func (s *stroker) Line(b fixed.Point26_6) {
	if s.recordPath {
		s.path.Line(b)
	}
}

func (s *stroker) QuadBezier(b, c fixed.Point26_6) {
	if s.recordPath {
		s.path.QuadBezier(b, c)
	}
}

func (s *stroker) CubeBezier(b, c, d fixed.Point26_6) {
	if s.recordPath {
		s.path.CubeBezier(b, c, d)
	}
}

func (s *stroker) Stop(closeLoop bool) {
	if s.recordPath {
		s.path.Stop(closeLoop)
	}
}

func (s *stroker) SetStrokeOptions(o figdraw.StrokeOptions) {
	var sb strings.Builder
	fmt.Fprintf(&sb, ` stroke-width="%s"`, num(o.LineWidth))
	if o.Cap != figdraw.ButtCap {
		fmt.Fprintf(&sb, ` stroke-linecap="%s"`, o.Cap)
	}
	if o.Join != figdraw.Miter {
		fmt.Fprintf(&sb, ` stroke-linejoin="%s"`, o.Join)
	}
	if len(o.Dash) != 0 {
		values := make([]string, len(o.Dash))
		for i, v := range o.Dash {
			values[i] = num(v)
		}
		fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, strings.Join(values, ","))
		if o.DashOffset != 0 {
			fmt.Fprintf(&sb, ` stroke-dashoffset="%s"`, num(o.DashOffset))
		}
	}
	s.stroke = sb.String()
}

func (s *stroker) SetColor(c color.NRGBA, opacity float64) {
	s.stroke = colorAttrs("stroke", c, opacity) + s.stroke
}

func (s *stroker) Draw() { s.write() }

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
