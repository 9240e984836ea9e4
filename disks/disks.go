// Package disks draws the sample figure of the chapter template:
// a punctured open disk, a punctured closed disk and a circle boundary,
// side by side, annotated with their radius and center.
package disks

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/figure"
)

// DefaultPath is where the figure is saved, relative to the working directory.
var DefaultPath = filepath.Join("..", "src", "chapters", "img", "fig_template_sample.pdf")

const (
	radius = 1.0
	limit  = 1.3

	mathFontSize  = 40
	labelFontSize = 30

	circleWidth = 4
	arrowWidth  = 3
	holeSize    = 250 // marker area, in points²
	holeWidth   = 3
	overlay     = 20 // z-order of the annotations
)

var (
	center     = [2]float64{0, 0}
	arrowStart = [2]float64{0.2, 0}
	arrowEnd   = [2]float64{0.9, 0}

	fillColor = figstyle.MustColor("#a0cbe2")
	edgeColor = figstyle.MustColor("black")
	textColor = figstyle.MustColor("black")
	holeColor = figstyle.MustColor("white")
)

// panel describes one of the three diagrams.
type panel struct {
	label string
	fill  bool
	style figstyle.LineStyle
}

var panels = [...]panel{
	{`$\Delta^{*}(z_0, R)$`, true, figstyle.Dashed},      // punctured open disk
	{`$\bar{\Delta}^{*}(z_0, R)$`, true, figstyle.Solid}, // punctured closed disk
	{`$\partial\Delta(z_0, R)$`, false, figstyle.Solid},  // boundary
}

// Options control where and how the figure is saved.
type Options struct {
	// Path defaults to DefaultPath.
	Path    string
	Format  figure.Format
	Backend figure.Backend
	DPI     float64
}

// NewFigure builds the three diagrams, using the current style parameters.
func NewFigure() (*figure.Figure, error) {
	fig, axes := figure.Subplots(1, len(panels), [2]float64{24, 10})
	for i, ax := range axes {
		if err := drawPanel(ax, panels[i]); err != nil {
			return nil, err
		}
	}
	sp := fig.SubplotParams()
	sp.Bottom = 0.25
	if err := fig.SubplotsAdjust(sp); err != nil {
		return nil, err
	}
	return fig, nil
}

func drawPanel(ax *figure.Axes, p panel) error {
	props := figure.PatchProps{EdgeColor: edgeColor, LineStyle: p.style, LineWidth: circleWidth}
	if p.fill {
		props.FaceColor = fillColor
	}
	circle := ax.AddPatch(figure.NewCircle(center, radius, props))
	if p.fill {
		circle.SetAlpha(0.6)
	} else {
		circle.SetAlpha(1)
	}

	// radius
	arrow := ax.Annotate("", arrowEnd, arrowStart, &figure.ArrowProps{
		Style: figure.ArrowBoth, Color: edgeColor, LineWidth: arrowWidth,
	})
	arrow.SetZOrder(overlay)
	ax.Text((arrowStart[0]+arrowEnd[0])/2, -0.2, `$R$`, figure.TextProps{
		HA: figure.Center, VA: figure.Top, FontSize: labelFontSize, Color: textColor,
	}).SetZOrder(overlay)

	// center hole
	ax.Scatter(center[:1], center[1:], figure.ScatterProps{
		FaceColor: holeColor, EdgeColor: edgeColor, Size: holeSize, LineWidth: holeWidth,
	}).SetZOrder(overlay)
	ax.Text(center[0], center[1]+0.2, `$z_0$`, figure.TextProps{
		HA: figure.Center, VA: figure.Bottom, FontSize: labelFontSize, Color: textColor,
	}).SetZOrder(overlay)

	// caption below the diagram
	ax.SetTitle(p.label, mathFontSize, -0.2)

	if err := ax.SetXLim(-limit, limit); err != nil {
		return err
	}
	if err := ax.SetYLim(-limit, limit); err != nil {
		return err
	}
	ax.SetAspect(figure.AspectEqual)
	ax.AxisOff()
	return nil
}

// Draw builds the figure and saves it with a tight bounding box,
// creating the parent directory if needed. It returns the written path.
func Draw(opts Options) (string, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	fig, err := NewFigure()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	err = fig.Savefig(path, figure.SaveOptions{
		Format:    opts.Format,
		Backend:   opts.Backend,
		DPI:       opts.DPI,
		BBoxTight: true,
	})
	if err != nil {
		return "", err
	}
	slog.Debug("sample figure drawn", "path", path, "panels", len(panels))
	return path, nil
}
