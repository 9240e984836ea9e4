package figstyle

import "fmt"

// LineStyle selects a dash pattern.
type LineStyle uint8

const (
	Solid LineStyle = iota
	Dashed
	Dotted
	DashDot
	NoLine
)

// ParseLineStyle accepts the short ("-", "--", ":", "-.") and long
// ("solid", "dashed", "dotted", "dashdot") names, plus "none".
func ParseLineStyle(s string) (LineStyle, error) {
	switch s {
	case "-", "solid", "":
		return Solid, nil
	case "--", "dashed":
		return Dashed, nil
	case ":", "dotted":
		return Dotted, nil
	case "-.", "dashdot":
		return DashDot, nil
	case "none", "None", " ":
		return NoLine, nil
	}
	return Solid, fmt.Errorf("unknown line style %q", s)
}

func (l LineStyle) String() string {
	switch l {
	case Solid:
		return "-"
	case Dashed:
		return "--"
	case Dotted:
		return ":"
	case DashDot:
		return "-."
	case NoLine:
		return "none"
	default:
		return "<unknown LineStyle>"
	}
}

// unscaled patterns, in multiples of the line width
var dashPatterns = [...][]float64{
	Dashed:  {3.7, 1.6},
	Dotted:  {1, 1.65},
	DashDot: {6.4, 1.6, 1, 1.6},
}

// Dashes returns the dash array for a line of the given width,
// or nil for solid lines.
func (l LineStyle) Dashes(lineWidth float64) []float64 {
	if int(l) >= len(dashPatterns) || dashPatterns[l] == nil {
		return nil
	}
	if lineWidth < 1 {
		lineWidth = 1
	}
	out := make([]float64, len(dashPatterns[l]))
	for i, v := range dashPatterns[l] {
		out[i] = v * lineWidth
	}
	return out
}
