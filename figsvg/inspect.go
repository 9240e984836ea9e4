package figsvg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

var errInvalidSVG = errors.New("invalid svg document")

// Summary describes the structure of an SVG document.
type Summary struct {
	Width, Height float64 // in user units
	Axes          int     // number of groups with the "axes" class
	Groups        int
	Paths         int
	Titles        []string // label sources, in document order
}

// Inspect reads an SVG document and summarizes its content.
func Inspect(r io.Reader) (Summary, error) {
	var (
		out     Summary
		seenSVG bool
		inTitle bool
		depth   int
	)
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenSVG {
					return out, errInvalidSVG
				}
				break
			}
			return out, fmt.Errorf("%w: %s", errInvalidSVG, err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			depth++
			switch se.Name.Local {
			case "svg":
				if seenSVG {
					continue
				}
				seenSVG = true
				out.Width, out.Height, err = readSize(se.Attr)
				if err != nil {
					return out, err
				}
			case "g":
				out.Groups++
				for _, class := range strings.Fields(attr(se.Attr, "class")) {
					if class == "axes" {
						out.Axes++
						break
					}
				}
			case "path":
				out.Paths++
			case "title":
				inTitle = true
				out.Titles = append(out.Titles, "")
			}
		case xml.EndElement:
			depth--
			if se.Name.Local == "title" {
				inTitle = false
			}
		case xml.CharData:
			if inTitle {
				out.Titles[len(out.Titles)-1] += string(se)
			}
		}
	}
	if depth != 0 {
		return out, errInvalidSVG
	}
	return out, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// readSize uses the viewBox if present, then the width and height attributes.
func readSize(attrs []xml.Attr) (w, h float64, err error) {
	if vb := strings.Fields(strings.ReplaceAll(attr(attrs, "viewBox"), ",", " ")); len(vb) == 4 {
		w, err = strconv.ParseFloat(vb[2], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: viewBox: %s", errInvalidSVG, err)
		}
		h, err = strconv.ParseFloat(vb[3], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: viewBox: %s", errInvalidSVG, err)
		}
		return w, h, nil
	}
	w, err = readLength(attr(attrs, "width"))
	if err != nil {
		return 0, 0, err
	}
	h, err = readLength(attr(attrs, "height"))
	return w, h, err
}

// readLength strips the unit of a length
func readLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	v = strings.TrimRight(v, "abcdefghijklmnopqrstuvwxyz%")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: length %q", errInvalidSVG, v)
	}
	return f, nil
}
