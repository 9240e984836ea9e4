package figure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpdf"
	"github.com/benoitkugler/figtemplate/figpdf/alt"
	"github.com/benoitkugler/figtemplate/figraster"
	"github.com/benoitkugler/figtemplate/figsvg"
)

var (
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrUnknownBackend = errors.New("unknown PDF backend")
	ErrEmptyFigure    = errors.New("nothing to draw")
)

// Format is an output file format.
type Format string

const (
	PDF Format = "pdf"
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts a format name or a file extension, case insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PDF, SVG, PNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Backend selects the PDF writer.
type Backend string

const (
	// BackendGofpdf uses github.com/jung-kurt/gofpdf
	BackendGofpdf Backend = "gofpdf"
	// BackendContentStream uses github.com/benoitkugler/pdf
	BackendContentStream Backend = "contentstream"
)

// ParseBackend validates a backend name. The empty string selects the default backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(s)); b {
	case "":
		return BackendGofpdf, nil
	case BackendGofpdf, BackendContentStream:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// default padding around tight bounding boxes, in inches
const defaultPadInches = 0.1

// SaveOptions control how a figure is written.
type SaveOptions struct {
	// Format is deduced from the file extension when empty.
	Format Format
	// Backend is only used for PDF output (default to gofpdf).
	Backend Backend
	// DPI is only used for raster output. Zero means the figure DPI.
	DPI float64
	// BBoxTight crops the page around the drawn elements,
	// plus PadInches on each side.
	BBoxTight bool
	// PadInches is the padding of tight bounding boxes; zero means 0.1 inch,
	// a negative value no padding.
	PadInches float64
}

// Scene renders the figure, applying the bounding box option.
func (f *Figure) Scene(opts SaveOptions) (*figdraw.Scene, error) {
	scene, err := f.Render()
	if err != nil {
		return nil, err
	}
	if !opts.BBoxTight {
		return scene, nil
	}
	bounds := scene.Bounds()
	if bounds.IsEmpty() {
		return nil, ErrEmptyFigure
	}
	pad := opts.PadInches
	if pad == 0 {
		pad = defaultPadInches
	} else if pad < 0 {
		pad = 0
	}
	return scene.Crop(bounds.Outset(pad * pointsPerInch)), nil
}

// Write renders the figure to w. opts.Format must be set.
func (f *Figure) Write(w io.Writer, opts SaveOptions) error {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return err
	}
	backend, err := ParseBackend(string(opts.Backend))
	if err != nil {
		return err
	}
	scene, err := f.Scene(opts)
	if err != nil {
		return err
	}
	switch format {
	case SVG:
		return figsvg.Write(w, scene)
	case PNG:
		dpi := opts.DPI
		if dpi <= 0 {
			dpi = f.params.DPI
		}
		return figraster.WritePNG(w, scene, dpi)
	default:
		if backend == BackendContentStream {
			return alt.Write(w, scene)
		}
		return figpdf.Write(w, scene)
	}
}

// Savefig writes the figure to the file `path`, which is overwritten.
// The parent directory must exist.
func (f *Figure) Savefig(path string, opts SaveOptions) error {
	if opts.Format == "" {
		format, err := ParseFormat(filepath.Ext(path))
		if err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		opts.Format = format
	}
	// render fully before touching the file
	var buf bytes.Buffer
	if err := f.Write(&buf, opts); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	slog.Debug("figure saved", "path", path, "format", opts.Format, "bytes", buf.Len())
	return nil
}
