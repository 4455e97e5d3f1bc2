// Package export renders a board snapshot to files: PDF drawings, QR-coded
// labels, DXF outlines, XLSX reports and GCode toolpaths. Exporters only read
// the snapshot they are given.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/piwi3910/PillBoard/internal/engine"
	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/model"
)

// ErrNothingToExport is returned when the board holds no pills.
var ErrNothingToExport = errors.New("nothing to export: the board has no pills")

// Document is an immutable snapshot of a board handed to the exporters.
type Document struct {
	Session string // Short id printed on every page and encoded in QR codes
	Board   model.Board
	Pills   []model.Pill
	Cut     model.CutSettings
}

// NewDocument snapshots board and pills under a fresh session id.
func NewDocument(board model.Board, pills []model.Pill, cut model.CutSettings) Document {
	snapshot := make([]model.Pill, len(pills))
	copy(snapshot, pills)
	return Document{
		Session: uuid.New().String()[:8],
		Board:   board,
		Pills:   snapshot,
		Cut:     cut,
	}
}

// Stats summarises the document's pills.
func (d Document) Stats() engine.Stats {
	return engine.ComputeStats(d.Pills, d.Board)
}

func (d Document) check() error {
	if len(d.Pills) == 0 {
		return ErrNothingToExport
	}
	if !d.Board.Mounted() {
		return fmt.Errorf("cannot export a %.0fx%.0f board", d.Board.Width, d.Board.Height)
	}
	return nil
}

// Format selects an exporter.
type Format string

const (
	FormatPDF    Format = "pdf"
	FormatLabels Format = "labels"
	FormatDXF    Format = "dxf"
	FormatXLSX   Format = "xlsx"
	FormatGCode  Format = "gcode"
)

// Formats lists every supported format in menu order.
func Formats() []Format {
	return []Format{FormatPDF, FormatLabels, FormatDXF, FormatXLSX, FormatGCode}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats() {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case FormatLabels:
		return ".pdf"
	case FormatGCode:
		return ".nc"
	default:
		return "." + string(f)
	}
}

// DefaultFileName returns a file name for an export of doc in format f.
func (f Format) DefaultFileName(doc Document) string {
	base := "pillboard-" + doc.Session
	if f == FormatLabels {
		base += "-labels"
	}
	return base + f.Extension()
}

// Export writes doc to path using the exporter for format f.
func Export(f Format, path string, doc Document) error {
	switch f {
	case FormatPDF:
		return ExportPDF(path, doc)
	case FormatLabels:
		return ExportLabels(path, doc)
	case FormatDXF:
		return ExportDXF(path, doc)
	case FormatXLSX:
		return ExportXLSX(path, doc)
	case FormatGCode:
		return ExportGCode(path, doc)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// ExportGCode writes contour toolpaths for every pill using doc.Cut.
func ExportGCode(path string, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}
	code, err := gcode.New(doc.Cut).Generate(doc.Board, doc.Pills)
	if err != nil {
		return fmt.Errorf("failed to generate gcode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write gcode: %w", err)
	}
	return nil
}
