package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/PillBoard/internal/model"
)

// Clearance describes a pill whose toolpath cannot be cut cleanly: either the
// tool would cut into a neighbouring pill, or the contour leaves the sheet.
type Clearance struct {
	Pill     model.PillID
	Other    model.PillID // NoPill when the problem is the sheet edge
	Distance float64      // Gap in mm between the pills or to the sheet edge
}

// CheckClearance reports pill pairs closer than one tool diameter and pills
// closer than one tool radius to the sheet edge. Gaps are measured between
// bounding rectangles, so overlapping pills report a distance of 0.
func CheckClearance(board model.Board, pills []model.Pill, settings model.CutSettings) []Clearance {
	scale := settings.Scale
	if scale <= 0 {
		return nil
	}
	tool := settings.ToolDiameter
	var out []Clearance

	for i, p := range pills {
		if gap := edgeGap(board, p.Rect) * scale; gap < tool/2 {
			out = append(out, Clearance{Pill: p.ID, Distance: gap})
		}
		for _, q := range pills[i+1:] {
			if gap := rectGap(p.Rect, q.Rect) * scale; gap < tool {
				out = append(out, Clearance{Pill: p.ID, Other: q.ID, Distance: gap})
			}
		}
	}
	return out
}

// rectGap returns the shortest distance between two rectangles, 0 when they
// touch or overlap.
func rectGap(a, b model.Rect) float64 {
	dx := math.Max(0, math.Max(a.X-b.Right(), b.X-a.Right()))
	dy := math.Max(0, math.Max(a.Y-b.Bottom(), b.Y-a.Bottom()))
	return math.Sqrt(dx*dx + dy*dy)
}

// edgeGap returns the distance from r to the nearest board edge.
func edgeGap(board model.Board, r model.Rect) float64 {
	return math.Min(
		math.Min(r.X, board.Width-r.Right()),
		math.Min(r.Y, board.Height-r.Bottom()),
	)
}

// FormatClearanceWarnings produces human-readable warning messages.
func FormatClearanceWarnings(cs []Clearance) []string {
	var warnings []string
	for _, c := range cs {
		if c.Other == model.NoPill {
			warnings = append(warnings, fmt.Sprintf(
				"pill #%d is %.1f mm from the sheet edge, the tool will leave the stock", c.Pill, c.Distance))
			continue
		}
		warnings = append(warnings, fmt.Sprintf(
			"pills #%d and #%d are %.1f mm apart, closer than the tool diameter", c.Pill, c.Other, c.Distance))
	}
	return warnings
}
