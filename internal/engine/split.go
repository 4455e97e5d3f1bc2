package engine

import (
	"math"

	"github.com/piwi3910/PillBoard/internal/model"
)

// splitPlan records how a single pill reacts to a split point.
type splitPlan struct {
	insideX, insideY bool
	canX, canY       bool
	splitX, splitY   float64
}

// planSplit evaluates the split rules for one pill against point p.
// Inside-ness is strict, so a point on an edge is outside that axis.
// A cut is allowed along an axis only when both resulting sides can be at
// least MinSplit; the cut line is clamped so a click near an edge still
// yields a legal piece.
func planSplit(r model.Rect, p model.Point2D) splitPlan {
	plan := splitPlan{
		insideX: r.InsideX(p.X),
		insideY: r.InsideY(p.Y),
	}
	plan.canX = plan.insideX && r.Width >= 2*model.MinSplit
	plan.canY = plan.insideY && r.Height >= 2*model.MinSplit
	if plan.canX {
		plan.splitX = model.Clamp(p.X, r.X+model.MinSplit, r.Right()-model.MinSplit)
	}
	if plan.canY {
		plan.splitY = model.Clamp(p.Y, r.Y+model.MinSplit, r.Bottom()-model.MinSplit)
	}
	return plan
}

// Split returns the sequence that results from clicking at p. Every pill that
// strictly contains p is evaluated on its own: it is cut into quadrants,
// halves, or nudged aside when it is too small to cut. Pills that do not
// contain p pass through unchanged. The input slice is never modified.
func Split(pills []model.Pill, p model.Point2D, board model.Board, ids *IDGenerator) []model.Pill {
	result := make([]model.Pill, 0, len(pills))
	for _, pill := range pills {
		result = append(result, splitPill(pill, p, board, ids)...)
	}
	return result
}

// splitPill decides the fate of a single pill: the original, a nudged copy,
// or the pieces that replace it.
func splitPill(pill model.Pill, p model.Point2D, board model.Board, ids *IDGenerator) []model.Pill {
	plan := planSplit(pill.Rect, p)
	if !plan.insideX || !plan.insideY {
		return []model.Pill{pill}
	}

	switch {
	case plan.canX && plan.canY:
		return splitQuadrants(pill, plan.splitX, plan.splitY, ids)
	case plan.canX:
		return splitVertical(pill, plan.splitX, ids)
	case plan.canY:
		return splitHorizontal(pill, plan.splitY, ids)
	default:
		return []model.Pill{nudge(pill, p, board)}
	}
}

// splitQuadrants cuts a pill at (sx, sy). Each quadrant keeps only the parent
// corner it sits on; the three others are square.
func splitQuadrants(pill model.Pill, sx, sy float64, ids *IDGenerator) []model.Pill {
	r := pill.Rect
	leftW, rightW := sx-r.X, r.Right()-sx
	topH, bottomH := sy-r.Y, r.Bottom()-sy
	c := pill.Corners

	return []model.Pill{
		piece(pill, ids, model.Rect{X: r.X, Y: r.Y, Width: leftW, Height: topH}, model.Corners{TL: c.TL}),
		piece(pill, ids, model.Rect{X: sx, Y: r.Y, Width: rightW, Height: topH}, model.Corners{TR: c.TR}),
		piece(pill, ids, model.Rect{X: r.X, Y: sy, Width: leftW, Height: bottomH}, model.Corners{BL: c.BL}),
		piece(pill, ids, model.Rect{X: sx, Y: sy, Width: rightW, Height: bottomH}, model.Corners{BR: c.BR}),
	}
}

// splitVertical cuts a pill into left and right pieces at x = sx.
func splitVertical(pill model.Pill, sx float64, ids *IDGenerator) []model.Pill {
	r := pill.Rect
	c := pill.Corners
	return []model.Pill{
		piece(pill, ids, model.Rect{X: r.X, Y: r.Y, Width: sx - r.X, Height: r.Height}, model.Corners{TL: c.TL, BL: c.BL}),
		piece(pill, ids, model.Rect{X: sx, Y: r.Y, Width: r.Right() - sx, Height: r.Height}, model.Corners{TR: c.TR, BR: c.BR}),
	}
}

// splitHorizontal cuts a pill into top and bottom pieces at y = sy.
func splitHorizontal(pill model.Pill, sy float64, ids *IDGenerator) []model.Pill {
	r := pill.Rect
	c := pill.Corners
	return []model.Pill{
		piece(pill, ids, model.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: sy - r.Y}, model.Corners{TL: c.TL, TR: c.TR}),
		piece(pill, ids, model.Rect{X: r.X, Y: sy, Width: r.Width, Height: r.Bottom() - sy}, model.Corners{BL: c.BL, BR: c.BR}),
	}
}

// piece builds a child of parent with a fresh id and the parent's color.
func piece(parent model.Pill, ids *IDGenerator, r model.Rect, corners model.Corners) model.Pill {
	return model.Pill{
		ID:      ids.Next(),
		Rect:    r,
		Color:   parent.Color,
		Corners: corners,
	}
}

// nudge moves a pill that is too small to cut out from under p. Each axis on
// which p is inside but cutting is not allowed is handled independently.
// A point in the left (top) half sends the pill fully to the left of (above)
// p, otherwise fully to the right (below), with NudgeGap between them.
// The result stays on the board.
func nudge(pill model.Pill, p model.Point2D, board model.Board) model.Pill {
	r := pill.Rect
	plan := planSplit(r, p)

	if plan.insideX && !plan.canX {
		if p.X < r.X+r.Width/2 {
			r.X = math.Max(0, p.X-r.Width-model.NudgeGap)
		} else {
			r.X = p.X + model.NudgeGap
		}
		r.X = model.Clamp(r.X, 0, board.Width-r.Width)
	}
	if plan.insideY && !plan.canY {
		if p.Y < r.Y+r.Height/2 {
			r.Y = math.Max(0, p.Y-r.Height-model.NudgeGap)
		} else {
			r.Y = p.Y + model.NudgeGap
		}
		r.Y = model.Clamp(r.Y, 0, board.Height-r.Height)
	}

	pill.Rect = r
	return pill
}
