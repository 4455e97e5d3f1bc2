package engine

import (
	"math"

	"github.com/piwi3910/PillBoard/internal/model"
)

// PreviewRect returns the rectangle a draw gesture from start to cursor
// would produce: each side at least MinPill, anchored at the smaller of the
// two coordinates, and pulled back onto the board.
func PreviewRect(start, cursor model.Point2D, board model.Board) model.Rect {
	w := math.Max(math.Abs(cursor.X-start.X), model.MinPill)
	h := math.Max(math.Abs(cursor.Y-start.Y), model.MinPill)
	return model.Rect{
		X:      model.Clamp(math.Min(start.X, cursor.X), 0, board.Width-w),
		Y:      model.Clamp(math.Min(start.Y, cursor.Y), 0, board.Height-h),
		Width:  w,
		Height: h,
	}
}

// pastThreshold reports whether the pointer has travelled far enough from
// the draw start for a preview to appear.
func pastThreshold(start, cursor model.Point2D) bool {
	return math.Abs(cursor.X-start.X) >= model.MinPill ||
		math.Abs(cursor.Y-start.Y) >= model.MinPill
}

// DragPosition returns the top-left a dragged pill of the given size should
// take so that it stays under the pointer at the captured offset, clamped per
// axis to the board.
func DragPosition(cursor, offset model.Point2D, size model.Rect, board model.Board) model.Point2D {
	return model.Point2D{
		X: model.Clamp(cursor.X-offset.X, 0, board.Width-size.Width),
		Y: model.Clamp(cursor.Y-offset.Y, 0, board.Height-size.Height),
	}
}

// exceedsJitter reports whether two positions differ by more than the drag
// jitter tolerance on either axis.
func exceedsJitter(a, b model.Point2D) bool {
	return math.Abs(a.X-b.X) > model.DragJitter || math.Abs(a.Y-b.Y) > model.DragJitter
}
