package engine

import "github.com/piwi3910/PillBoard/internal/model"

// Stats summarises a board for status bars and export footers.
type Stats struct {
	Count          int
	RoundedCorners int
	PillArea       float64 // sum of pill areas; overlapping pills count twice
	BoardArea      float64
}

// Coverage returns PillArea as a percentage of the board area.
func (s Stats) Coverage() float64 {
	if s.BoardArea == 0 {
		return 0
	}
	return (s.PillArea / s.BoardArea) * 100.0
}

// ComputeStats gathers Stats for pills on board.
func ComputeStats(pills []model.Pill, board model.Board) Stats {
	s := Stats{
		Count:     len(pills),
		BoardArea: board.Width * board.Height,
	}
	for _, p := range pills {
		s.PillArea += p.Rect.Area()
		s.RoundedCorners += p.Corners.Count()
	}
	return s
}
