// Package gcode turns the pills on a board into contour toolpaths for a CNC
// router and reads GCode back into structured moves.
package gcode

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/PillBoard/internal/model"
)

// Generator produces GCode that cuts every pill out of a sheet the size of
// the board. Board pixels are converted to millimetres with Settings.Scale and
// the Y axis is flipped so the board's top edge is at the far side of the
// machine.
type Generator struct {
	Settings model.CutSettings
	profile  model.GCodeProfile
}

// New returns a generator using the profile named in settings.
func New(settings model.CutSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.GCodeProfile),
	}
}

// Validate reports settings that cannot produce a usable program.
func (g *Generator) Validate() error {
	s := g.Settings
	var errs []error
	if s.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", s.Scale))
	}
	if s.ToolDiameter < 0 {
		errs = append(errs, fmt.Errorf("tool diameter must not be negative, got %g", s.ToolDiameter))
	}
	if s.CutDepth <= 0 {
		errs = append(errs, fmt.Errorf("cut depth must be positive, got %g", s.CutDepth))
	}
	if s.FeedRate <= 0 || s.PlungeRate <= 0 {
		errs = append(errs, errors.New("feed and plunge rates must be positive"))
	}
	return errors.Join(errs...)
}

// Generate produces a complete program for the pills on board.
func (g *Generator) Generate(board model.Board, pills []model.Pill) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	if !board.Mounted() {
		return "", fmt.Errorf("cannot generate gcode for a %.0fx%.0f board", board.Width, board.Height)
	}

	var b strings.Builder
	g.writeHeader(&b, board, pills)
	for i, p := range pills {
		g.writePill(&b, board, p, i+1)
	}
	g.writeFooter(&b)
	return b.String(), nil
}

// Passes returns the depth of each pass, ending exactly at CutDepth.
func (g *Generator) Passes() []float64 {
	total := g.Settings.CutDepth
	step := g.Settings.PassDepth
	if step <= 0 || step > total {
		step = total
	}
	n := int(math.Ceil(total/step - 1e-9))
	depths := make([]float64, n)
	for i := range depths {
		depths[i] = math.Min(float64(i+1)*step, total)
	}
	return depths
}

func (g *Generator) writeHeader(b *strings.Builder, board model.Board, pills []model.Pill) {
	p := g.profile
	s := g.Settings

	b.WriteString(g.comment("PillBoard GCode"))
	b.WriteString(g.comment(fmt.Sprintf("Sheet: %.1f x %.1f mm, %.0f x %.0f px at %.3f mm/px",
		board.Width*s.Scale, board.Height*s.Scale, board.Width, board.Height, s.Scale)))
	b.WriteString(g.comment(fmt.Sprintf("Pills: %d", len(pills))))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.1fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min",
		s.ToolDiameter, s.FeedRate, s.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.1fmm in %d passes", s.CutDepth, len(g.Passes()))))
	b.WriteString(g.comment("Profile: " + p.Name))
	for _, w := range FormatClearanceWarnings(CheckClearance(board, pills, s)) {
		b.WriteString(g.comment("WARNING: " + w))
	}
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", s.SpindleSpeed))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString(g.comment("=== Job complete ==="))
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

// corner is one rounded segment of a contour: the arc center in machine
// coordinates and the toolpath radius around it.
type corner struct {
	cx, cy, r float64
}

// contour returns the four corners of the toolpath around p, clockwise from
// top-left. Each part corner radius grows by the tool radius; square corners
// become arcs of exactly the tool radius around the sharp corner.
func (g *Generator) contour(board model.Board, p model.Pill) [4]corner {
	s := g.Settings.Scale
	toolR := g.Settings.ToolDiameter / 2
	tl, tr, br, bl := p.Radii()

	left := p.Rect.X * s
	right := p.Rect.Right() * s
	top := (board.Height - p.Rect.Y) * s
	bottom := (board.Height - p.Rect.Bottom()) * s

	return [4]corner{
		{left + tl*s, top - tl*s, tl*s + toolR},
		{right - tr*s, top - tr*s, tr*s + toolR},
		{right - br*s, bottom + br*s, br*s + toolR},
		{left + bl*s, bottom + bl*s, bl*s + toolR},
	}
}

// writePill cuts one pill in as many passes as the depth requires.
func (g *Generator) writePill(b *strings.Builder, board model.Board, p model.Pill, num int) {
	pr := g.profile
	s := g.Settings
	c := g.contour(board, p)

	b.WriteString(g.comment(fmt.Sprintf("--- Pill %d: #%d %.0fx%.0f at %.0f,%.0f px, rounded %s ---",
		num, p.ID, p.Rect.Width, p.Rect.Height, p.Rect.X, p.Rect.Y, p.Corners)))

	startX, startY := c[0].cx, c[0].cy+c[0].r
	passes := g.Passes()
	for i, depth := range passes {
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", i+1, len(passes), depth)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", pr.RapidMove, g.format(startX), g.format(startY)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", pr.FeedMove, g.format(-depth), g.format(s.PlungeRate)))

		// Top edge, then each corner clockwise.
		g.line(b, c[1].cx, c[1].cy+c[1].r, true)
		g.arc(b, c[1].cx+c[1].r, c[1].cy, 0, -c[1].r)
		g.line(b, c[2].cx+c[2].r, c[2].cy, false)
		g.arc(b, c[2].cx, c[2].cy-c[2].r, -c[2].r, 0)
		g.line(b, c[3].cx, c[3].cy-c[3].r, false)
		g.arc(b, c[3].cx-c[3].r, c[3].cy, 0, c[3].r)
		g.line(b, c[0].cx-c[0].r, c[0].cy, false)
		g.arc(b, startX, startY, c[0].r, 0)

		b.WriteString(fmt.Sprintf("%s Z%s\n", pr.RapidMove, g.format(s.SafeZ)))
	}
	b.WriteString("\n")
}

func (g *Generator) line(b *strings.Builder, x, y float64, withFeed bool) {
	if withFeed {
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
			g.format(x), g.format(y), g.format(g.Settings.FeedRate)))
		return
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.FeedMove, g.format(x), g.format(y)))
}

// arc writes a clockwise arc to (x, y). I and J are the center offsets from
// the current position. Zero-radius arcs are skipped.
func (g *Generator) arc(b *strings.Builder, x, y, i, j float64) {
	if i == 0 && j == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s I%s J%s\n", g.profile.ArcCW,
		g.format(x), g.format(y), g.format(i), g.format(j)))
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
