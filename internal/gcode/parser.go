package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of CNC toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1: linear feed (cutting move in XY plane)
	MovePlunge                  // G1 with Z decreasing: plunging into material
	MoveRetract                 // G0/G1 with Z increasing: retracting from material
	MoveArcCW                   // G2: clockwise arc
	MoveArcCCW                  // G3: counter-clockwise arc
)

func (t MoveType) String() string {
	switch t {
	case MoveRapid:
		return "rapid"
	case MoveFeed:
		return "feed"
	case MovePlunge:
		return "plunge"
	case MoveRetract:
		return "retract"
	case MoveArcCW:
		return "arc-cw"
	case MoveArcCCW:
		return "arc-ccw"
	default:
		return "unknown"
	}
}

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64

	// Arc center, absolute. Only set for MoveArcCW and MoveArcCCW.
	CenterX float64
	CenterY float64
}

// IsArc reports whether m is a G2 or G3 move.
func (m GCodeMove) IsArc() bool {
	return m.Type == MoveArcCW || m.Type == MoveArcCCW
}

// Radius returns the arc radius measured from the start point. It is 0 for
// linear moves.
func (m GCodeMove) Radius() float64 {
	if !m.IsArc() {
		return 0
	}
	return math.Hypot(m.FromX-m.CenterX, m.FromY-m.CenterY)
}

var (
	coordRe   = regexp.MustCompile(`([XYZFIJ])(-?\d+\.?\d*)`)
	commandRe = regexp.MustCompile(`^G0*([0-3])(\s|$)`)
)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position state and classifies each G0-G3 command
// by its movement characteristics. Other commands are ignored.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		cmd := commandRe.FindStringSubmatch(upper)
		if cmd == nil {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		var offI, offJ float64
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			case "I":
				offI = val
			case "J":
				offJ = val
			}
		}

		move := GCodeMove{
			FromX: curX, FromY: curY, FromZ: curZ,
			ToX: newX, ToY: newY, ToZ: newZ,
			FeedRate: newFeed,
		}
		switch cmd[1] {
		case "2", "3":
			move.Type = MoveArcCW
			if cmd[1] == "3" {
				move.Type = MoveArcCCW
			}
			move.CenterX = curX + offI
			move.CenterY = curY + offJ
		default:
			move.Type = classifyMove(cmd[1] == "0", curZ, newZ, curX, curY, newX, newY)
		}
		moves = append(moves, move)

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// stripComment removes semicolon and parenthetical comments from a line.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}
