package grid

import "strings"

// Symbol table for the ASCII projection. One character per sampled cell.
const (
	symObstacle = '#'
	symFree     = '.'
	symUnknown  = ' '
	symMarker   = 'x'
	symRobot    = 'R'
)

// Render projects the grid to newline-joined ASCII rows. Rows iterate from
// maximum Y down to 0 so the output reads like a map (north up); columns
// run 0..maxX left to right. scale > 1 downsamples by striding both axes —
// nearest sample on the stride, no interpolation. The robot's world
// position is mapped through the grid's own transform and its cell
// overrides any terrain character.
func Render(g *Grid, robotX, robotY float64, scale int) string {
	if g == nil || g.Height() == 0 || g.Width() == 0 {
		return ""
	}
	if scale < 1 {
		scale = 1
	}

	rcx, rcy := g.WorldToCell(robotX, robotY)

	var b strings.Builder
	for y := g.Height() - 1; y >= 0; y -= scale {
		for x := 0; x < g.Width(); x += scale {
			b.WriteByte(symbolAt(g, x, y, rcx, rcy, scale))
		}
		if y-scale >= 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func symbolAt(g *Grid, x, y, rcx, rcy, scale int) byte {
	// The robot wins the cell even when downsampling strides past its
	// exact coordinates.
	if rcx >= x && rcx < x+scale && rcy <= y && rcy > y-scale {
		return symRobot
	}
	switch g.At(x, y) {
	case CellObstacle:
		return symObstacle
	case CellFree:
		return symFree
	case CellMarker:
		return symMarker
	default:
		return symUnknown
	}
}
