// Package grid holds the 2D occupancy grid consumed by navigation and its
// bounded ASCII projection for fixed-width display.
package grid

import "math"

// CellState enumerates what a grid cell is known to contain.
type CellState uint8

const (
	CellUnknown CellState = iota
	CellFree
	CellObstacle
	CellMarker // dropped waypoints, zones of interest
)

// Grid is a discretized 2D map. Cells are addressed as cells[y][x]; the
// world↔cell transform places world (OriginX, OriginY) at cell (0,0) with
// Resolution world units per cell. The grid is consumed read-only by the
// renderer — whoever builds the map owns mutation.
type Grid struct {
	Cells      [][]CellState
	OriginX    float64
	OriginY    float64
	Resolution float64
}

// New creates a width×height grid of unknown cells.
func New(width, height int, originX, originY, resolution float64) *Grid {
	cells := make([][]CellState, height)
	for y := range cells {
		cells[y] = make([]CellState, width)
	}
	return &Grid{
		Cells:      cells,
		OriginX:    originX,
		OriginY:    originY,
		Resolution: resolution,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.Cells)
}

// WorldToCell maps a world coordinate to integer cell coordinates.
// The result may lie outside the grid; see InBounds.
func (g *Grid) WorldToCell(wx, wy float64) (int, int) {
	cx := int(math.Floor((wx - g.OriginX) / g.Resolution))
	cy := int(math.Floor((wy - g.OriginY) / g.Resolution))
	return cx, cy
}

// CellToWorld maps cell coordinates to the world coordinate of the cell
// center.
func (g *Grid) CellToWorld(cx, cy int) (float64, float64) {
	wx := g.OriginX + (float64(cx)+0.5)*g.Resolution
	wy := g.OriginY + (float64(cy)+0.5)*g.Resolution
	return wx, wy
}

// InBounds reports whether cell (cx, cy) lies inside the grid.
func (g *Grid) InBounds(cx, cy int) bool {
	return cy >= 0 && cy < g.Height() && cx >= 0 && cx < g.Width()
}

// At returns the state of cell (cx, cy), CellUnknown when out of bounds.
func (g *Grid) At(cx, cy int) CellState {
	if !g.InBounds(cx, cy) {
		return CellUnknown
	}
	return g.Cells[cy][cx]
}

// Set updates cell (cx, cy); out-of-bounds writes are dropped.
func (g *Grid) Set(cx, cy int, s CellState) {
	if g.InBounds(cx, cy) {
		g.Cells[cy][cx] = s
	}
}
