package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldCellRoundTrip(t *testing.T) {
	g := New(10, 10, -2.5, -2.5, 0.5)

	cx, cy := g.WorldToCell(0, 0)
	assert.Equal(t, 5, cx)
	assert.Equal(t, 5, cy)

	wx, wy := g.CellToWorld(cx, cy)
	bx, by := g.WorldToCell(wx, wy)
	assert.Equal(t, cx, bx, "cell center maps back to the same cell")
	assert.Equal(t, cy, by)
}

func TestAtOutOfBounds(t *testing.T) {
	g := New(3, 3, 0, 0, 1)
	assert.Equal(t, CellUnknown, g.At(-1, 0))
	assert.Equal(t, CellUnknown, g.At(0, 3))
}

func TestSetOutOfBoundsDropped(t *testing.T) {
	g := New(2, 2, 0, 0, 1)
	g.Set(5, 5, CellObstacle) // must not panic
	g.Set(1, 1, CellObstacle)
	assert.Equal(t, CellObstacle, g.At(1, 1))
}

// fillFree marks every cell free.
func fillFree(g *Grid) {
	for y := range g.Cells {
		for x := range g.Cells[y] {
			g.Cells[y][x] = CellFree
		}
	}
}

func TestRenderGeometry(t *testing.T) {
	// 3×3 all free, one obstacle at cell (1,1), robot at the world
	// position mapping to cell (0,0). Rows print from high Y down, so the
	// robot lands on the bottom row, column 0.
	g := New(3, 3, 0, 0, 1)
	fillFree(g)
	g.Set(1, 1, CellObstacle)

	out := Render(g, 0.5, 0.5, 1)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 3)

	assert.Equal(t, "...", rows[0], "y=2")
	assert.Equal(t, ".#.", rows[1], "y=1")
	assert.Equal(t, "R..", rows[2], "y=0, robot overrides free terrain")
}

func TestRenderRobotOverridesObstacle(t *testing.T) {
	g := New(2, 2, 0, 0, 1)
	fillFree(g)
	g.Set(0, 0, CellObstacle)

	out := Render(g, 0.5, 0.5, 1)
	rows := strings.Split(out, "\n")
	assert.Equal(t, byte('R'), rows[1][0])
}

func TestRenderSymbols(t *testing.T) {
	g := New(4, 1, 0, 0, 1)
	g.Set(0, 0, CellFree)
	g.Set(1, 0, CellObstacle)
	g.Set(2, 0, CellMarker)
	// cell 3 stays unknown

	out := Render(g, -10, -10, 1) // robot far off-grid
	assert.Equal(t, ".#x ", out)
}

func TestRenderDownsampling(t *testing.T) {
	g := New(6, 6, 0, 0, 1)
	fillFree(g)

	out := Render(g, -10, -10, 2)
	rows := strings.Split(out, "\n")
	assert.Len(t, rows, 3, "stride 2 halves the rows")
	for _, r := range rows {
		assert.Len(t, r, 3, "stride 2 halves the columns")
	}
}

func TestRenderDownsampledRobotStillVisible(t *testing.T) {
	g := New(6, 6, 0, 0, 1)
	fillFree(g)

	// Robot at cell (1,1) — not on the stride, but inside a sampled block.
	out := Render(g, 1.5, 1.5, 2)
	assert.Contains(t, out, "R")
}

func TestRenderEmptyGrid(t *testing.T) {
	assert.Equal(t, "", Render(nil, 0, 0, 1))
	assert.Equal(t, "", Render(&Grid{}, 0, 0, 1))
}
