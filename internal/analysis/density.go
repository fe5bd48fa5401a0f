package analysis

import (
	"math"

	"github.com/driftlab/drift-backend-go/internal/spatial"
)

// DefaultGridResolution is the default number of cells per grid axis
const DefaultGridResolution = 50

// DensityGrid rasterizes sampled points into a square cell grid covering the
// circle's bounding box. Cells outside the inscribed circle are masked out at
// construction and never accumulate counts.
type DensityGrid struct {
	// Resolution is the number of cells in each dimension
	Resolution int

	// Center of the circle
	Center Coordinates

	// Radius in meters
	Radius float64

	// CellSize is the edge length of one cell in meters
	CellSize float64

	// Cells holds point counts indexed [row][col]
	Cells [][]int

	// InCircle marks which cells lie within the inscribed circle
	InCircle [][]bool

	// TotalPoints counts accepted points
	TotalPoints int
}

// NewDensityGrid creates a grid for a circle. The in-circle mask is pure
// geometry (cell center within resolution/2 cell units of the grid center)
// and does not depend on any sampled data.
func NewDensityGrid(center Coordinates, radius float64, resolution int) *DensityGrid {
	cells := make([][]int, resolution)
	inCircle := make([][]bool, resolution)

	centerCell := float64(resolution) / 2
	maxDistSq := centerCell * centerCell

	for row := 0; row < resolution; row++ {
		cells[row] = make([]int, resolution)
		inCircle[row] = make([]bool, resolution)
		for col := 0; col < resolution; col++ {
			dx := float64(col) + 0.5 - centerCell
			dy := float64(row) + 0.5 - centerCell
			inCircle[row][col] = dx*dx+dy*dy <= maxDistSq
		}
	}

	return &DensityGrid{
		Resolution: resolution,
		Center:     center,
		Radius:     radius,
		CellSize:   2 * radius / float64(resolution),
		Cells:      cells,
		InCircle:   inCircle,
	}
}

// AddPoints bins points into grid cells. Points outside the grid bounds or
// landing in a masked-out cell are dropped. Binning uses a planar projection
// from the grid center; unlike sampling, this is acceptable because cells are
// small relative to the Earth's radius.
func (g *DensityGrid) AddPoints(points []Coordinates) {
	metersPerDegLng := spatial.MetersPerDegreeLng(g.Center.Lat)

	for _, p := range points {
		dxMeters := (p.Lng - g.Center.Lng) * metersPerDegLng
		dyMeters := (p.Lat - g.Center.Lat) * spatial.MetersPerDegreeLat

		col := int(math.Floor((dxMeters + g.Radius) / g.CellSize))
		row := int(math.Floor((dyMeters + g.Radius) / g.CellSize))

		if col < 0 || col >= g.Resolution || row < 0 || row >= g.Resolution {
			continue
		}
		if !g.InCircle[row][col] {
			continue
		}

		g.Cells[row][col]++
		g.TotalPoints++
	}
}

// CellsInCircle returns the number of unmasked cells
func (g *DensityGrid) CellsInCircle() int {
	count := 0
	for row := 0; row < g.Resolution; row++ {
		for col := 0; col < g.Resolution; col++ {
			if g.InCircle[row][col] {
				count++
			}
		}
	}
	return count
}

// ZScores computes a per-cell z-score against a Poisson null model:
// z = (observed - expected) / sqrt(expected), where expected is the mean
// count over in-circle cells. Masked cells, and every cell when the grid is
// empty, are NaN.
func (g *DensityGrid) ZScores() [][]float64 {
	scores := make([][]float64, g.Resolution)
	for row := range scores {
		scores[row] = make([]float64, g.Resolution)
		for col := range scores[row] {
			scores[row][col] = math.NaN()
		}
	}

	cellsInCircle := g.CellsInCircle()
	if cellsInCircle == 0 || g.TotalPoints == 0 {
		return scores
	}

	expected := float64(g.TotalPoints) / float64(cellsInCircle)
	stdDev := math.Sqrt(expected)

	for row := 0; row < g.Resolution; row++ {
		for col := 0; col < g.Resolution; col++ {
			if g.InCircle[row][col] {
				scores[row][col] = (float64(g.Cells[row][col]) - expected) / stdDev
			}
		}
	}

	return scores
}

// CellToCoords returns the coordinate of a cell's center, the exact inverse
// of the binning projection
func (g *DensityGrid) CellToCoords(row, col int) Coordinates {
	metersPerDegLng := spatial.MetersPerDegreeLng(g.Center.Lat)

	cellCenterX := (float64(col)+0.5)*g.CellSize - g.Radius
	cellCenterY := (float64(row)+0.5)*g.CellSize - g.Radius

	return Coordinates{
		Lat: g.Center.Lat + cellCenterY/spatial.MetersPerDegreeLat,
		Lng: g.Center.Lng + cellCenterX/metersPerDegLng,
	}
}

// CellResult is the outcome of a single-cell scan: position, raw count,
// score, and the cell center coordinate
type CellResult struct {
	Row    int
	Col    int
	Count  int
	ZScore float64
	Coords Coordinates
}
