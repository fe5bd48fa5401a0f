package analysis

import (
	"math"

	"github.com/driftlab/drift-backend-go/internal/rng"
)

// DefaultPointCount is the default number of points sampled per circle
const DefaultPointCount = 10000

// FindDensestCell returns the in-circle cell with the maximum z-score.
// Ties keep the first cell in row-then-column scan order. Returns nil when
// the grid has no scored cells.
func FindDensestCell(grid *DensityGrid) *CellResult {
	return scanCells(grid, func(best, candidate float64) bool {
		return candidate > best
	})
}

// FindEmptiestCell returns the in-circle cell with the minimum z-score,
// with the same tie policy as FindDensestCell
func FindEmptiestCell(grid *DensityGrid) *CellResult {
	return scanCells(grid, func(best, candidate float64) bool {
		return candidate < best
	})
}

// FindMostAnomalousCell returns the in-circle cell with the maximum absolute
// z-score, and whether it is an attractor (positive score)
func FindMostAnomalousCell(grid *DensityGrid) (*CellResult, bool) {
	cell := scanCells(grid, func(best, candidate float64) bool {
		return math.Abs(candidate) > math.Abs(best)
	})
	if cell == nil {
		return nil, false
	}
	return cell, cell.ZScore > 0
}

// scanCells walks the grid in row-then-column order and keeps the first cell
// for which no earlier cell is at least as good. The strict comparison means
// earlier cells win ties.
func scanCells(grid *DensityGrid, better func(best, candidate float64) bool) *CellResult {
	scores := grid.ZScores()
	var best *CellResult

	for row := 0; row < grid.Resolution; row++ {
		for col := 0; col < grid.Resolution; col++ {
			z := scores[row][col]
			if math.IsNaN(z) {
				continue
			}
			if best == nil || better(best.ZScore, z) {
				best = &CellResult{
					Row:    row,
					Col:    col,
					Count:  grid.Cells[row][col],
					ZScore: z,
					Coords: grid.CellToCoords(row, col),
				}
			}
		}
	}

	return best
}

// FindAllAnomalies analyzes a point sample and returns a result for each
// anomaly type that could be computed. BlindSpot is the first sampled point;
// the other three come from a density grid built over the sample. Missing
// kinds (empty input) are simply absent, never an error.
func FindAllAnomalies(center Coordinates, radius float64, points []Coordinates, gridResolution int) map[AnomalyType]Point {
	results := make(map[AnomalyType]Point)

	if len(points) > 0 {
		results[BlindSpot] = NewPoint(points[0])
	}

	grid := NewDensityGrid(center, radius, gridResolution)
	grid.AddPoints(points)

	if cell := FindDensestCell(grid); cell != nil {
		results[Attractor] = NewScoredPoint(cell.Coords, cell.ZScore)
	}
	if cell := FindEmptiestCell(grid); cell != nil {
		results[Void] = NewScoredPoint(cell.Coords, cell.ZScore)
	}
	if cell, isAttractor := FindMostAnomalousCell(grid); cell != nil {
		results[Power] = NewPowerPoint(cell.Coords, cell.ZScore, isAttractor)
	}

	return results
}

// AnalyzeCircle samples pointCount points in one circle, runs the four
// anomaly extractions, and packages a CircleResult. The raw point list is
// retained only when includePoints is set.
func AnalyzeCircle(id string, center Coordinates, radius float64, pointCount, gridResolution int, includePoints bool, src rng.Source) (CircleResult, error) {
	points, err := SamplePoints(center, radius, pointCount, src)
	if err != nil {
		return CircleResult{}, err
	}

	result := CircleResult{
		ID:        id,
		Center:    center,
		Radius:    radius,
		Anomalies: FindAllAnomalies(center, radius, points, gridResolution),
	}
	if includePoints {
		result.Points = points
	}

	return result, nil
}

// FindWinner selects the best result for one anomaly type across circles.
// A candidate replaces the current best only when strictly better, so the
// earliest circle in input order wins ties. BlindSpot takes the first circle
// that has a result, with no comparison.
func FindWinner(circles []CircleResult, anomalyType AnomalyType) (WinnerResult, bool) {
	var best WinnerResult
	found := false

	for _, circle := range circles {
		point, ok := circle.Anomalies[anomalyType]
		if !ok {
			continue
		}
		if !found || dominates(anomalyType, point, best.Result) {
			best = WinnerResult{CircleID: circle.ID, Result: point}
			found = true
		}
	}

	return best, found
}

// dominates reports whether candidate is strictly better than best for the
// given anomaly type
func dominates(anomalyType AnomalyType, candidate, best Point) bool {
	switch anomalyType {
	case Attractor:
		return zScoreOr(candidate, math.Inf(-1)) > zScoreOr(best, math.Inf(-1))
	case Void:
		return zScoreOr(candidate, math.Inf(1)) < zScoreOr(best, math.Inf(1))
	case Power:
		return math.Abs(zScoreOr(candidate, 0)) > math.Abs(zScoreOr(best, 0))
	default:
		// BlindSpot: first available wins
		return false
	}
}

func zScoreOr(p Point, fallback float64) float64 {
	if p.ZScore == nil {
		return fallback
	}
	return *p.ZScore
}

// FindAllWinners selects the cross-circle winner for every anomaly type, in
// the fixed enumeration order
func FindAllWinners(circles []CircleResult) map[AnomalyType]WinnerResult {
	winners := make(map[AnomalyType]WinnerResult)

	for _, anomalyType := range AnomalyTypes() {
		if winner, ok := FindWinner(circles, anomalyType); ok {
			winners[anomalyType] = winner
		}
	}

	return winners
}
