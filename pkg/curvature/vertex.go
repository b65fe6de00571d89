package curvature

import (
	"math"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
)

// forEachVertexAngle. calls fn with the angle at P[i+1] of every consecutive triple (P[i], P[i+1], P[i+2])
// whose legs are both at least minSegmentDistance meters long. shorter legs mean duplicate or noisy points:
// the triple is skipped and counts as locally straight.
func forEachVertexAngle(points []geo.Coordinate, minSegmentDistance float64, fn func(angle float64)) {
	for i := 0; i+2 < len(points); i++ {
		a, b, c := points[i], points[i+1], points[i+2]

		distAB := geo.DistanceMeters(a, b)
		distBC := geo.DistanceMeters(b, c)
		if distAB < minSegmentDistance || distBC < minSegmentDistance {
			continue
		}

		distAC := geo.DistanceMeters(a, c)
		fn(geo.VertexAngleFromSides(distAB, distBC, distAC))
	}
}

// MinVertexAngle. smallest vertex angle of the polyline in [0, π]. π if no triple produced an angle.
func MinVertexAngle(points []geo.Coordinate, minSegmentDistance float64) float64 {
	minAngle := math.Pi
	forEachVertexAngle(points, minSegmentDistance, func(angle float64) {
		minAngle = math.Min(minAngle, angle)
	})
	return minAngle
}

// TotalDeviation. sum of (π - angle) over the non skipped vertices, in radians.
func TotalDeviation(points []geo.Coordinate, minSegmentDistance float64) float64 {
	total := 0.0
	forEachVertexAngle(points, minSegmentDistance, func(angle float64) {
		total += math.Pi - angle
	})
	return total
}
