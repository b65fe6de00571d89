package geo

import (
	"github.com/golang/geo/s2"
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	projection := s2.Project(toS2Point(snap), toS2Point(pointA), toS2Point(pointB))
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// return in meter
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	if pointA == pointB {
		return DistanceMeters(pointA, snap)
	}
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	return DistanceMeters(snap, projectionPoint)
}

// RamerDouglasPeucker. simplify edge geometry, dropping points closer than epsilon (meter) to the simplified line.
// first and last points are always kept.
func RamerDouglasPeucker(coords []Coordinate, epsilon float64) []Coordinate {
	if len(coords) < 3 || epsilon <= 0 {
		return coords
	}

	keep := make([]bool, len(coords))
	keep[0] = true
	keep[len(coords)-1] = true
	rdp(coords, 0, len(coords)-1, epsilon, keep)

	simplified := make([]Coordinate, 0, len(coords))
	for i, c := range coords {
		if keep[i] {
			simplified = append(simplified, c)
		}
	}
	return simplified
}

func rdp(coords []Coordinate, start, end int, epsilon float64, keep []bool) {
	if end-start < 2 {
		return
	}
	maxDist := 0.0
	index := start
	for i := start + 1; i < end; i++ {
		d := PointLinePerpendicularDistance(coords[start], coords[end], coords[i])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}
	if maxDist > epsilon {
		keep[index] = true
		rdp(coords, start, index, epsilon, keep)
		rdp(coords, index, end, epsilon, keep)
	}
}
