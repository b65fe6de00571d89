package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline (precision 5)
func PolylineFromCoords(coords []Coordinate) string {
	c := make([][]float64, 0, len(coords))
	for _, coord := range coords {
		c = append(c, []float64{coord.Lat, coord.Lon})
	}
	return string(polyline.EncodeCoords(c))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	c, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(c))
	for _, latLon := range c {
		coords = append(coords, NewCoordinate(latLon[0], latLon[1]))
	}
	return coords, nil
}
