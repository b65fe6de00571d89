package geo

import (
	"math"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

/*
VertexAngleFromSides. angle at vertex B of triangle A-B-C, law of cosines:

	AC^2 = AB^2 + BC^2 - 2 * AB * BC * cos(angleB)
	cos(angleB) = (AB^2 + BC^2 - AC^2) / (2 * AB * BC)

the sides are great-circle distances, not euclidean ones, so cos(angleB) can drift a little outside [-1,1].
it is clamped before acos. distAB and distBC must be > 0.
returns radians in [0, pi].
*/
func VertexAngleFromSides(distAB, distBC, distAC float64) float64 {
	cosAngleB := (distAB*distAB + distBC*distBC - distAC*distAC) / (2 * distAB * distBC)
	cosAngleB = util.ClampFloat(cosAngleB, -1.0, 1.0)
	return math.Acos(cosAngleB)
}

// VertexAngle. angle at b between segments (a,b) and (b,c), in radians [0, pi]. pi = straight, 0 = full u-turn.
// caller must skip triples where |ab| or |bc| is (almost) zero.
func VertexAngle(a, b, c Coordinate) float64 {
	return VertexAngleFromSides(DistanceMeters(a, b), DistanceMeters(b, c), DistanceMeters(a, c))
}

/*
BearingTo. menghitung sudut initial bearing untuk edge (p1,p2).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}
