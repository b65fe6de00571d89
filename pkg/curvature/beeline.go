package curvature

import (
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/encodedvalue"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// BeelineCalculator. default routing curvature: straight line distance between the edge endpoints divided by the
// edge distance. 1.0 = straight, lower = the road winds away from the direct line.
type BeelineCalculator struct {
	curvatureEnc     *encodedvalue.DecimalEncodedValue
	minTotalDistance float64
}

func NewBeelineCalculator(curvatureEnc *encodedvalue.DecimalEncodedValue, opts Options) *BeelineCalculator {
	return &BeelineCalculator{
		curvatureEnc:     curvatureEnc,
		minTotalDistance: opts.MinTotalDistance,
	}
}

func (c *BeelineCalculator) ProcessEdge(edgeID da.Index, access encodedvalue.EdgeIntAccess, way PolylineSource,
	_ RelationFlags) error {
	points, distance, _ := wayGeometry(way)
	curvature := BeelineCurvature(points, distance, c.minTotalDistance)
	curvature = util.ClampFloat(curvature, c.curvatureEnc.MinStorableDecimal(), c.curvatureEnc.MaxStorableDecimal())
	return c.curvatureEnc.SetDecimal(edgeID, access, curvature)
}

func BeelineCurvature(points []geo.Coordinate, distance, minTotalDistance float64) float64 {
	if len(points) < 2 || !(distance >= minTotalDistance) || distance <= 0 {
		return 1.0
	}
	beeline := geo.DistanceMeters(points[0], points[len(points)-1])
	return beeline / distance
}
