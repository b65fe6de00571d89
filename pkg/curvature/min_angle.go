package curvature

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/encodedvalue"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// MinAngleCalculator. stores the sharpest single turn of the edge, normalized to [0, 1]:
// 1.0 = straight, 0.0 = full u-turn.
type MinAngleCalculator struct {
	curvatureEnc       *encodedvalue.DecimalEncodedValue
	minSegmentDistance float64
}

func NewMinAngleCalculator(curvatureEnc *encodedvalue.DecimalEncodedValue, opts Options) *MinAngleCalculator {
	return &MinAngleCalculator{
		curvatureEnc:       curvatureEnc,
		minSegmentDistance: opts.MinSegmentDistance,
	}
}

func (c *MinAngleCalculator) ProcessEdge(edgeID da.Index, access encodedvalue.EdgeIntAccess, way PolylineSource,
	_ RelationFlags) error {
	points, _, _ := wayGeometry(way)
	curvature := MinAngleCurvature(points, c.minSegmentDistance)
	curvature = util.ClampFloat(curvature, c.curvatureEnc.MinStorableDecimal(), c.curvatureEnc.MaxStorableDecimal())
	return c.curvatureEnc.SetDecimal(edgeID, access, curvature)
}

// MinAngleCurvature. unquantized value written by MinAngleCalculator.
func MinAngleCurvature(points []geo.Coordinate, minSegmentDistance float64) float64 {
	if len(points) < 3 {
		return 1.0
	}
	minAngle := MinVertexAngle(points, minSegmentDistance)
	if minAngle == math.Pi {
		return 1.0
	}
	return minAngle / math.Pi
}
