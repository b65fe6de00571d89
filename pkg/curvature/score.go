package curvature

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/encodedvalue"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"go.uber.org/zap"
)

/*
ScoreCalculator. cumulative turning per meter, as a capped integer:

	metric = sum(π - angle_i) / edgeDistance  (radians/meter)
	score  = clamp(round(metric * scalingFactor), 0, maxScore)

0 = straight, short (< MinTotalDistance) or missing geometry.
*/
type ScoreCalculator struct {
	scoreEnc           *encodedvalue.IntEncodedValue
	maxScore           int
	scalingFactor      float64
	minSegmentDistance float64
	minTotalDistance   float64
}

func NewScoreCalculator(scoreEnc *encodedvalue.IntEncodedValue, opts Options, log *zap.Logger) *ScoreCalculator {
	c := &ScoreCalculator{
		scoreEnc:           scoreEnc,
		maxScore:           scoreEnc.MaxStorableInt(),
		scalingFactor:      opts.ScalingFactor,
		minSegmentDistance: opts.MinSegmentDistance,
		minTotalDistance:   opts.MinTotalDistance,
	}
	log.Sugar().Infof("initialized curvature score calculator with maxScore=%d, scalingFactor=%v",
		c.maxScore, c.scalingFactor)
	return c
}

func (c *ScoreCalculator) ProcessEdge(edgeID da.Index, access encodedvalue.EdgeIntAccess, way PolylineSource,
	_ RelationFlags) error {
	points, distance, ok := wayGeometry(way)
	if !ok {
		distance = 0
	}
	score := c.Score(points, distance)
	return c.scoreEnc.SetInt(edgeID, access, score)
}

// Score. the value ProcessEdge stores, already inside [0, maxScore].
func (c *ScoreCalculator) Score(points []geo.Coordinate, distance float64) int {
	metric, ok := DeviationPerMeter(points, distance, c.minSegmentDistance, c.minTotalDistance)
	if !ok {
		return 0
	}
	return scaleScore(metric, c.scalingFactor, c.maxScore)
}

func scaleScore(metric, scalingFactor float64, maxScore int) int {
	score := math.Round(metric * scalingFactor)
	if math.IsNaN(score) {
		return 0
	}
	return int(util.ClampFloat(score, 0, float64(maxScore)))
}

// DeviationPerMeter. total deviation divided by the edge distance. ok is false when the edge has fewer than
// 3 points or is shorter than minTotalDistance.
func DeviationPerMeter(points []geo.Coordinate, distance, minSegmentDistance, minTotalDistance float64) (float64, bool) {
	if len(points) < 3 || !(distance >= minTotalDistance) || distance <= 0 {
		return 0, false
	}
	return TotalDeviation(points, minSegmentDistance) / distance, true
}
