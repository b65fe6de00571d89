package curvature

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// Evaluation. unquantized metrics of one polyline, for inspection.
type Evaluation struct {
	MinAngle          float64 // radians, π if no vertex was measured
	MinAngleDegree    float64
	Curvature         float64 // MinAngleCalculator value before quantization
	BeelineCurvature  float64
	TotalDeviation    float64 // radians
	DeviationPerMeter float64
	Score             int // already capped to maxScore
	Distance          float64
}

// Evaluate. metrics of points without writing to any edge. distance <= 0 means: use the polyline length.
func Evaluate(points []geo.Coordinate, distance float64, opts Options, maxScore int) Evaluation {
	if distance <= 0 {
		distance = geo.PolylineLength(points)
	}

	minAngle := MinVertexAngle(points, opts.MinSegmentDistance)
	ev := Evaluation{
		MinAngle:         minAngle,
		MinAngleDegree:   util.RadiansToDegree(minAngle),
		Curvature:        MinAngleCurvature(points, opts.MinSegmentDistance),
		BeelineCurvature: BeelineCurvature(points, distance, opts.MinTotalDistance),
		TotalDeviation:   TotalDeviation(points, opts.MinSegmentDistance),
		Distance:         distance,
	}

	metric, ok := DeviationPerMeter(points, distance, opts.MinSegmentDistance, opts.MinTotalDistance)
	if !ok {
		return ev
	}
	ev.DeviationPerMeter = metric
	ev.Score = scaleScore(metric, opts.ScalingFactor, maxScore)
	return ev
}
