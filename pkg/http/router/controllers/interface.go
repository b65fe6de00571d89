package controllers

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
	geojson "github.com/paulmach/go.geojson"
)

type CurvatureService interface {
	TopEdges(n int, order report.Order) ([]report.EdgeReport, error)
	TopEdgesGeoJSON(n int, order report.Order) (*geojson.FeatureCollection, error)
	EdgeReport(edgeID datastructure.Index) (report.EdgeReport, error)
	NearestEdge(lat, lon float64) (report.EdgeReport, float64, error)
	ScoreHistogram() (map[int]int, error)
	Evaluate(points []geo.Coordinate, distance float64) curvature.Evaluation
}
