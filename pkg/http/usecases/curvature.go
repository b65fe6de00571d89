package usecases

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

type CurvatureService struct {
	log          *zap.Logger
	storage      *datastructure.GraphStorage
	reporter     *report.Reporter
	spatialIndex SpatialIndex
	encoders     *curvature.Encoders
	opts         curvature.Options
	searchRadius float64 // km
}

func NewCurvatureService(log *zap.Logger, storage *datastructure.GraphStorage, spatialIndex SpatialIndex,
	encoders *curvature.Encoders, opts curvature.Options, searchRadius float64) *CurvatureService {
	return &CurvatureService{
		log:          log,
		storage:      storage,
		reporter:     report.NewReporter(storage, encoders),
		spatialIndex: spatialIndex,
		encoders:     encoders,
		opts:         opts,
		searchRadius: searchRadius,
	}
}

func (cs *CurvatureService) TopEdges(n int, order report.Order) ([]report.EdgeReport, error) {
	return cs.reporter.TopEdges(n, order)
}

func (cs *CurvatureService) TopEdgesGeoJSON(n int, order report.Order) (*geojson.FeatureCollection, error) {
	edges, err := cs.reporter.TopEdges(n, order)
	if err != nil {
		return nil, err
	}
	return cs.reporter.FeatureCollection(edges), nil
}

func (cs *CurvatureService) EdgeReport(edgeID datastructure.Index) (report.EdgeReport, error) {
	return cs.reporter.EdgeReport(edgeID)
}

// NearestEdge. report of the edge closest to (lat, lon) within the search radius, and the distance to it in meters.
func (cs *CurvatureService) NearestEdge(lat, lon float64) (report.EdgeReport, float64, error) {
	edgeID, dist, err := cs.spatialIndex.NearestEdge(cs.storage, lat, lon, cs.searchRadius)
	if err != nil {
		return report.EdgeReport{}, 0, err
	}
	edge, err := cs.reporter.EdgeReport(edgeID)
	if err != nil {
		return report.EdgeReport{}, 0, err
	}
	return edge, dist, nil
}

func (cs *CurvatureService) ScoreHistogram() (map[int]int, error) {
	return cs.reporter.ScoreHistogram()
}

func (cs *CurvatureService) Evaluate(points []geo.Coordinate, distance float64) curvature.Evaluation {
	return curvature.Evaluate(points, distance, cs.opts, cs.encoders.CurvatureScore.MaxStorableInt())
}
