package curvature

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg"
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/encodedvalue"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// RelationFlags. relation bits of the way being imported. none of the curvature calculators read them.
type RelationFlags uint32

// PolylineSource. the two tags a calculator consumes. a nil point list or a missing distance is a
// normal input, not an error.
type PolylineSource interface {
	PointList() []geo.Coordinate
	EdgeDistance() (float64, bool)
}

// Calculator. computes one metric of an edge and writes it into the edge attribute block.
// implementations keep no state between calls and may be called concurrently for distinct edges.
// the returned error only comes from the attribute access (eg. edge out of range).
type Calculator interface {
	ProcessEdge(edgeID da.Index, access encodedvalue.EdgeIntAccess, way PolylineSource,
		relation RelationFlags) error
}

// Way. tag carrier handed to the calculators during import.
type Way struct {
	id   int64
	tags map[string]interface{}
}

func NewWay(id int64) *Way {
	return &Way{id: id, tags: make(map[string]interface{}, 2)}
}

// NewWayWithGeometry. way with point_list and edge_distance already set.
func NewWayWithGeometry(id int64, points []geo.Coordinate, distance float64) *Way {
	w := NewWay(id)
	w.SetTag(pkg.POINT_LIST_TAG, points)
	w.SetTag(pkg.EDGE_DISTANCE_TAG, distance)
	return w
}

func (w *Way) GetID() int64 {
	return w.id
}

func (w *Way) SetTag(key string, value interface{}) {
	w.tags[key] = value
}

// GetTag. a nil way has no tags.
func (w *Way) GetTag(key string) (interface{}, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.tags[key]
	return v, ok
}

func (w *Way) PointList() []geo.Coordinate {
	v, ok := w.GetTag(pkg.POINT_LIST_TAG)
	if !ok {
		return nil
	}
	points, _ := v.([]geo.Coordinate)
	return points
}

func (w *Way) EdgeDistance() (float64, bool) {
	v, ok := w.GetTag(pkg.EDGE_DISTANCE_TAG)
	if !ok {
		return 0, false
	}
	dist, ok := v.(float64)
	return dist, ok
}

// wayGeometry. point list and edge distance of way. nil way: no points, no distance.
func wayGeometry(way PolylineSource) ([]geo.Coordinate, float64, bool) {
	if way == nil {
		return nil, 0, false
	}
	distance, ok := way.EdgeDistance()
	return way.PointList(), distance, ok
}

// Options. thresholds are in meters.
type Options struct {
	// legs shorter than this make the vertex undefined; the triple is skipped.
	MinSegmentDistance float64
	// edges shorter than this get score 0.
	MinTotalDistance float64
	// (radians of deviation / meter) -> score
	ScalingFactor float64
}

func DefaultOptions() Options {
	return Options{
		MinSegmentDistance: pkg.MIN_SEGMENT_DISTANCE,
		MinTotalDistance:   pkg.MIN_TOTAL_DISTANCE,
		ScalingFactor:      pkg.DEFAULT_CURVATURE_SCALING_FACTOR,
	}
}

func OptionsFromConfig(cfg util.CurvatureConfig) Options {
	return Options{
		MinSegmentDistance: cfg.MinSegmentDistance,
		MinTotalDistance:   cfg.MinTotalDistance,
		ScalingFactor:      cfg.ScalingFactor,
	}
}
