package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const maxSearchResults = 64

type Rtree struct {
	tr *rtree.RTreeG[da.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one leaf per forward edge: the bounding box of its geometry, grown by boundingBoxRadius (in km).
// reverse edges share the geometry of their forward edge and are not indexed.
func (rt *Rtree) Build(storage *da.GraphStorage, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	for e := 0; e < storage.NumberOfEdges(); e++ {
		edgeID := da.Index(e)
		if storage.IsReverseEdge(edgeID) {
			continue
		}
		points := storage.GetEdgeGeometry(edgeID)
		if len(points) == 0 {
			continue
		}

		minLat, minLon := math.Inf(1), math.Inf(1)
		maxLat, maxLon := math.Inf(-1), math.Inf(-1)
		for _, p := range points {
			lowerLat, lowerLon := geo.GetDestinationPoint(p.Lat, p.Lon, 225, boundingBoxRadius)
			upperLat, upperLon := geo.GetDestinationPoint(p.Lat, p.Lon, 45, boundingBoxRadius)
			minLat = math.Min(minLat, lowerLat)
			minLon = math.Min(minLon, lowerLon)
			maxLat = math.Max(maxLat, upperLat)
			maxLon = math.Max(maxLon, upperLon)
		}

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, edgeID)
	}
	log.Info("R-tree spatial index built.", zap.Int("edges", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. edges whose bounding box intersects the box of radius km around (qLat, qLon).
// at most maxSearchResults edges, in tree order.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []da.Index {
	results := make([]da.Index, 0, 10)
	rt.searchBox(qLat, qLon, radius, func(edgeID da.Index) bool {
		results = append(results, edgeID)
		return len(results) < maxSearchResults
	})
	return results
}

func (rt *Rtree) searchBox(qLat, qLon, radius float64, iter func(edgeID da.Index) bool) {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, edgeID da.Index) bool {
			return iter(edgeID)
		})
}

// NearestEdge. edge whose geometry is closest to (qLat, qLon), searching radius km around it.
// returns the distance in meter. every edge in the search box is a candidate.
func (rt *Rtree) NearestEdge(storage *da.GraphStorage, qLat, qLon, radius float64) (da.Index, float64, error) {
	q := geo.NewCoordinate(qLat, qLon)

	best := da.Index(0)
	bestDist := math.Inf(1)
	rt.searchBox(qLat, qLon, radius, func(edgeID da.Index) bool {
		dist := distanceToEdge(storage.GetEdgeGeometry(edgeID), q)
		if dist < bestDist || (dist == bestDist && edgeID < best) {
			best, bestDist = edgeID, dist
		}
		return true
	})
	if math.IsInf(bestDist, 1) || bestDist > radius*1000 {
		return 0, 0, util.WrapErrorf(nil, util.ErrNotFound, "no edge within %.3f km of (%f, %f)", radius, qLat, qLon)
	}
	return best, bestDist, nil
}

func distanceToEdge(points []geo.Coordinate, q geo.Coordinate) float64 {
	if len(points) == 1 {
		return geo.DistanceMeters(points[0], q)
	}
	dist := math.Inf(1)
	for i := 0; i+1 < len(points); i++ {
		dist = math.Min(dist, geo.PointLinePerpendicularDistance(points[i], points[i+1], q))
	}
	return dist
}
