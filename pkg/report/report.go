package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

type EdgeReport struct {
	EdgeID            da.Index `json:"edge_id"`
	WayID             int64    `json:"way_id"`
	Lat               float64  `json:"lat"`
	Lon               float64  `json:"lon"`
	Name              string   `json:"name"`
	Curvature         float64  `json:"curvature"`
	CustomCurvature   float64  `json:"custom_curvature"`
	CurvatureScore    int      `json:"curvature_score"`
	MinCurvatureAngle float64  `json:"min_curvature_angle"` // degree
	Distance          float64  `json:"distance"`
	Heading           float64  `json:"heading"`
	Polyline          string   `json:"polyline"`
	MapLink           string   `json:"map_link"`
}

type Order int

const (
	ByScore     Order = iota // highest curvature_score first
	ByCurvature              // lowest custom_curvature (sharpest turn) first
)

func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "score":
		return ByScore, nil
	case "curvature":
		return ByCurvature, nil
	default:
		return ByScore, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown order %q, expected score or curvature", s)
	}
}

// Reporter. reads the curvature values back from the edge attribute store.
type Reporter struct {
	storage *da.GraphStorage
	enc     *curvature.Encoders
}

func NewReporter(storage *da.GraphStorage, enc *curvature.Encoders) *Reporter {
	return &Reporter{storage: storage, enc: enc}
}

func (r *Reporter) EdgeReport(edgeID da.Index) (EdgeReport, error) {
	if int(edgeID) >= r.storage.NumberOfEdges() {
		return EdgeReport{}, util.WrapErrorf(nil, util.ErrNotFound, "edge %d not found", edgeID)
	}
	attributes := r.storage.GetEdgeAttributes()

	customCurvature, err := r.enc.CustomCurvature.GetDecimal(edgeID, attributes)
	if err != nil {
		return EdgeReport{}, err
	}
	beeline, err := r.enc.Curvature.GetDecimal(edgeID, attributes)
	if err != nil {
		return EdgeReport{}, err
	}
	score, err := r.enc.CurvatureScore.GetInt(edgeID, attributes)
	if err != nil {
		return EdgeReport{}, err
	}

	points := r.storage.GetEdgeGeometry(edgeID)
	rep := EdgeReport{
		EdgeID:            edgeID,
		WayID:             r.storage.GetWayID(edgeID),
		Name:              r.storage.GetStreetName(edgeID),
		Curvature:         util.RoundFloat(beeline, 2),
		CustomCurvature:   util.RoundFloat(customCurvature, 4),
		CurvatureScore:    score,
		MinCurvatureAngle: util.RoundFloat(customCurvature*180, 2),
		Distance:          util.RoundFloat(r.storage.GetEdgeDistance(edgeID), 3),
		Polyline:          geo.PolylineFromCoords(points),
		MapLink:           MapLink(points),
	}
	if len(points) > 0 {
		rep.Lat, rep.Lon = points[0].Lat, points[0].Lon
	}
	if len(points) > 1 {
		last := points[len(points)-1]
		rep.Heading = util.RoundFloat(geo.BearingTo(points[0].Lat, points[0].Lon, last.Lat, last.Lon), 1)
	}
	return rep, nil
}

// TopEdges. the n most curvy forward edges. reverse edges carry the same values and are skipped.
// a min heap of size n keeps the weakest selected edge on top, so the scan is O(E log n).
func (r *Reporter) TopEdges(n int, order Order) ([]EdgeReport, error) {
	if n <= 0 {
		return []EdgeReport{}, nil
	}
	attributes := r.storage.GetEdgeAttributes()

	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(n + 1)
	for e := 0; e < r.storage.NumberOfEdges(); e++ {
		edgeID := da.Index(e)
		if r.storage.IsReverseEdge(edgeID) {
			continue
		}

		var rank float64
		switch order {
		case ByCurvature:
			v, err := r.enc.CustomCurvature.GetDecimal(edgeID, attributes)
			if err != nil {
				return nil, err
			}
			rank = -v
		default:
			v, err := r.enc.CurvatureScore.GetInt(edgeID, attributes)
			if err != nil {
				return nil, err
			}
			rank = float64(v)
		}

		// equal ranks: the lower edge id wins
		pq.Insert(da.NewPriorityQueueNodeWithTie(rank, -float64(edgeID), edgeID))
		if pq.Size() > n {
			if _, err := pq.ExtractMin(); err != nil {
				return nil, err
			}
		}
	}

	edges := make([]da.Index, pq.Size())
	for i := len(edges) - 1; i >= 0; i-- {
		node, err := pq.ExtractMin()
		if err != nil {
			return nil, err
		}
		edges[i] = node.GetItem()
	}

	reports := make([]EdgeReport, 0, len(edges))
	for _, edgeID := range edges {
		rep, err := r.EdgeReport(edgeID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *Reporter) TopEdgesByScore(n int) ([]EdgeReport, error) {
	return r.TopEdges(n, ByScore)
}

func (r *Reporter) TopEdgesByCurvature(n int) ([]EdgeReport, error) {
	return r.TopEdges(n, ByCurvature)
}

// ScoreHistogram. number of forward edges per curvature score.
func (r *Reporter) ScoreHistogram() (map[int]int, error) {
	hist := make(map[int]int)
	attributes := r.storage.GetEdgeAttributes()
	for e := 0; e < r.storage.NumberOfEdges(); e++ {
		if r.storage.IsReverseEdge(da.Index(e)) {
			continue
		}
		score, err := r.enc.CurvatureScore.GetInt(da.Index(e), attributes)
		if err != nil {
			return nil, err
		}
		hist[score]++
	}
	return hist, nil
}

// SortedScores. keys of a ScoreHistogram, ascending.
func SortedScores(hist map[int]int) []int {
	scores := make([]int, 0, len(hist))
	for s := range hist {
		scores = append(scores, s)
	}
	sort.Ints(scores)
	return scores
}

// MapLink. openstreetmap.org link centred between the first and the last point of the edge.
func MapLink(points []geo.Coordinate) string {
	if len(points) == 0 {
		return ""
	}
	first, last := points[0], points[len(points)-1]
	lat, lon := geo.MidPoint(first.Lat, first.Lon, last.Lat, last.Lon)
	zoom := mapZoom(geo.DistanceMeters(first, last))
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=%d/%.6f/%.6f", lat, lon, zoom, lat, lon)
}

// mapZoom. roughly fits span meters into a browser window.
func mapZoom(span float64) int {
	if span < 100 {
		return 18
	}
	zoom := 18 - int(math.Ceil(math.Log2(span/100)))
	if zoom < 10 {
		return 10
	}
	return zoom
}
