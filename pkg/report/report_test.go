package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/importer"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func destination(c geo.Coordinate, bearing, meters float64) geo.Coordinate {
	lat, lon := geo.GetDestinationPoint(c.Lat, c.Lon, bearing, meters/1000)
	return geo.NewCoordinate(lat, lon)
}

// turn. a -> b heading north, then b -> c turning right by deviation degree
func turn(a geo.Coordinate, leg, deviation float64) []geo.Coordinate {
	b := destination(a, 0, leg)
	c := destination(b, deviation, leg)
	return []geo.Coordinate{a, b, c}
}

/*
newTestReporter.

	0 straight           score 0
	1 right angle        score ~63
	2 reverse of 1
	3 30 degree bend     score ~10
	4 hairpin (150)      score ~105
	5 copy of 1
*/
func newTestReporter(t *testing.T) (*Reporter, *da.GraphStorage) {
	t.Helper()
	enc, err := curvature.NewEncoders(8)
	require.NoError(t, err)
	storage := da.NewGraphStorage(enc.Manager.IntsPerEdge())
	calculators := enc.Calculators(curvature.DefaultOptions(), zap.NewNop())

	origin := geo.NewCoordinate(-7.7956, 110.3695)
	straight := []geo.Coordinate{origin, destination(origin, 0, 100), destination(origin, 0, 200)}
	rightAngle := turn(geo.NewCoordinate(-7.80, 110.37), 50, 90)
	bend := turn(geo.NewCoordinate(-7.81, 110.37), 100, 30)
	hairpin := turn(geo.NewCoordinate(-7.82, 110.37), 50, 150)

	storage.AddEdge(straight, 200, "Jalan Malioboro", 1)
	e1 := storage.AddEdge(rightAngle, 100, "Jalan Kaliurang", 2)
	storage.AddReverseEdge(e1)
	storage.AddEdge(bend, 200, "Jalan Magelang", 3)
	storage.AddEdge(hairpin, 100, "Jalan Kaliadem", 4)
	storage.AddEdge(rightAngle, 100, "Jalan Kaliurang", 5)

	for e := 0; e < storage.NumberOfEdges(); e++ {
		edgeID := da.Index(e)
		points := storage.GetEdgeGeometry(edgeID)
		way := curvature.NewWayWithGeometry(storage.GetWayID(edgeID), points, storage.GetEdgeDistance(edgeID))
		for _, c := range calculators {
			require.NoError(t, c.ProcessEdge(edgeID, storage.GetEdgeAttributes(), way, 0))
		}
	}
	return NewReporter(storage, enc), storage
}

func edgeIDs(reports []EdgeReport) []da.Index {
	ids := make([]da.Index, 0, len(reports))
	for _, rep := range reports {
		ids = append(ids, rep.EdgeID)
	}
	return ids
}

func TestTopEdges(t *testing.T) {
	r, _ := newTestReporter(t)

	testCases := []struct {
		name     string
		n        int
		order    Order
		expected []da.Index
	}{
		{name: "top 2 by score", n: 2, order: ByScore, expected: []da.Index{4, 1}},
		{name: "ties keep the lower edge id first", n: 3, order: ByScore, expected: []da.Index{4, 1, 5}},
		{name: "all forward edges by score", n: 10, order: ByScore, expected: []da.Index{4, 1, 5, 3, 0}},
		{name: "sharpest first", n: 3, order: ByCurvature, expected: []da.Index{4, 1, 5}},
		{name: "all by curvature", n: 10, order: ByCurvature, expected: []da.Index{4, 1, 5, 3, 0}},
		{name: "zero", n: 0, order: ByScore, expected: []da.Index{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			reports, err := r.TopEdges(tt.n, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, edgeIDs(reports))
		})
	}

	byScore, err := r.TopEdgesByScore(10)
	require.NoError(t, err)
	for i := 1; i < len(byScore); i++ {
		assert.GreaterOrEqual(t, byScore[i-1].CurvatureScore, byScore[i].CurvatureScore)
	}
	byCurvature, err := r.TopEdgesByCurvature(10)
	require.NoError(t, err)
	for i := 1; i < len(byCurvature); i++ {
		assert.LessOrEqual(t, byCurvature[i-1].CustomCurvature, byCurvature[i].CustomCurvature)
	}
}

func TestEdgeReport(t *testing.T) {
	r, storage := newTestReporter(t)

	rep, err := r.EdgeReport(1)
	require.NoError(t, err)
	points := storage.GetEdgeGeometry(1)

	assert.Equal(t, da.Index(1), rep.EdgeID)
	assert.Equal(t, int64(2), rep.WayID)
	assert.Equal(t, "Jalan Kaliurang", rep.Name)
	assert.Equal(t, points[0].Lat, rep.Lat)
	assert.Equal(t, points[0].Lon, rep.Lon)
	assert.InDelta(t, 0.5, rep.CustomCurvature, 0.01)
	assert.InDelta(t, 90, rep.MinCurvatureAngle, 1)
	assert.InDelta(t, 0.7, rep.Curvature, 1e-9)
	assert.InDelta(t, 63, rep.CurvatureScore, 1)
	assert.Equal(t, 100.0, rep.Distance)
	assert.InDelta(t, 45, rep.Heading, 0.5)
	assert.True(t, strings.HasPrefix(rep.MapLink, "https://www.openstreetmap.org/?mlat=-7.79"))

	decoded, err := geo.CoordsFromPolyline(rep.Polyline)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range decoded {
		assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, points[i].Lon, decoded[i].Lon, 1e-5)
	}

	straight, err := r.EdgeReport(0)
	require.NoError(t, err)
	assert.Equal(t, 0, straight.CurvatureScore)
	assert.Equal(t, 1.0, straight.CustomCurvature)

	_, err = r.EdgeReport(99)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("curvature")
	require.NoError(t, err)
	assert.Equal(t, ByCurvature, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, ByScore, o)

	_, err = ParseOrder("speed")
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestScoreHistogram(t *testing.T) {
	r, _ := newTestReporter(t)
	hist, err := r.ScoreHistogram()
	require.NoError(t, err)

	total := 0
	for _, c := range hist {
		total += c
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 1, hist[0])

	scores := SortedScores(hist)
	assert.Equal(t, 0, scores[0])
	assert.Len(t, scores, 4)
}

func TestMapLink(t *testing.T) {
	assert.Equal(t, "", MapLink(nil))

	points := []geo.Coordinate{geo.NewCoordinate(0, 10), geo.NewCoordinate(0, 10.0001), geo.NewCoordinate(0, 10.0002)}
	assert.Equal(t, "https://www.openstreetmap.org/?mlat=0.000000&mlon=10.000100#map=18/0.000000/10.000100",
		MapLink(points))

	assert.Equal(t, 18, mapZoom(50))
	assert.Equal(t, 17, mapZoom(200))
	assert.Equal(t, 10, mapZoom(1e7))
}

func TestFeatureCollection(t *testing.T) {
	r, storage := newTestReporter(t)
	reports, err := r.TopEdgesByScore(2)
	require.NoError(t, err)

	fc := r.FeatureCollection(reports)
	require.Len(t, fc.Features, 2)
	hairpin := fc.Features[0]
	assert.Equal(t, geojson.GeometryLineString, hairpin.Geometry.Type)
	first := storage.GetEdgeGeometry(4)[0]
	assert.Equal(t, []float64{first.Lon, first.Lat}, hairpin.Geometry.LineString[0])
	assert.Equal(t, "Jalan Kaliadem", hairpin.PropertyMustString("name"))

	var buf bytes.Buffer
	require.NoError(t, WriteFeatureCollection(&buf, fc))
	assert.Contains(t, buf.String(), `"curvature_score"`)

	// exported edges can be imported again
	filename := filepath.Join(t.TempDir(), "top.geojson.bz2")
	require.NoError(t, WriteFeatureCollectionFile(filename, fc))
	features, err := importer.ReadEdgeFeatures(filename)
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "Jalan Kaliadem", features[0].Name)
	assert.Equal(t, int64(4), features[0].WayID)
	assert.Equal(t, 100.0, features[0].Distance)
	assert.Len(t, features[0].Points, 3)
}

func TestWriteFeatureCollectionFileReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	r, _ := newTestReporter(t)
	reports, err := r.TopEdgesByScore(2)
	require.NoError(t, err)
	fc := r.FeatureCollection(reports)

	testCases := []struct {
		name     string
		filename string
	}{
		{name: "plain", filename: "top.geojson"},
		// the bzip2 stream is only written when it is closed
		{name: "bzip2", filename: "top.geojson.bz2"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.Symlink("/dev/full", filename))
			assert.Error(t, WriteFeatureCollectionFile(filename, fc))
		})
	}

	missingDir := filepath.Join(t.TempDir(), "missing", "top.geojson")
	assert.Error(t, WriteFeatureCollectionFile(missingDir, fc))
}
