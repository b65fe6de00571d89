package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	helper "github.com/lintang-b-s/navigatorx-curvature/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCurvatureService struct {
	edges     []report.EdgeReport
	lastN     int
	lastOrder report.Order
	evaluated []geo.Coordinate
}

func newFakeService() *fakeCurvatureService {
	return &fakeCurvatureService{
		edges: []report.EdgeReport{
			{EdgeID: 0, WayID: 11, Name: "Jalan Kaliurang", CurvatureScore: 63, CustomCurvature: 0.502},
			{EdgeID: 1, WayID: 12, Name: "Jalan Malioboro", CurvatureScore: 0, CustomCurvature: 1},
		},
	}
}

func (f *fakeCurvatureService) TopEdges(n int, order report.Order) ([]report.EdgeReport, error) {
	f.lastN, f.lastOrder = n, order
	if n > len(f.edges) {
		n = len(f.edges)
	}
	return f.edges[:n], nil
}

func (f *fakeCurvatureService) TopEdgesGeoJSON(n int, order report.Order) (*geojson.FeatureCollection, error) {
	f.lastN, f.lastOrder = n, order
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewLineStringFeature([][]float64{{110.37, -7.8}, {110.38, -7.8}}))
	return fc, nil
}

func (f *fakeCurvatureService) EdgeReport(edgeID datastructure.Index) (report.EdgeReport, error) {
	if int(edgeID) >= len(f.edges) {
		return report.EdgeReport{}, util.WrapErrorf(nil, util.ErrNotFound, "edge %d not found", edgeID)
	}
	return f.edges[edgeID], nil
}

func (f *fakeCurvatureService) NearestEdge(lat, lon float64) (report.EdgeReport, float64, error) {
	if lat > 0 {
		return report.EdgeReport{}, 0, util.WrapErrorf(nil, util.ErrNotFound, "no edge near (%f, %f)", lat, lon)
	}
	return f.edges[0], 3.14159, nil
}

func (f *fakeCurvatureService) ScoreHistogram() (map[int]int, error) {
	return map[int]int{63: 1, 0: 4}, nil
}

func (f *fakeCurvatureService) Evaluate(points []geo.Coordinate, distance float64) curvature.Evaluation {
	f.evaluated = points
	return curvature.Evaluation{Curvature: 0.5, Score: 63, Distance: 100, MinAngleDegree: 90}
}

func newTestRouter(svc CurvatureService) http.Handler {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestTopEdges(t *testing.T) {
	svc := newFakeService()
	h := newTestRouter(svc)

	rec, resp := do(t, h, http.MethodGet, "/api/curvature/top?n=1&by=curvature", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1, svc.lastN)
	assert.Equal(t, report.ByCurvature, svc.lastOrder)

	var data topEdgesResponse
	require.NoError(t, json.Unmarshal(resp["data"], &data))
	assert.Equal(t, "curvature", data.By)
	assert.Equal(t, 1, data.Count)
	assert.Equal(t, "Jalan Kaliurang", data.Edges[0].Name)

	rec, resp = do(t, h, http.MethodGet, "/api/curvature/top", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultTopN, svc.lastN)
	assert.Equal(t, report.ByScore, svc.lastOrder)
	require.NoError(t, json.Unmarshal(resp["data"], &data))
	assert.Equal(t, "score", data.By)
}

func TestTopEdgesGeoJSON(t *testing.T) {
	h := newTestRouter(newFakeService())

	rec, resp := do(t, h, http.MethodGet, "/api/curvature/top?n=3&format=geojson", "")
	require.Equal(t, http.StatusOK, rec.Code)

	fc, err := geojson.UnmarshalFeatureCollection(resp["data"])
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.True(t, fc.Features[0].Geometry.IsLineString())
}

func TestTopEdgesBadRequest(t *testing.T) {
	h := newTestRouter(newFakeService())

	testCases := []struct {
		name   string
		target string
	}{
		{name: "n not a number", target: "/api/curvature/top?n=abc"},
		{name: "n zero", target: "/api/curvature/top?n=0"},
		{name: "n too large", target: "/api/curvature/top?n=5000"},
		{name: "unknown order", target: "/api/curvature/top?by=length"},
		{name: "unknown format", target: "/api/curvature/top?format=xml"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, string(resp["error"]), "BAD_REQUEST")
		})
	}
}

func TestNearestEdge(t *testing.T) {
	h := newTestRouter(newFakeService())

	testCases := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "found", target: "/api/curvature/nearest?lat=-7.8&lon=110.37", wantStatus: http.StatusOK},
		{name: "missing lon", target: "/api/curvature/nearest?lat=-7.8", wantStatus: http.StatusBadRequest},
		{name: "lat out of range", target: "/api/curvature/nearest?lat=-91&lon=110", wantStatus: http.StatusBadRequest},
		{name: "no edge nearby", target: "/api/curvature/nearest?lat=1&lon=110", wantStatus: http.StatusNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var data nearestEdgeResponse
			require.NoError(t, json.Unmarshal(resp["data"], &data))
			assert.Equal(t, int64(11), data.Edge.WayID)
			assert.Equal(t, 3.14, data.DistanceToEdge)
		})
	}
}

func TestEdge(t *testing.T) {
	h := newTestRouter(newFakeService())

	rec, resp := do(t, h, http.MethodGet, "/api/curvature/edges/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var edge report.EdgeReport
	require.NoError(t, json.Unmarshal(resp["data"], &edge))
	assert.Equal(t, "Jalan Malioboro", edge.Name)

	rec, _ = do(t, h, http.MethodGet, "/api/curvature/edges/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/curvature/edges/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistogram(t *testing.T) {
	h := newTestRouter(newFakeService())

	rec, resp := do(t, h, http.MethodGet, "/api/curvature/histogram", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var buckets []histogramBucket
	require.NoError(t, json.Unmarshal(resp["data"], &buckets))
	assert.Equal(t, []histogramBucket{{Score: 0, Edges: 4}, {Score: 63, Edges: 1}}, buckets)
}

func TestEvaluate(t *testing.T) {
	svc := newFakeService()
	h := newTestRouter(svc)

	points := []geo.Coordinate{
		geo.NewCoordinate(-7.8, 110.37),
		geo.NewCoordinate(-7.7995, 110.37),
		geo.NewCoordinate(-7.7995, 110.3705),
	}
	body := `{"polyline": "` + geo.PolylineFromCoords(points) + `"}`

	rec, resp := do(t, h, http.MethodPost, "/api/curvature/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.evaluated, 3)
	assert.InDelta(t, -7.7995, svc.evaluated[1].Lat, 1e-5)

	var data evaluateResponse
	require.NoError(t, json.Unmarshal(resp["data"], &data))
	assert.Equal(t, 3, data.Points)
	assert.Equal(t, 63, data.CurvatureScore)
	assert.Equal(t, 0.5, data.CustomCurvature)
	assert.Equal(t, 90.0, data.MinCurvatureAngle)
}

func TestEvaluateBadRequest(t *testing.T) {
	h := newTestRouter(newFakeService())

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"polyline": `},
		{name: "missing polyline", body: `{"distance": 10}`},
		{name: "negative distance", body: `{"polyline": "_p~iF~ps|U", "distance": -1}`},
		{name: "invalid polyline", body: `{"polyline": "_p~iF~ps|U_"}`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, http.MethodPost, "/api/curvature/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
