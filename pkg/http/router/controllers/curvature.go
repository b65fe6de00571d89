package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	helper "github.com/lintang-b-s/navigatorx-curvature/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"go.uber.org/zap"
)

const defaultTopN = 10

type curvatureAPI struct {
	curvatureService CurvatureService
	log              *zap.Logger
}

func New(curvatureService CurvatureService, log *zap.Logger) *curvatureAPI {
	return &curvatureAPI{
		curvatureService: curvatureService,
		log:              log,
	}
}

func (api *curvatureAPI) Routes(group *helper.RouteGroup) {
	curvatureGroup := group.Group("/curvature")
	curvatureGroup.GET("/top", api.topEdges)
	curvatureGroup.GET("/nearest", api.nearestEdge)
	curvatureGroup.GET("/edges/:id", api.edge)
	curvatureGroup.GET("/histogram", api.histogram)
	curvatureGroup.POST("/evaluate", api.evaluate)
}

// topEdges. GET /api/curvature/top?n=10&by=score|curvature&format=json|geojson
func (api *curvatureAPI) topEdges(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request topEdgesRequest
		err     error
	)

	query := r.URL.Query()

	request.N = defaultTopN
	if n := query.Get("n"); n != "" {
		request.N, err = strconv.Atoi(n)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("n must be a valid int"))
			return
		}
	}
	request.By = query.Get("by")
	request.Format = query.Get("format")

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	order, err := report.ParseOrder(request.By)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	headers := make(http.Header)

	if request.Format == "geojson" {
		fc, err := api.curvatureService.TopEdgesGeoJSON(request.N, order)
		if err != nil {
			api.getStatusCode(w, r, err)
			return
		}
		if err := api.writeJSON(w, http.StatusOK, envelope{"data": fc}, headers); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
		return
	}

	edges, err := api.curvatureService.TopEdges(request.N, order)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewTopEdgesResponse(request.By, edges)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// nearestEdge. GET /api/curvature/nearest?lat=&lon=
func (api *curvatureAPI) nearestEdge(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestEdgeRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	edge, dist, err := api.curvatureService.NearestEdge(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestEdgeResponse(edge,
		util.RoundFloat(dist, 2))}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// edge. GET /api/curvature/edges/:id
func (api *curvatureAPI) edge(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	edgeID, err := strconv.ParseUint(p.ByName("id"), 10, 32)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("edge id must be a valid unsigned int"))
		return
	}

	edge, err := api.curvatureService.EdgeReport(datastructure.Index(edgeID))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": edge}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// histogram. GET /api/curvature/histogram
func (api *curvatureAPI) histogram(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	hist, err := api.curvatureService.ScoreHistogram()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	buckets := make([]histogramBucket, 0, len(hist))
	for _, score := range report.SortedScores(hist) {
		buckets = append(buckets, histogramBucket{Score: score, Edges: hist[score]})
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": buckets}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// evaluate. POST /api/curvature/evaluate {"polyline": "...", "distance": 0}
func (api *curvatureAPI) evaluate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request evaluateRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	points, err := geo.CoordsFromPolyline(request.Polyline)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("polyline is not a valid encoded polyline"))
		return
	}

	ev := api.curvatureService.Evaluate(points, request.Distance)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEvaluateResponse(len(points), ev)},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
