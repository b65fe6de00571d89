package controllers

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
)

type topEdgesRequest struct {
	N      int    `json:"n" validate:"required,min=1,max=1000"`
	By     string `json:"by" validate:"omitempty,oneof=score curvature"`
	Format string `json:"format" validate:"omitempty,oneof=json geojson"`
}

type topEdgesResponse struct {
	By    string              `json:"by"`
	Count int                 `json:"count"`
	Edges []report.EdgeReport `json:"edges"`
}

func NewTopEdgesResponse(by string, edges []report.EdgeReport) topEdgesResponse {
	if by == "" {
		by = "score"
	}
	return topEdgesResponse{
		By:    by,
		Count: len(edges),
		Edges: edges,
	}
}

type nearestEdgeRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type nearestEdgeResponse struct {
	Edge           report.EdgeReport `json:"edge"`
	DistanceToEdge float64           `json:"distance_to_edge"`
}

func NewNearestEdgeResponse(edge report.EdgeReport, dist float64) nearestEdgeResponse {
	return nearestEdgeResponse{
		Edge:           edge,
		DistanceToEdge: dist,
	}
}

type evaluateRequest struct {
	Polyline string  `json:"polyline" validate:"required"`
	Distance float64 `json:"distance" validate:"omitempty,min=0"`
}

type evaluateResponse struct {
	Points            int     `json:"points"`
	Distance          float64 `json:"distance"`
	Curvature         float64 `json:"curvature"`
	CustomCurvature   float64 `json:"custom_curvature"`
	CurvatureScore    int     `json:"curvature_score"`
	MinCurvatureAngle float64 `json:"min_curvature_angle"`
	TotalDeviation    float64 `json:"total_deviation"`
	DeviationPerMeter float64 `json:"deviation_per_meter"`
}

func NewEvaluateResponse(points int, ev curvature.Evaluation) evaluateResponse {
	return evaluateResponse{
		Points:            points,
		Distance:          ev.Distance,
		Curvature:         ev.BeelineCurvature,
		CustomCurvature:   ev.Curvature,
		CurvatureScore:    ev.Score,
		MinCurvatureAngle: ev.MinAngleDegree,
		TotalDeviation:    ev.TotalDeviation,
		DeviationPerMeter: ev.DeviationPerMeter,
	}
}

type histogramBucket struct {
	Score int `json:"curvature_score"`
	Edges int `json:"edges"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
