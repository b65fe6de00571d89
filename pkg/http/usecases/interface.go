package usecases

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
)

type SpatialIndex interface {
	NearestEdge(storage *datastructure.GraphStorage, qLat, qLon, radius float64) (datastructure.Index, float64, error)
}
