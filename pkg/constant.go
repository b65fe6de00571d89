package pkg

// encoded value keys
const (
	CUSTOM_CURVATURE_KEY = "custom_curvature"
	CURVATURE_SCORE_KEY  = "curvature_score"
	CURVATURE_KEY        = "curvature"
)

const (
	CUSTOM_CURVATURE_BITS        = 8
	DEFAULT_CURVATURE_SCORE_BITS = 8
	CURVATURE_BITS               = 4
	// beeline / distance can exceed 1 when the edge distance comes from an external source
	MAX_CURVATURE = 1.5

	// meters. segments shorter than this are treated as locally straight.
	MIN_SEGMENT_DISTANCE = 1e-7
	// meters. edges shorter than this get curvature score 0.
	MIN_TOTAL_DISTANCE = 1.0

	// (radians/meter) -> score multiplier
	DEFAULT_CURVATURE_SCALING_FACTOR = 4000.0
)

const (
	// point list & edge distance tags handed to the calculators
	POINT_LIST_TAG    = "point_list"
	EDGE_DISTANCE_TAG = "edge_distance"
)
