package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// EdgeFeature. one road segment read from the input. Distance <= 0 means unknown.
type EdgeFeature struct {
	Points   []geo.Coordinate
	Name     string
	Distance float64
	WayID    int64
	Oneway   bool
}

// ReadEdgeFeatures. read a GeoJSON FeatureCollection from filename. files ending in .bz2 are decompressed.
func ReadEdgeFeatures(filename string) ([]EdgeFeature, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open edge file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, errors.Wrap(err, "open bzip2 stream")
		}
		defer bz.Close()
		r = bz
	}
	return ParseEdgeFeatures(r)
}

/*
ParseEdgeFeatures. every LineString feature is one edge; every line of a MultiLineString is one edge.
other geometry types are ignored. recognized properties:

	name      string
	distance  number, meter. computed from the geometry when missing
	way_id    number, falls back to the feature id
	oneway    "yes" | "true" | "1" | "-1" | bool. "-1" reverses the geometry
*/
func ParseEdgeFeatures(r io.Reader) ([]EdgeFeature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read edge features")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}

	edges := make([]EdgeFeature, 0, len(fc.Features))
	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}

		var lines [][][]float64
		switch feature.Geometry.Type {
		case geojson.GeometryLineString:
			lines = [][][]float64{feature.Geometry.LineString}
		case geojson.GeometryMultiLineString:
			lines = feature.Geometry.MultiLineString
		default:
			continue
		}

		name := feature.PropertyMustString("name", "")
		distance := feature.PropertyMustFloat64("distance", 0)
		wayID, err := featureWayID(feature)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		oneway, reverse := parseOneway(feature.Properties["oneway"])

		for _, line := range lines {
			points, err := lineToCoordinates(line)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %d", i)
			}
			if reverse {
				points = util.ReverseG(points)
			}
			edgeDistance := distance
			if len(lines) > 1 {
				// the distance property describes the whole feature
				edgeDistance = 0
			}
			edges = append(edges, EdgeFeature{
				Points:   points,
				Name:     name,
				Distance: edgeDistance,
				WayID:    wayID,
				Oneway:   oneway,
			})
		}
	}
	return edges, nil
}

// lineToCoordinates. GeoJSON positions are [lon, lat(, alt)].
func lineToCoordinates(line [][]float64) ([]geo.Coordinate, error) {
	points := make([]geo.Coordinate, 0, len(line))
	for _, pos := range line {
		if len(pos) < 2 {
			return nil, fmt.Errorf("position %v has less than 2 values", pos)
		}
		lon, lat := pos[0], pos[1]
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("position %v out of range", pos)
		}
		points = append(points, geo.NewCoordinate(lat, lon))
	}
	return points, nil
}

func featureWayID(feature *geojson.Feature) (int64, error) {
	if v, ok := feature.Properties["way_id"]; ok {
		return toInt64(v)
	}
	if feature.ID != nil {
		return toInt64(feature.ID)
	}
	return 0, nil
}

func toInt64(v interface{}) (int64, error) {
	switch id := v.(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "parse way id")
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported way id type %T", v)
	}
}

// parseOneway. returns (oneway, reverse).
func parseOneway(v interface{}) (bool, bool) {
	switch oneway := v.(type) {
	case bool:
		return oneway, false
	case float64:
		return oneway != 0, oneway < 0
	case string:
		switch strings.ToLower(oneway) {
		case "yes", "true", "1":
			return true, false
		case "-1", "reverse":
			return true, true
		}
	}
	return false, false
}
