package report

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// FeatureCollection. one LineString feature per report, with the report fields as properties.
func (r *Reporter) FeatureCollection(reports []EdgeReport) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rep := range reports {
		points := r.storage.GetEdgeGeometry(rep.EdgeID)
		line := make([][]float64, 0, len(points))
		for _, p := range points {
			line = append(line, []float64{p.Lon, p.Lat})
		}

		f := geojson.NewLineStringFeature(line)
		f.ID = rep.WayID
		f.SetProperty("edge_id", rep.EdgeID)
		f.SetProperty("name", rep.Name)
		f.SetProperty("curvature", rep.Curvature)
		f.SetProperty("custom_curvature", rep.CustomCurvature)
		f.SetProperty("curvature_score", rep.CurvatureScore)
		f.SetProperty("min_curvature_angle", rep.MinCurvatureAngle)
		f.SetProperty("distance", rep.Distance)
		f.SetProperty("map_link", rep.MapLink)
		fc.AddFeature(f)
	}
	return fc
}

func WriteFeatureCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal feature collection")
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "write feature collection")
}

// WriteFeatureCollectionFile. filename ending in .bz2 is bzip2 compressed.
// the first write, flush or close error is returned.
func WriteFeatureCollectionFile(filename string, fc *geojson.FeatureCollection) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create geojson file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close geojson file")
		}
	}()

	if !strings.HasSuffix(filename, ".bz2") {
		return writeBuffered(f, fc)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return errors.Wrap(err, "open bzip2 stream")
	}
	if err := writeBuffered(bz, fc); err != nil {
		_ = bz.Close()
		return err
	}
	return errors.Wrap(bz.Close(), "close bzip2 stream")
}

func writeBuffered(w io.Writer, fc *geojson.FeatureCollection) error {
	bw := bufio.NewWriter(w)
	if err := WriteFeatureCollection(bw, fc); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "flush feature collection")
}
