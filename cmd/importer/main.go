package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/importer"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/logger"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/report"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"go.uber.org/zap"
)

var (
	input  = flag.String("input", "./data/edges.geojson", "GeoJSON edge file (.geojson or .geojson.bz2)")
	output = flag.String("output", "", "write the top edges as a GeoJSON FeatureCollection to this file (.bz2 to compress)")
	top    = flag.Int("top", 10, "number of edges to print")
	by     = flag.String("by", "score", "order of the top edges: score or curvature")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // ignore

	if err := util.ReadConfig(); err != nil {
		log.Warn("config file not loaded, using defaults", zap.Error(err))
	}
	cfg := util.NewCurvatureConfig()

	order, err := report.ParseOrder(*by)
	if err != nil {
		log.Fatal("invalid -by flag", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc, err := curvature.NewEncoders(cfg.ScoreBits)
	if err != nil {
		log.Fatal("create curvature encoded values", zap.Error(err))
	}

	features, err := importer.ReadEdgeFeatures(*input)
	if err != nil {
		log.Fatal("read edges", zap.Error(err))
	}

	storage := datastructure.NewGraphStorage(enc.Manager.IntsPerEdge())
	im := importer.NewImporter(storage, enc.Calculators(curvature.OptionsFromConfig(cfg), log), cfg, log)
	stats, err := im.Import(ctx, features)
	if err != nil {
		log.Fatal("import edges", zap.Error(err))
	}
	log.Sugar().Infof("imported %d features into %d edges (%d reverse)", stats.Features, stats.Edges, stats.ReverseEdges)

	reporter := report.NewReporter(storage, enc)
	edges, err := reporter.TopEdges(*top, order)
	if err != nil {
		log.Fatal("top edges", zap.Error(err))
	}

	for i, e := range edges {
		fmt.Printf("%3d. edge %d (way %d) %q score=%d custom_curvature=%.4f curvature=%.2f distance=%.1fm\n     %s\n",
			i+1, e.EdgeID, e.WayID, e.Name, e.CurvatureScore, e.CustomCurvature, e.Curvature, e.Distance, e.MapLink)
	}

	if *output != "" {
		if err := report.WriteFeatureCollectionFile(*output, reporter.FeatureCollection(edges)); err != nil {
			log.Fatal("write top edges", zap.Error(err))
		}
		log.Info("top edges written", zap.String("file", *output))
	}
}
