package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/http"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/importer"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/logger"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"go.uber.org/zap"
)

var (
	input                 = flag.String("input", "./data/edges.geojson", "GeoJSON edge file (.geojson or .geojson.bz2)")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	searchRadius          = flag.Float64("search_radius", 0.1, "nearest edge search radius in km")
	useRateLimit          = flag.Bool("rate_limit", false, "enable the global rate limiter")
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
	opts := curvature.OptionsFromConfig(cfg)

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
	if _, err := importer.NewImporter(storage, enc.Calculators(opts, log), cfg, log).Import(ctx, features); err != nil {
		log.Fatal("import edges", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(storage, *leafBoundingBoxRadius, log)

	curvatureService := usecases.NewCurvatureService(log, storage, rtree, enc, opts, *searchRadius)

	api := http.NewServer(log)
	if err := api.Use(ctx, *useRateLimit, curvatureService); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("curvature server stopped", zap.Error(err))
		return
	}
	log.Info("Navigatorx Curvature Server Stopped")
}
