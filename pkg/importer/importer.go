package importer

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/curvature"
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"go.uber.org/zap"
)

type edgeJob struct {
	edgeID da.Index
	way    *curvature.Way
}

type edgeResult struct {
	edgeID da.Index
	err    error
}

type ImportStats struct {
	Features     int
	Edges        int
	ReverseEdges int
	Failed       int
}

// Importer. adds edge features to the graph storage and runs every calculator once per edge.
type Importer struct {
	storage     *da.GraphStorage
	calculators []curvature.Calculator
	cfg         util.CurvatureConfig
	log         *zap.Logger
}

func NewImporter(storage *da.GraphStorage, calculators []curvature.Calculator, cfg util.CurvatureConfig,
	log *zap.Logger) *Importer {
	return &Importer{
		storage:     storage,
		calculators: calculators,
		cfg:         cfg,
		log:         log,
	}
}

// Import. edges are first appended to the storage, then fanned out over the worker pool.
// one worker runs all calculators of an edge, so an edge attribute block has a single writer.
func (im *Importer) Import(ctx context.Context, features []EdgeFeature) (ImportStats, error) {
	stats := ImportStats{Features: len(features)}
	jobs := make([]edgeJob, 0, len(features))

	for _, feature := range features {
		distance := feature.Distance
		if distance <= 0 {
			distance = geo.PolylineLength(feature.Points)
		}

		edgeID := im.storage.AddEdge(feature.Points, distance, feature.Name, feature.WayID)
		jobs = append(jobs, edgeJob{
			edgeID: edgeID,
			way:    curvature.NewWayWithGeometry(feature.WayID, feature.Points, distance),
		})
		stats.Edges++

		if !feature.Oneway {
			reverseID := im.storage.AddReverseEdge(edgeID)
			jobs = append(jobs, edgeJob{
				edgeID: reverseID,
				way:    curvature.NewWayWithGeometry(feature.WayID, util.ReverseG(feature.Points), distance),
			})
			stats.ReverseEdges++
		}
	}

	im.log.Sugar().Infof("computing curvature of %d edges with %d workers...", len(jobs), im.cfg.Workers)

	failed, err := im.processEdges(ctx, jobs)
	stats.Failed = failed
	if err != nil {
		return stats, err
	}

	if util.StopConcurrentOperation(ctx) {
		return stats, fmt.Errorf("import cancelled before simplification: %w", ctx.Err())
	}

	if im.cfg.SimplifyEpsilon > 0 {
		before := im.storage.GetGlobalPointsCount()
		im.storage.SimplifyGeometries(im.cfg.SimplifyEpsilon)
		im.log.Sugar().Infof("simplified edge geometries: %d -> %d points", before,
			im.storage.GetGlobalPointsCount())
	}

	im.log.Info("import done", zap.Int("edges", stats.Edges), zap.Int("reverseEdges", stats.ReverseEdges))
	return stats, nil
}

func (im *Importer) processEdges(ctx context.Context, jobs []edgeJob) (int, error) {
	attributes := im.storage.GetEdgeAttributes()

	workers := concurrent.NewWorkerPool[edgeJob, edgeResult](im.cfg.Workers, im.cfg.JobQueueSize)
	workers.Start(func(job edgeJob) edgeResult {
		for _, calc := range im.calculators {
			if err := calc.ProcessEdge(job.edgeID, attributes, job.way, 0); err != nil {
				return edgeResult{edgeID: job.edgeID, err: err}
			}
		}
		return edgeResult{edgeID: job.edgeID}
	})

	go func() {
		defer workers.Close()
		for _, job := range jobs {
			if !workers.AddJobContext(ctx, job) {
				return
			}
		}
	}()
	go workers.Wait()

	var (
		firstErr  error
		failed    int
		processed int
	)
	for res := range workers.CollectResults() {
		processed++
		if res.err != nil {
			failed++
			if firstErr == nil {
				firstErr = util.WrapErrorf(res.err, util.ErrInternalServerError, "process edge %d", res.edgeID)
			}
		}
		if processed%100000 == 0 {
			im.log.Sugar().Infof("processed %d/%d edges", processed, len(jobs))
		}
	}

	if firstErr != nil {
		return failed, firstErr
	}
	if err := ctx.Err(); err != nil && processed < len(jobs) {
		return failed, fmt.Errorf("import cancelled after %d/%d edges: %w", processed, len(jobs), err)
	}
	return failed, nil
}
