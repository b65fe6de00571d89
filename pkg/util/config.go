package util

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-curvature/pkg"
	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

type CurvatureConfig struct {
	ScoreBits          int
	ScalingFactor      float64
	MinSegmentDistance float64 // meter
	MinTotalDistance   float64 // meter

	Workers         int
	JobQueueSize    int
	SimplifyEpsilon float64 // meter, 0 disables geometry simplification
}

// NewCurvatureConfig. read curvature & importer settings from viper, falling back to the defaults.
func NewCurvatureConfig() CurvatureConfig {
	viper.SetDefault("curvature.score_bits", pkg.DEFAULT_CURVATURE_SCORE_BITS)
	viper.SetDefault("curvature.scaling_factor", pkg.DEFAULT_CURVATURE_SCALING_FACTOR)
	viper.SetDefault("curvature.min_segment_distance", pkg.MIN_SEGMENT_DISTANCE)
	viper.SetDefault("curvature.min_total_distance", pkg.MIN_TOTAL_DISTANCE)
	viper.SetDefault("importer.workers", 4)
	viper.SetDefault("importer.job_queue_size", 1024)
	viper.SetDefault("importer.simplify_epsilon", 0.0)

	return CurvatureConfig{
		ScoreBits:          viper.GetInt("curvature.score_bits"),
		ScalingFactor:      viper.GetFloat64("curvature.scaling_factor"),
		MinSegmentDistance: viper.GetFloat64("curvature.min_segment_distance"),
		MinTotalDistance:   viper.GetFloat64("curvature.min_total_distance"),
		Workers:            viper.GetInt("importer.workers"),
		JobQueueSize:       viper.GetInt("importer.job_queue_size"),
		SimplifyEpsilon:    viper.GetFloat64("importer.simplify_epsilon"),
	}
}
