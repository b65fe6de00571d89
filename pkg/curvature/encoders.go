package curvature

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/encodedvalue"
	"go.uber.org/zap"
)

// Encoders. the curvature encoded values registered in one Manager.
type Encoders struct {
	Manager         *encodedvalue.Manager
	CustomCurvature *encodedvalue.DecimalEncodedValue
	CurvatureScore  *encodedvalue.IntEncodedValue
	Curvature       *encodedvalue.DecimalEncodedValue
}

func NewEncoders(scoreBits int) (*Encoders, error) {
	customCurvature, err := encodedvalue.NewCustomCurvature()
	if err != nil {
		return nil, err
	}
	curvatureScore, err := encodedvalue.NewCurvatureScore(scoreBits)
	if err != nil {
		return nil, err
	}
	beeline, err := encodedvalue.NewCurvature()
	if err != nil {
		return nil, err
	}

	m, err := encodedvalue.NewManagerBuilder().
		Add(customCurvature, curvatureScore, beeline).
		Build()
	if err != nil {
		return nil, err
	}
	return &Encoders{
		Manager:         m,
		CustomCurvature: customCurvature,
		CurvatureScore:  curvatureScore,
		Curvature:       beeline,
	}, nil
}

// Calculators. one calculator per encoded value, in registration order.
func (e *Encoders) Calculators(opts Options, log *zap.Logger) []Calculator {
	return []Calculator{
		NewMinAngleCalculator(e.CustomCurvature, opts),
		NewScoreCalculator(e.CurvatureScore, opts, log),
		NewBeelineCalculator(e.Curvature, opts),
	}
}
