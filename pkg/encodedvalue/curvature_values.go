package encodedvalue

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg"
)

// NewCustomCurvature. 0.0 = sharpest curve, 1.0 = straight. 8 bits -> step 1/255.
func NewCustomCurvature() (*DecimalEncodedValue, error) {
	return NewDecimalEncodedValue(pkg.CUSTOM_CURVATURE_KEY, pkg.CUSTOM_CURVATURE_BITS, 0.0, 1.0)
}

// NewCurvatureScore. 0 = straight, larger = more turning per meter, capped at 2^bits-1.
func NewCurvatureScore(bits int) (*IntEncodedValue, error) {
	return NewIntEncodedValue(pkg.CURVATURE_SCORE_KEY, bits)
}

// NewCurvature. beeline / edge distance, 4 bits over [0, 1.5] -> step 0.1.
func NewCurvature() (*DecimalEncodedValue, error) {
	return NewDecimalEncodedValue(pkg.CURVATURE_KEY, pkg.CURVATURE_BITS, 0.0, pkg.MAX_CURVATURE)
}
