package encodedvalue

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

/*
DecimalEncodedValue. maps [minValue, maxValue] onto 2^bits evenly spaced levels:

	step    = (maxValue - minValue) / (2^bits - 1)
	encoded = round((clamp(value) - minValue) / step)
	decoded = minValue + encoded * step
*/
type DecimalEncodedValue struct {
	bitField
	minValue float64
	maxValue float64
	step     float64
}

func NewDecimalEncodedValue(name string, bits int, minValue, maxValue float64) (*DecimalEncodedValue, error) {
	f, err := newBitField(name, bits)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(minValue) || math.IsNaN(maxValue) || math.IsInf(minValue, 0) || math.IsInf(maxValue, 0) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s: range must be finite", name)
	}
	if maxValue <= minValue {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s: maxValue %v must be greater than minValue %v",
			name, maxValue, minValue)
	}
	return &DecimalEncodedValue{
		bitField: f,
		minValue: minValue,
		maxValue: maxValue,
		step:     (maxValue - minValue) / float64(f.maxRaw()),
	}, nil
}

// Encode. NaN is stored as minValue.
func (ev *DecimalEncodedValue) Encode(value float64) uint32 {
	if math.IsNaN(value) {
		return 0
	}
	value = util.ClampFloat(value, ev.minValue, ev.maxValue)
	stored := math.Round((value - ev.minValue) / ev.step)
	return uint32(util.ClampFloat(stored, 0, float64(ev.maxRaw())))
}

func (ev *DecimalEncodedValue) Decode(stored uint32) float64 {
	return ev.minValue + float64(stored&ev.mask)*ev.step
}

func (ev *DecimalEncodedValue) Step() float64 {
	return ev.step
}

func (ev *DecimalEncodedValue) MinStorableDecimal() float64 {
	return ev.minValue
}

func (ev *DecimalEncodedValue) MaxStorableDecimal() float64 {
	return ev.Decode(ev.maxRaw())
}

func (ev *DecimalEncodedValue) SetDecimal(edgeID da.Index, access EdgeIntAccess, value float64) error {
	return ev.setRaw(edgeID, access, ev.Encode(value))
}

func (ev *DecimalEncodedValue) GetDecimal(edgeID da.Index, access EdgeIntAccess) (float64, error) {
	raw, err := ev.getRaw(edgeID, access)
	if err != nil {
		return 0, err
	}
	return ev.Decode(raw), nil
}
