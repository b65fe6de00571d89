package encodedvalue

import (
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// IntEncodedValue. unsigned integer in [0, 2^bits-1].
type IntEncodedValue struct {
	bitField
}

func NewIntEncodedValue(name string, bits int) (*IntEncodedValue, error) {
	f, err := newBitField(name, bits)
	if err != nil {
		return nil, err
	}
	return &IntEncodedValue{bitField: f}, nil
}

func (ev *IntEncodedValue) MaxStorableInt() int {
	return int(ev.maxRaw())
}

// SetInt. value must already be in [0, MaxStorableInt]; it is rejected, not clamped.
func (ev *IntEncodedValue) SetInt(edgeID da.Index, access EdgeIntAccess, value int) error {
	if value < 0 || value > ev.MaxStorableInt() {
		return util.WrapErrorf(ErrOutOfRange, util.ErrBadParamInput, "%s: %d not in [0, %d]", ev.name, value,
			ev.MaxStorableInt())
	}
	return ev.setRaw(edgeID, access, uint32(value))
}

func (ev *IntEncodedValue) GetInt(edgeID da.Index, access EdgeIntAccess) (int, error) {
	raw, err := ev.getRaw(edgeID, access)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}
