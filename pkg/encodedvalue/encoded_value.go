package encodedvalue

import (
	"errors"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

const maxBits = 32

var (
	ErrNotInitialized = errors.New("encoded value has no bit position, add it to a Manager first")
	ErrOutOfRange     = errors.New("value is outside the storable range")
)

// EncodedValue. a named field of fixed bit width inside the per-edge attribute block.
// its position is assigned once by ManagerBuilder.Build and never changes afterwards.
type EncodedValue interface {
	GetName() string
	GetBits() int
	init(cfg *InitializerConfig) error
}

/*
bitField. position of one encoded value in the edge block:

	block = [word_0][word_1]...[word_(intsPerEdge-1)], 32 bit each
	value = (block[dataIndex] >> shift) & mask

a field never straddles two words.
*/
type bitField struct {
	name        string
	bits        int
	dataIndex   int
	shift       int
	mask        uint32
	initialized bool
}

func newBitField(name string, bits int) (bitField, error) {
	if name == "" {
		return bitField{}, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value name must not be empty")
	}
	if bits <= 0 || bits > maxBits {
		return bitField{}, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s: bits must be in [1, %d], got %d",
			name, maxBits, bits)
	}
	return bitField{
		name: name,
		bits: bits,
		mask: uint32((uint64(1) << bits) - 1),
	}, nil
}

func (f *bitField) GetName() string {
	return f.name
}

func (f *bitField) GetBits() int {
	return f.bits
}

func (f *bitField) init(cfg *InitializerConfig) error {
	if f.initialized {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s was already added to a Manager", f.name)
	}
	f.dataIndex, f.shift = cfg.next(f.bits)
	f.initialized = true
	return nil
}

func (f *bitField) maxRaw() uint32 {
	return f.mask
}

func (f *bitField) getRaw(edgeID da.Index, access EdgeIntAccess) (uint32, error) {
	if !f.initialized {
		return 0, util.WrapErrorf(ErrNotInitialized, util.ErrInternalServerError, "get %s", f.name)
	}
	word, err := access.GetInt(edgeID, f.dataIndex)
	if err != nil {
		return 0, err
	}
	return (word >> f.shift) & f.mask, nil
}

// setRaw. read-modify-write of the owning word; bits outside the mask are left untouched.
func (f *bitField) setRaw(edgeID da.Index, access EdgeIntAccess, raw uint32) error {
	if !f.initialized {
		return util.WrapErrorf(ErrNotInitialized, util.ErrInternalServerError, "set %s", f.name)
	}
	word, err := access.GetInt(edgeID, f.dataIndex)
	if err != nil {
		return err
	}
	word = (word &^ (f.mask << f.shift)) | ((raw & f.mask) << f.shift)
	return access.SetInt(edgeID, f.dataIndex, word)
}
