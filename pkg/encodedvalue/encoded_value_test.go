package encodedvalue

import (
	"errors"
	"math"
	"testing"

	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecimalEncodedValueInvalidConfig(t *testing.T) {
	testCases := []struct {
		name     string
		bits     int
		min, max float64
	}{
		{name: "zero bits", bits: 0, min: 0, max: 1},
		{name: "negative bits", bits: -3, min: 0, max: 1},
		{name: "too many bits", bits: 33, min: 0, max: 1},
		{name: "max equals min", bits: 8, min: 1, max: 1},
		{name: "max below min", bits: 8, min: 2, max: 1},
		{name: "nan range", bits: 8, min: math.NaN(), max: 1},
		{name: "infinite range", bits: 8, min: 0, max: math.Inf(1)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewDecimalEncodedValue("x", tt.bits, tt.min, tt.max)
			assert.Nil(t, ev)
			assert.True(t, errors.Is(err, util.ErrBadParamInput), "got %v", err)
		})
	}
}

func TestNewIntEncodedValueInvalidConfig(t *testing.T) {
	for _, bits := range []int{0, -1, 33} {
		ev, err := NewIntEncodedValue("x", bits)
		assert.Nil(t, ev)
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	}
	_, err := NewIntEncodedValue("", 8)
	assert.Error(t, err)
}

func TestDecimalEncodeDecode(t *testing.T) {
	ev, err := NewCustomCurvature()
	require.NoError(t, err)

	assert.InDelta(t, 1.0/255, ev.Step(), 1e-15)
	assert.Equal(t, 0.0, ev.MinStorableDecimal())
	assert.InDelta(t, 1.0, ev.MaxStorableDecimal(), 1e-12)

	testCases := []struct {
		name  string
		value float64
		want  uint32
	}{
		{name: "min", value: 0, want: 0},
		{name: "max", value: 1, want: 255},
		{name: "quarter", value: 0.25, want: 64},
		{name: "below range", value: -3, want: 0},
		{name: "above range", value: 42, want: 255},
		{name: "nan", value: math.NaN(), want: 0},
		{name: "minus inf", value: math.Inf(-1), want: 0},
		{name: "plus inf", value: math.Inf(1), want: 255},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ev.Encode(tt.value))
		})
	}
}

func TestDecimalRoundTripWithinHalfStep(t *testing.T) {
	ranges := []struct {
		bits     int
		min, max float64
	}{
		{bits: 8, min: 0, max: 1},
		{bits: 4, min: -2.5, max: 7.5},
		{bits: 12, min: 100, max: 160},
		{bits: 32, min: 0, max: 1},
	}
	for _, r := range ranges {
		ev, err := NewDecimalEncodedValue("v", r.bits, r.min, r.max)
		require.NoError(t, err)
		for i := 0; i <= 1000; i++ {
			v := r.min + (r.max-r.min)*float64(i)/1000
			got := ev.Decode(ev.Encode(v))
			assert.LessOrEqual(t, math.Abs(got-v), ev.Step()/2+1e-9, "bits=%d v=%v got=%v", r.bits, v, got)
		}
	}
}

func TestIntEncodedValueRejectsOutOfRange(t *testing.T) {
	score, err := NewCurvatureScore(6)
	require.NoError(t, err)
	m, err := NewManagerBuilder().Add(score).Build()
	require.NoError(t, err)
	access := NewArrayEdgeIntAccessFromManager(m)

	assert.Equal(t, 63, score.MaxStorableInt())

	require.NoError(t, score.SetInt(0, access, 63))
	got, err := score.GetInt(0, access)
	require.NoError(t, err)
	assert.Equal(t, 63, got)

	err = score.SetInt(0, access, 64)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	err = score.SetInt(0, access, -1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	got, err = score.GetInt(0, access)
	require.NoError(t, err)
	assert.Equal(t, 63, got, "rejected writes leave the stored value alone")
}

func TestIntEncodedValueFullWord(t *testing.T) {
	ev, err := NewIntEncodedValue("wide", 32)
	require.NoError(t, err)
	_, err = NewManagerBuilder().Add(ev).Build()
	require.NoError(t, err)

	assert.Equal(t, int(math.MaxUint32), ev.MaxStorableInt())
	access := NewArrayEdgeIntAccess(1)
	require.NoError(t, ev.SetInt(3, access, math.MaxUint32))
	got, err := ev.GetInt(3, access)
	require.NoError(t, err)
	assert.Equal(t, int(math.MaxUint32), got)
}

func TestUninitializedEncodedValue(t *testing.T) {
	ev, err := NewCustomCurvature()
	require.NoError(t, err)
	err = ev.SetDecimal(0, NewArrayEdgeIntAccess(1), 0.5)
	assert.True(t, errors.Is(err, ErrNotInitialized))
	_, err = ev.GetDecimal(0, NewArrayEdgeIntAccess(1))
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestNoCrossTalkBetweenFields(t *testing.T) {
	curvature, err := NewCustomCurvature()
	require.NoError(t, err)
	score, err := NewCurvatureScore(8)
	require.NoError(t, err)
	flag, err := NewIntEncodedValue("flag", 1)
	require.NoError(t, err)
	wide, err := NewIntEncodedValue("wide", 20)
	require.NoError(t, err)

	m, err := NewManagerBuilder().Add(curvature, score, flag, wide).Build()
	require.NoError(t, err)
	// 8 + 8 + 1 fit into word 0, the 20 bit value moves to word 1
	assert.Equal(t, 2, m.IntsPerEdge())
	assert.Equal(t, 8, m.BytesForFlags())

	store := da.NewEdgeAttributeStore(m.IntsPerEdge(), 4)

	require.NoError(t, flag.SetInt(2, store, 1))
	require.NoError(t, wide.SetInt(2, store, wide.MaxStorableInt()))
	require.NoError(t, score.SetInt(2, store, 255))
	require.NoError(t, curvature.SetDecimal(2, store, 0.25))

	c, err := curvature.GetDecimal(2, store)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, c, curvature.Step()/2)

	s, err := score.GetInt(2, store)
	require.NoError(t, err)
	assert.Equal(t, 255, s)

	f, err := flag.GetInt(2, store)
	require.NoError(t, err)
	assert.Equal(t, 1, f)

	w, err := wide.GetInt(2, store)
	require.NoError(t, err)
	assert.Equal(t, wide.MaxStorableInt(), w)

	// overwrite the middle field with 0, neighbours keep their bits
	require.NoError(t, score.SetInt(2, store, 0))
	c, _ = curvature.GetDecimal(2, store)
	assert.InDelta(t, 0.25, c, curvature.Step()/2)
	f, _ = flag.GetInt(2, store)
	assert.Equal(t, 1, f)

	// other edges never touched
	for _, e := range []da.Index{0, 1, 3} {
		for i := 0; i < m.IntsPerEdge(); i++ {
			word, err := store.GetInt(e, i)
			require.NoError(t, err)
			assert.Zero(t, word)
		}
	}
}

func TestManagerBuild(t *testing.T) {
	curvature, _ := NewCustomCurvature()
	score, _ := NewCurvatureScore(8)

	m, err := NewManagerBuilder().Add(curvature, score).Build()
	require.NoError(t, err)
	assert.Equal(t, 1, m.IntsPerEdge())
	assert.True(t, m.HasEncodedValue("custom_curvature"))
	assert.Len(t, m.EncodedValues(), 2)

	gotDec, err := m.GetDecimalEncodedValue("custom_curvature")
	require.NoError(t, err)
	assert.Same(t, curvature, gotDec)

	gotInt, err := m.GetIntEncodedValue("curvature_score")
	require.NoError(t, err)
	assert.Same(t, score, gotInt)

	_, err = m.GetIntEncodedValue("custom_curvature")
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
	_, err = m.GetDecimalEncodedValue("missing")
	assert.True(t, errors.Is(err, util.ErrNotFound))

	// already placed by the first manager
	_, err = NewManagerBuilder().Add(curvature).Build()
	assert.Error(t, err)

	dup1, _ := NewIntEncodedValue("dup", 2)
	dup2, _ := NewIntEncodedValue("dup", 2)
	_, err = NewManagerBuilder().Add(dup1, dup2).Build()
	assert.Error(t, err)

	empty, err := NewManagerBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.IntsPerEdge())
}

func TestArrayEdgeIntAccess(t *testing.T) {
	a := NewArrayEdgeIntAccess(2)
	v, err := a.GetInt(10, 1)
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, a.SetInt(10, 1, 99))
	v, err = a.GetInt(10, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), v)

	assert.Error(t, a.SetInt(0, 2, 1))
	_, err = a.GetInt(0, -1)
	assert.Error(t, err)
}
