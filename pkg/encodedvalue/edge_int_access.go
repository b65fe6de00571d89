package encodedvalue

import (
	da "github.com/lintang-b-s/navigatorx-curvature/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// EdgeIntAccess. read/write handle on the 32-bit words of the edge attribute blocks.
// implemented by datastructure.EdgeAttributeStore.
type EdgeIntAccess interface {
	GetInt(edgeID da.Index, index int) (uint32, error)
	SetInt(edgeID da.Index, index int, value uint32) error
}

// ArrayEdgeIntAccess. growable in-memory blocks, for ad-hoc evaluation of edges outside a graph.
type ArrayEdgeIntAccess struct {
	intsPerEdge int
	data        []uint32
}

func NewArrayEdgeIntAccess(intsPerEdge int) *ArrayEdgeIntAccess {
	return &ArrayEdgeIntAccess{intsPerEdge: intsPerEdge}
}

func NewArrayEdgeIntAccessFromManager(m *Manager) *ArrayEdgeIntAccess {
	return NewArrayEdgeIntAccess(m.IntsPerEdge())
}

func (a *ArrayEdgeIntAccess) GetInt(edgeID da.Index, index int) (uint32, error) {
	if index < 0 || index >= a.intsPerEdge {
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "int index %d out of range [0, %d)", index, a.intsPerEdge)
	}
	pos := int(edgeID)*a.intsPerEdge + index
	if pos >= len(a.data) {
		return 0, nil
	}
	return a.data[pos], nil
}

func (a *ArrayEdgeIntAccess) SetInt(edgeID da.Index, index int, value uint32) error {
	if index < 0 || index >= a.intsPerEdge {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "int index %d out of range [0, %d)", index, a.intsPerEdge)
	}
	pos := int(edgeID)*a.intsPerEdge + index
	if pos >= len(a.data) {
		a.data = append(a.data, make([]uint32, pos-len(a.data)+1)...)
	}
	a.data[pos] = value
	return nil
}
