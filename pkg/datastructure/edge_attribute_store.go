package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

/*
EdgeAttributeStore. bit-packed per-edge attribute blocks in one flat buffer:

	edge e owns data[e*intsPerEdge : (e+1)*intsPerEdge]

every access is bounds checked, so a bad edge id or word index never spills into another edge's block.
distinct edges never share a word: writers of different edges can run concurrently.
*/
type EdgeAttributeStore struct {
	intsPerEdge int
	data        []uint32
}

func NewEdgeAttributeStore(intsPerEdge, numberOfEdges int) *EdgeAttributeStore {
	return &EdgeAttributeStore{
		intsPerEdge: intsPerEdge,
		data:        make([]uint32, intsPerEdge*numberOfEdges),
	}
}

func (s *EdgeAttributeStore) IntsPerEdge() int {
	return s.intsPerEdge
}

func (s *EdgeAttributeStore) NumberOfEdges() int {
	if s.intsPerEdge == 0 {
		return 0
	}
	return len(s.data) / s.intsPerEdge
}

// AddEdges. append n zeroed blocks. must not run concurrently with GetInt/SetInt.
func (s *EdgeAttributeStore) AddEdges(n int) {
	s.data = append(s.data, make([]uint32, n*s.intsPerEdge)...)
}

func (s *EdgeAttributeStore) position(edgeID Index, index int) (int, error) {
	if index < 0 || index >= s.intsPerEdge {
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "int index %d out of range [0, %d)", index, s.intsPerEdge)
	}
	if int(edgeID) >= s.NumberOfEdges() {
		return 0, util.WrapErrorf(nil, util.ErrNotFound, "edge %d out of range [0, %d)", edgeID, s.NumberOfEdges())
	}
	return int(edgeID)*s.intsPerEdge + index, nil
}

func (s *EdgeAttributeStore) GetInt(edgeID Index, index int) (uint32, error) {
	pos, err := s.position(edgeID, index)
	if err != nil {
		return 0, err
	}
	return s.data[pos], nil
}

func (s *EdgeAttributeStore) SetInt(edgeID Index, index int, value uint32) error {
	pos, err := s.position(edgeID, index)
	if err != nil {
		return err
	}
	s.data[pos] = value
	return nil
}

func (s *EdgeAttributeStore) String() string {
	return fmt.Sprintf("EdgeAttributeStore{edges: %d, intsPerEdge: %d}", s.NumberOfEdges(), s.intsPerEdge)
}
