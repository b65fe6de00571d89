package datastructure

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/geo"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

type Index uint32

// GraphStorage. edge geometry, edge extra info and the edge attribute blocks.
type GraphStorage struct {
	globalPoints []geo.Coordinate

	mapEdgeInfo []EdgeExtraInfo

	tagStringIDMap util.IDMap
	attributes     *EdgeAttributeStore
}

func NewGraphStorage(intsPerEdge int) *GraphStorage {
	return &GraphStorage{
		globalPoints:   make([]geo.Coordinate, 0),
		mapEdgeInfo:    make([]EdgeExtraInfo, 0),
		tagStringIDMap: util.NewIdMap(),
		attributes:     NewEdgeAttributeStore(intsPerEdge, 0),
	}
}

type EdgeExtraInfo struct {
	startPointsIndex Index
	endPointsIndex   Index
	streetName       int
	distance         float64 // meter, along the unsimplified geometry
	wayID            int64
	reversed         bool
}

func NewEdgeExtraInfo(streetName int, distance float64, startPointsIdx, endPointsIdx Index,
	wayID int64) EdgeExtraInfo {
	return EdgeExtraInfo{
		streetName:       streetName,
		distance:         distance,
		startPointsIndex: startPointsIdx,
		endPointsIndex:   endPointsIdx,
		wayID:            wayID,
	}
}

// AddEdge. append edge geometry + extra info and a zeroed attribute block. returns the new edge id.
// must not run concurrently with attribute writes.
func (gs *GraphStorage) AddEdge(edgePoints []geo.Coordinate, distance float64, streetName string, wayID int64) Index {
	edgeID := Index(len(gs.mapEdgeInfo))

	startPointsIndex := Index(len(gs.globalPoints))
	gs.globalPoints = append(gs.globalPoints, edgePoints...)
	endPointsIndex := Index(len(gs.globalPoints))

	gs.mapEdgeInfo = append(gs.mapEdgeInfo, NewEdgeExtraInfo(gs.tagStringIDMap.GetID(streetName), distance,
		startPointsIndex, endPointsIndex, wayID))
	gs.attributes.AddEdges(1)
	return edgeID
}

// AddReverseEdge. edge over the same points as edgeID but in the opposite direction.
func (gs *GraphStorage) AddReverseEdge(edgeID Index) Index {
	edge := gs.mapEdgeInfo[edgeID]
	reverseID := Index(len(gs.mapEdgeInfo))
	reverseEdge := NewEdgeExtraInfo(edge.streetName, edge.distance, edge.endPointsIndex, edge.startPointsIndex,
		edge.wayID)
	reverseEdge.reversed = true
	gs.mapEdgeInfo = append(gs.mapEdgeInfo, reverseEdge)
	gs.attributes.AddEdges(1)
	return reverseID
}

func (gs *GraphStorage) NumberOfEdges() int {
	return len(gs.mapEdgeInfo)
}

func (gs *GraphStorage) GetEdgeAttributes() *EdgeAttributeStore {
	return gs.attributes
}

// GetEdgeGeometry. points of the edge, in driving order. startIndex > endIndex means the edge runs backwards
// over the global point array.
func (gs *GraphStorage) GetEdgeGeometry(edgeID Index) []geo.Coordinate {
	edge := gs.mapEdgeInfo[edgeID]
	startIndex := edge.startPointsIndex
	endIndex := edge.endPointsIndex
	if startIndex <= endIndex {
		return gs.globalPoints[startIndex:endIndex]
	}

	edgePoints := make([]geo.Coordinate, 0, startIndex-endIndex)
	for i := int(startIndex) - 1; i >= int(endIndex); i-- {
		edgePoints = append(edgePoints, gs.globalPoints[i])
	}
	return edgePoints
}

func (gs *GraphStorage) GetEdgeDistance(edgeID Index) float64 {
	return gs.mapEdgeInfo[edgeID].distance
}

func (gs *GraphStorage) GetStreetName(edgeID Index) string {
	return gs.tagStringIDMap.GetStr(gs.mapEdgeInfo[edgeID].streetName)
}

func (gs *GraphStorage) GetWayID(edgeID Index) int64 {
	return gs.mapEdgeInfo[edgeID].wayID
}

func (gs *GraphStorage) IsReverseEdge(edgeID Index) bool {
	return gs.mapEdgeInfo[edgeID].reversed
}

func (gs *GraphStorage) GetGlobalPointsCount() int {
	return len(gs.globalPoints)
}

// SimplifyGeometries. rebuild the global point array with every forward edge geometry simplified by
// Ramer-Douglas-Peucker (epsilon in meter). a reverse edge walks the simplified range of its forward edge backwards.
// edge distances keep the unsimplified length.
func (gs *GraphStorage) SimplifyGeometries(epsilon float64) {
	if epsilon <= 0 {
		return
	}
	simplifiedPoints := make([]geo.Coordinate, 0, len(gs.globalPoints))
	newRange := make(map[[2]Index][2]Index, len(gs.mapEdgeInfo))

	simplify := func(edgeID int) {
		edgePoints := geo.RamerDouglasPeucker(gs.GetEdgeGeometry(Index(edgeID)), epsilon)

		startPointsIndex := Index(len(simplifiedPoints))
		simplifiedPoints = append(simplifiedPoints, edgePoints...)
		endPointsIndex := Index(len(simplifiedPoints))

		edge := &gs.mapEdgeInfo[edgeID]
		newRange[[2]Index{edge.startPointsIndex, edge.endPointsIndex}] = [2]Index{startPointsIndex, endPointsIndex}
		edge.startPointsIndex = startPointsIndex
		edge.endPointsIndex = endPointsIndex
	}

	for edgeID := range gs.mapEdgeInfo {
		if !gs.mapEdgeInfo[edgeID].reversed {
			simplify(edgeID)
		}
	}

	for edgeID := range gs.mapEdgeInfo {
		edge := &gs.mapEdgeInfo[edgeID]
		if !edge.reversed {
			continue
		}
		fwd, ok := newRange[[2]Index{edge.endPointsIndex, edge.startPointsIndex}]
		if !ok {
			// reverse of another reverse edge
			simplify(edgeID)
			continue
		}
		edge.startPointsIndex = fwd[1]
		edge.endPointsIndex = fwd[0]
	}
	gs.globalPoints = simplifiedPoints
}
