package graph

import (
	"container/heap"
	"errors"
)

var (
	// ErrUnknownSystem is returned when a name does not match any system exactly.
	ErrUnknownSystem = errors.New("unknown system")
	// ErrNoPath is returned when the destination is unreachable within the jump budget.
	ErrNoPath = errors.New("no path")
)

const (
	minPathJumps = 1
	maxPathJumps = 100
)

// FindPath returns the cheapest route between two systems by exact name, using
// gates (cost 1.0) and jumpbridges (cost 0.3). maxJumps is the nominal gate budget;
// because jumpbridge hops are cheaper than gates, paths may contain up to
// 2*maxJumps edges. Out-of-range budgets are clamped to [1, 100].
func (u *Universe) FindPath(startName, endName string, maxJumps int) ([]string, error) {
	start, ok := u.SystemByName[startName]
	if !ok {
		return nil, ErrUnknownSystem
	}
	end, ok := u.SystemByName[endName]
	if !ok {
		return nil, ErrUnknownSystem
	}
	ids, _, ok := u.FindPathIDs(start, end, maxJumps, true)
	if !ok {
		return nil, ErrNoPath
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = u.SystemName[id]
	}
	return names, nil
}

// FindPathIDs is FindPath over system IDs. It returns the path (start and end
// included), its weighted cost, and false if the destination was not reached.
// useBridges=false restricts the search to stargates.
func (u *Universe) FindPathIDs(start, end int32, maxJumps int, useBridges bool) ([]int32, float64, bool) {
	if start == end {
		return []int32{start}, 0, true
	}
	if maxJumps < minPathJumps {
		maxJumps = minPathJumps
	}
	if maxJumps > maxPathJumps {
		maxJumps = maxPathJumps
	}
	maxEdges := 2 * maxJumps

	done := make(map[int32]bool)
	prev := make(map[int32]int32)

	var seq int
	pq := &priorityQueue{{systemID: start, prev: start}}
	heap.Init(pq)

	// A system is final at its first (cheapest) pop and later entries for it are
	// dropped, even ones with fewer edges. A cheap many-edge prefix can therefore
	// exhaust the edge budget and hide a costlier path that would fit it.
	push := func(from int32, to int32, cost float64, edges int) {
		if done[to] {
			return
		}
		seq++
		heap.Push(pq, pqItem{systemID: to, prev: from, cost: cost, edges: edges, seq: seq})
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if done[item.systemID] {
			continue
		}
		done[item.systemID] = true
		prev[item.systemID] = item.prev

		if item.systemID == end {
			return u.walkBack(prev, start, end), item.cost, true
		}
		if item.edges >= maxEdges {
			continue
		}
		for _, next := range u.Adj[item.systemID] {
			push(item.systemID, next, item.cost+GateCost, item.edges+1)
		}
		if useBridges {
			for _, next := range u.Bridges[item.systemID] {
				push(item.systemID, next, item.cost+JumpbridgeCost, item.edges+1)
			}
		}
	}
	return nil, 0, false
}

func (u *Universe) walkBack(prev map[int32]int32, start, end int32) []int32 {
	var path []int32
	for cur := end; ; cur = prev[cur] {
		path = append(path, cur)
		if cur == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Priority queue for Dijkstra. Equal costs pop in insertion order.
type pqItem struct {
	systemID int32
	prev     int32
	cost     float64
	edges    int
	seq      int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost == pq[j].cost {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].cost < pq[j].cost
}
func (pq priorityQueue) Swap(i, j int)        { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
