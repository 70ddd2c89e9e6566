package astar

// openSet is a min-heap of arena indices ordered by F, then by discovery order.
// It implements heap.Interface and keeps Node.heapAt current so relaxed nodes
// can be fixed in place instead of pushed twice.
type openSet struct {
	arena *[]Node
	items []int
}

// Len returns the number of queued nodes.
func (q *openSet) Len() int { return len(q.items) }

// Less orders by F ascending; equal F goes to the node discovered first.
func (q *openSet) Less(i, j int) bool {
	a, b := &(*q.arena)[q.items[i]], &(*q.arena)[q.items[j]]
	if a.F != b.F {
		return a.F < b.F
	}

	return a.seq < b.seq
}

// Swap swaps two entries and updates their heap positions.
func (q *openSet) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	(*q.arena)[q.items[i]].heapAt = i
	(*q.arena)[q.items[j]].heapAt = j
}

// Push appends arena index x. Called by heap.Push.
func (q *openSet) Push(x interface{}) {
	id := x.(int)
	(*q.arena)[id].heapAt = len(q.items)
	q.items = append(q.items, id)
}

// Pop removes the last entry. Called by heap.Pop.
func (q *openSet) Pop() interface{} {
	n := len(q.items)
	id := q.items[n-1]
	q.items = q.items[:n-1]
	(*q.arena)[id].heapAt = -1

	return id
}
