package search

// tileItem is a frontier entry: a tile index, the distance it was pushed
// with, its priority and the tie-break keys.
type tileItem struct {
	idx      int
	dist     int
	priority int
	h        int    // Manhattan distance to the end
	seq      uint64 // insertion order
}

// tilePQ is a min-heap of *tileItem ordered by (priority, h, seq).
type tilePQ []*tileItem

func (pq tilePQ) Len() int { return len(pq) }

func (pq tilePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq tilePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds an item; used by heap.Push.
func (pq *tilePQ) Push(x interface{}) {
	*pq = append(*pq, x.(*tileItem))
}

// Pop removes the last item; used by heap.Pop.
func (pq *tilePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
