package scheduler

import "container/heap"

// entryHeap implements container/heap.Interface for Entry,
// sorted by FireAt (earliest first — min-heap).
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].FireAt.Before(h[j].FireAt) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds an Entry to the heap, maintaining the heap invariant.
func heapPush(h *entryHeap, e Entry) {
	heap.Push(h, e)
}

// heapPop removes and returns the Entry with the earliest FireAt.
// Panics if the heap is empty.
func heapPop(h *entryHeap) Entry {
	return heap.Pop(h).(Entry)
}

// heapRemoveById removes the first Entry with the given id.
// Returns true if the entry was found and removed, false otherwise.
func heapRemoveById(h *entryHeap, id string) bool {
	for i, e := range *h {
		if e.Id == id {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}
