// Package queue menyediakan antrian melingkar berkapasitas tetap.
package queue

// BoundedQueue is a fixed-capacity FIFO backed by a circular buffer.
// It is not safe for concurrent use; callers guard it themselves.
type BoundedQueue[T any] struct {
	items []T
	front int
	rear  int
	size  int
}

// New allocates a queue holding at most capacity items.
// A non-positive capacity is a programming error and panics.
func New[T any](capacity int) *BoundedQueue[T] {
	if capacity < 1 {
		panic("queue: capacity must be positive")
	}
	return &BoundedQueue[T]{
		items: make([]T, capacity),
		front: -1,
		rear:  -1,
	}
}

func (q *BoundedQueue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *BoundedQueue[T]) IsFull() bool {
	return q.size == len(q.items)
}

// Len returns the number of queued items.
func (q *BoundedQueue[T]) Len() int {
	return q.size
}

// Cap returns the fixed capacity.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.items)
}

// Enqueue appends v at the rear. It reports false, leaving the queue
// untouched, when the queue is full.
func (q *BoundedQueue[T]) Enqueue(v T) bool {
	if q.IsFull() {
		return false
	}
	if q.front == -1 {
		q.front = 0
	}
	q.rear = (q.rear + 1) % len(q.items)
	q.items[q.rear] = v
	q.size++
	return true
}

// Dequeue removes and returns the front item. It reports false when the
// queue is empty.
func (q *BoundedQueue[T]) Dequeue() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}

	v := q.items[q.front]
	q.items[q.front] = zero
	q.front = (q.front + 1) % len(q.items)
	q.size--

	// Kembali ke kondisi kosong awal.
	if q.size == 0 {
		q.front, q.rear = -1, -1
	}
	return v, true
}

// At returns the j-th item counted from the front (0-based) without
// removing it.
func (q *BoundedQueue[T]) At(j int) (T, bool) {
	var zero T
	if j < 0 || j >= q.size {
		return zero, false
	}
	return q.items[(q.front+j)%len(q.items)], true
}

// Snapshot copies the queued items in dequeue order.
func (q *BoundedQueue[T]) Snapshot() []T {
	out := make([]T, 0, q.size)
	for j := 0; j < q.size; j++ {
		v, _ := q.At(j)
		out = append(out, v)
	}
	return out
}
