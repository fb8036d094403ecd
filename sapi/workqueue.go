package sapi

import (
	"sync"

	"github.com/google/uuid"
)

// WorkItem pairs a request with its matched endpoint and extracted path
// parameters. Exactly one worker takes a given item; the dispatching
// goroutine parks on Done until the worker has written the response.
type WorkItem struct {
	id         uuid.UUID
	req        *Request
	endpoint   *Endpoint
	pathParams PathParams
	done       chan struct{}
}

func newWorkItem(req *Request, endpoint *Endpoint, pathParams PathParams) *WorkItem {
	return &WorkItem{
		id:         uuid.New(),
		req:        req,
		endpoint:   endpoint,
		pathParams: pathParams,
		done:       make(chan struct{}),
	}
}

// Done is closed once the item has been executed.
func (w *WorkItem) Done() <-chan struct{} {
	return w.done
}

// WorkQueue is a bounded FIFO of pending work items shared between the
// dispatch goroutines and a fixed pool of workers. Enqueue never blocks:
// once the queue is full or interrupted it fails fast and the caller keeps
// ownership of the item. Interrupt stops admission but items already queued
// are drained before the workers exit.
type WorkQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []*WorkItem
	maxDepth int
	running  bool

	workersWG sync.WaitGroup
}

func NewWorkQueue(maxDepth int) *WorkQueue {
	if maxDepth < 1 {
		maxDepth = 1
	}

	q := &WorkQueue{
		maxDepth: maxDepth,
		running:  true,
	}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// Enqueue appends item if the queue is running and below capacity. It
// returns true when the queue took ownership of the item.
func (q *WorkQueue) Enqueue(item *WorkItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running || len(q.items) >= q.maxDepth {
		return false
	}

	q.items = append(q.items, item)
	q.cond.Signal()

	return true
}

// Dequeue blocks until an item is available or the queue has been
// interrupted and fully drained, in which case it returns nil.
func (q *WorkQueue) Dequeue() *WorkItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.running && len(q.items) == 0 {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return nil
	}

	item := q.items[0]
	q.items = q.items[1:]

	return item
}

// Len returns the current queue depth.
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Interrupt disables admission and wakes every blocked worker. Items
// already queued are still drained.
func (q *WorkQueue) Interrupt() {
	q.mu.Lock()
	q.running = false
	q.mu.Unlock()

	q.cond.Broadcast()
}

// StartWorker spawns one worker goroutine running the dequeue loop. The
// worker exits once the queue has been interrupted and drained.
func (q *WorkQueue) StartWorker(execute func(*WorkItem)) {
	q.workersWG.Add(1)

	go func() {
		defer q.workersWG.Done()

		for {
			item := q.Dequeue()
			if item == nil {
				return
			}

			execute(item)
		}
	}()
}

// WaitExit blocks until every worker has returned. Call after Interrupt.
func (q *WorkQueue) WaitExit() {
	q.workersWG.Wait()
}
