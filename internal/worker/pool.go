package worker

// Job produces one result value.
type Job[T any] func() T

// Result pairs a job's output with the ID it was submitted under.
type Result[T any] struct {
	JobID  string
	Output T
}

// Pool runs submitted jobs across a fixed set of worker goroutines.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

// NewPool starts workerCount workers sharing a buffered job queue.
func NewPool[T any](workerCount, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for job := range p.jobs {
		p.results <- Result[T]{
			JobID:  job.id,
			Output: job.fn(),
		}
	}
}

// Submit queues a job; blocks when the queue is full.
func (p *Pool[T]) Submit(id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

// Results exposes the completion channel.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting jobs; workers exit after draining the queue.
func (p *Pool[T]) Close() {
	close(p.jobs)
}
