package anchor

// Scheduler runs fn on some later turn.
type Scheduler func(fn func())

// Immediate runs fn right away.
func Immediate(fn func()) { fn() }

// Queue collects scheduled callbacks until Drain runs them.
type Queue struct {
	pending []func()
}

// Schedule is a Scheduler that appends to the queue.
func (q *Queue) Schedule(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len reports how many callbacks are waiting.
func (q *Queue) Len() int { return len(q.pending) }

// Drain runs the callbacks queued so far. Callbacks scheduled while draining
// wait for the next Drain. It returns how many ran.
func (q *Queue) Drain() int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
