package grid

// Listener is a one-shot completion callback. interrupted reports whether
// the operation it was waiting on was preempted by a newer request before
// finishing naturally.
type Listener func(interrupted bool, item *Item)

// Emitter is a keyed registry of ordered one-shot listener queues. Each
// queue key accumulates listeners until a burst drains and invokes them
// all. Within one key listeners fire in registration order; across keys
// there is no ordering guarantee.
type Emitter struct {
	queues map[Key][]Listener
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{queues: map[Key][]Listener{}}
}

// On appends fn to the queue for key. Duplicate registrations of the same
// function are kept and invoked separately. A nil fn is a no-op.
func (e *Emitter) On(key Key, fn Listener) {
	if fn == nil {
		return
	}
	e.queues[key] = append(e.queues[key], fn)
}

// Burst drains the queue for key and invokes every listener, in
// registration order, with the same arguments. The queue is cleared
// before the first listener runs, so a listener re-registering itself
// lands in the next burst, not this one. Bursting an empty or unknown
// key is a no-op.
func (e *Emitter) Burst(key Key, interrupted bool, item *Item) {
	listeners := e.queues[key]
	if len(listeners) == 0 {
		return
	}
	delete(e.queues, key)
	for _, fn := range listeners {
		fn(interrupted, item)
	}
}

// Clear drops all listeners for key without invoking them. Used on
// destruction to avoid firing stale completions.
func (e *Emitter) Clear(key Key) {
	delete(e.queues, key)
}
