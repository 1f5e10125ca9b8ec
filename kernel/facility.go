package kernel

import "container/list"

// serverSlot is one of a facility's fixed server slots.
type serverSlot struct {
	busy     bool
	token    Token
	priority int
	since    SimTime
}

// waiter is an entry in a facility's priority-ordered waiting queue. code
// is the event code to re-fire once the waiter is promoted — the kernel's
// own record of the "pending event" invariant 5 talks about, kept outside
// the event list per the spec's preferred design (section 9, option a).
type waiter struct {
	token    Token
	priority int
	code     Code
}

// Facility is a named multi-server semaphore with priority queueing.
type Facility struct {
	HookableBase

	id      FacilityID
	name    string
	servers []serverSlot
	waiters *list.List // of *waiter, ordered by descending priority, FIFO within a priority

	queueLen int

	busyTimeIntegral    SimTime
	queueLengthIntegral SimTime
	lastChangeTime      SimTime
	releaseCount        []uint64
}

func newFacility(id FacilityID, name string, serverCount int) *Facility {
	return &Facility{
		id:           id,
		name:         name,
		servers:      make([]serverSlot, serverCount),
		waiters:      list.New(),
		releaseCount: make([]uint64, serverCount),
	}
}

// busyCount returns the number of currently busy server slots.
func (f *Facility) busyCount() int {
	n := 0
	for i := range f.servers {
		if f.servers[i].busy {
			n++
		}
	}
	return n
}

// touch advances the statistics integrals by the delta since the last
// transition, using the counts in effect *before* the transition that is
// about to happen. Call this before changing busyCount or queueLen.
func (f *Facility) touch(now SimTime) {
	delta := now - f.lastChangeTime
	f.busyTimeIntegral += SimTime(f.busyCount()) * delta
	f.queueLengthIntegral += SimTime(f.queueLen) * delta
	f.lastChangeTime = now
}

// idleSlot returns the lowest-indexed idle server slot, or -1 if none.
func (f *Facility) idleSlot() int {
	for i := range f.servers {
		if !f.servers[i].busy {
			return i
		}
	}
	return -1
}

// reserve marks slot idx Busy for (token, priority) at time now. Caller
// must have already called touch(now) with the pre-transition counts.
func (f *Facility) reserve(idx int, token Token, priority int, now SimTime) {
	f.servers[idx] = serverSlot{
		busy:     true,
		token:    token,
		priority: priority,
		since:    now,
	}
}

// enqueue inserts a new waiter ordered by descending priority, FIFO within
// a priority: it is inserted after every existing waiter whose priority is
// >= its own, i.e. before the first waiter with a strictly lower priority.
// Caller must have already called touch(now) with the pre-transition
// queueLen.
func (f *Facility) enqueue(w *waiter) {
	var at *list.Element
	for at = f.waiters.Front(); at != nil; at = at.Next() {
		if at.Value.(*waiter).priority < w.priority {
			break
		}
	}
	if at != nil {
		f.waiters.InsertBefore(w, at)
	} else {
		f.waiters.PushBack(w)
	}
	f.queueLen++
}

// dequeueHead removes and returns the highest-priority (FIFO-within-priority)
// waiter, or nil if the queue is empty.
func (f *Facility) dequeueHead() *waiter {
	front := f.waiters.Front()
	if front == nil {
		return nil
	}
	f.waiters.Remove(front)
	f.queueLen--
	return front.Value.(*waiter)
}

// slotHeldBy returns the lowest-indexed busy slot held by token, or -1.
func (f *Facility) slotHeldBy(token Token) int {
	for i := range f.servers {
		if f.servers[i].busy && f.servers[i].token == token {
			return i
		}
	}
	return -1
}

// free marks slot idx Idle and bumps its release count.
func (f *Facility) free(idx int) {
	f.servers[idx] = serverSlot{}
	f.releaseCount[idx]++
}

// status returns a read-only snapshot of the facility.
func (f *Facility) status() FacilityStatus {
	busy := f.busyCount()
	rc := make([]uint64, len(f.releaseCount))
	copy(rc, f.releaseCount)
	return FacilityStatus{
		IdleServers:         len(f.servers) - busy,
		BusyServers:         busy,
		QueueLength:         f.queueLen,
		BusyTimeIntegral:    f.busyTimeIntegral,
		QueueLengthIntegral: f.queueLengthIntegral,
		ReleaseCount:        rc,
	}
}
