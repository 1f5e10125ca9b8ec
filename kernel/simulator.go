package kernel

import (
	"fmt"
	"log"
	"sync"

	"github.com/sirupsen/logrus"
)

// Simulator is the discrete-event simulation kernel: the future-event
// list, the facility table, the clock, and the bookkeeping that couples
// them. All of its exported methods are safe to call from a single
// goroutine at a time; a Simulator wraps its state in a mutex so that
// callers MAY share one across goroutines (section 5 of the spec), but no
// operation suspends mid-way across a simulated-time boundary.
type Simulator struct {
	HookableBase

	mu sync.Mutex

	name  string
	clock SimTime

	el *eventList

	facilities    map[FacilityID]*Facility
	facilityIDGen FacilityIDGenerator

	// inFlight is the most recently popped event — the "last event" that
	// Request re-schedules when it needs to queue the caller.
	inFlight *event

	log *logrus.Logger
}

// NewSimulator creates a Simulator and initializes it (clock at 0, empty
// event list, no facilities). It is reusable across runs via Init.
func NewSimulator(name string, opts ...Option) *Simulator {
	s := &Simulator{
		log: logrus.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.facilityIDGen == nil {
		s.facilityIDGen = NewSequentialFacilityIDGenerator()
	}
	s.Init(name)
	return s
}

// Init resets the simulator to a fresh run: clock to 0, the event list
// emptied, every facility discarded, and in-flight cleared. The run name
// is purely diagnostic. Logger and facility-id-generator configuration
// survive Init — only run state resets.
func (s *Simulator) Init(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
	s.clock = 0
	s.el = newEventList()
	s.facilities = make(map[FacilityID]*Facility)
	s.inFlight = nil

	s.log.WithField("run", name).Info("kernel: init")
}

// Time returns the current simulated clock value.
func (s *Simulator) Time() SimTime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Schedule places an event of the given code, for the given token, to fire
// dt time units from now.
func (s *Simulator) Schedule(code Code, dt SimTime, token Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(code, dt, token)
}

func (s *Simulator) scheduleLocked(code Code, dt SimTime, token Token) error {
	if dt < 0 {
		return fmt.Errorf("%w: schedule dt=%v is negative", ErrBadArg, dt)
	}
	if token == nil {
		return fmt.Errorf("%w: schedule token is nil", ErrBadArg)
	}

	e := &event{code: code, token: token, time: s.clock + dt}
	s.el.insert(e)

	s.log.WithFields(logrus.Fields{
		"code": code, "token_type": tokenTypeName(token), "time": e.time,
	}).Debug("kernel: scheduled event")
	return nil
}

// tokenTypeName returns a stable, loggable identifier for a token without
// formatting the token's value: tokens are opaque per Token's contract and
// may not be safely formattable (types.go). Only the dynamic type name is
// logged, never the payload.
func tokenTypeName(token Token) string {
	return fmt.Sprintf("%T", token)
}

// Cause pops the earliest event from the event list, advances the clock to
// its time, and returns its code and token. ok is false when the event
// list has no events left to fire.
func (s *Simulator) Cause() (code Code, token Token, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosBeforeCause})

	e, found := s.el.popMin()
	if !found {
		s.inFlight = nil
		return 0, nil, false
	}

	if e.time < s.clock {
		log.Panicf("kernel: event fired in the past: %v < %v", e.time, s.clock)
	}

	s.clock = e.time
	s.inFlight = e

	s.log.WithFields(logrus.Fields{
		"code": e.code, "token_type": tokenTypeName(e.token), "time": e.time,
	}).Debug("kernel: cause")

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosAfterCause, Item: e})

	return e.code, e.token, true
}

// Facility creates a new facility with the given informational name and a
// fixed number of servers (>= 1), returning its id.
func (s *Simulator) Facility(name string, serverCount int) (FacilityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if serverCount < 1 {
		return 0, fmt.Errorf("%w: facility server_count=%d must be >= 1", ErrBadArg, serverCount)
	}

	id := s.facilityIDGen.Generate()
	fac := newFacility(id, name, serverCount)
	fac.lastChangeTime = s.clock
	s.facilities[id] = fac

	s.log.WithFields(logrus.Fields{
		"facility": id, "name": name, "servers": serverCount,
	}).Info("kernel: facility created")

	return id, nil
}

// Status returns a read-only snapshot of a facility's servers, waiting
// queue, and statistics.
func (s *Simulator) Status(id FacilityID) (FacilityStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fac, ok := s.facilities[id]
	if !ok {
		return FacilityStatus{}, fmt.Errorf("%w: %d", ErrNoSuchFacility, id)
	}
	return fac.status(), nil
}

// Request attempts to acquire a server on facility id for token at the
// given priority (higher means stronger). If token already holds a server
// on the facility, Reserved is returned and nothing changes. If a server is
// idle, it is reserved immediately and Reserved is returned. Otherwise the
// caller is queued in priority order (FIFO within a priority) and Queued is
// returned; the kernel will re-fire the caller's in-flight event, with the
// same code and token, once some Release promotes it. If there is no
// in-flight event to re-fire, ErrRequestOutsideDispatch is returned and
// nothing is queued.
func (s *Simulator) Request(id FacilityID, token Token, priority int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fac, ok := s.facilities[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchFacility, id)
	}
	if token == nil {
		return 0, fmt.Errorf("%w: request token is nil", ErrBadArg)
	}

	// A token that already holds a server on this facility is always
	// Reserved. This makes the release-side atomic transfer (section 4.4)
	// work: the promoted waiter's re-fired event calls Request again for
	// the token Release just reserved on its behalf, and that call must
	// confirm Reserved rather than queue the token behind itself.
	if fac.slotHeldBy(token) >= 0 {
		return Reserved, nil
	}

	if idx := fac.idleSlot(); idx >= 0 {
		fac.touch(s.clock)
		fac.reserve(idx, token, priority, s.clock)

		fac.InvokeHook(HookCtx{Domain: fac, Pos: HookPosFacilityReserved, Item: token})
		s.log.WithFields(logrus.Fields{
			"facility": id, "token_type": tokenTypeName(token), "priority": priority,
		}).Debug("kernel: request reserved")
		return Reserved, nil
	}

	if s.inFlight == nil {
		return 0, fmt.Errorf("%w: facility %d has no idle server and request was called outside a dispatch", ErrRequestOutsideDispatch, id)
	}

	fac.touch(s.clock)
	fac.enqueue(&waiter{
		token:    token,
		priority: priority,
		code:     s.inFlight.code,
	})

	fac.InvokeHook(HookCtx{Domain: fac, Pos: HookPosFacilityQueued, Item: token})
	s.log.WithFields(logrus.Fields{
		"facility": id, "token_type": tokenTypeName(token), "priority": priority,
	}).Debug("kernel: request queued")
	return Queued, nil
}

// Release frees the server that token holds on facility id. If waiters are
// queued, the highest-priority waiter (FIFO within a priority) is
// immediately promoted to the freed slot and its pending event is re-timed
// to fire at the current clock, appended after any events already
// scheduled at this instant.
func (s *Simulator) Release(id FacilityID, token Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fac, ok := s.facilities[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchFacility, id)
	}

	idx := fac.slotHeldBy(token)
	if idx < 0 {
		return fmt.Errorf("%w: facility %d, token type %s", ErrNotHeld, id, tokenTypeName(token))
	}

	// A single touch accounts for the interval ending now; free, the
	// queue pop, and the promotion below all happen instantaneously at
	// this same clock value, so they share that one pre-transition delta
	// (spec section 9's lazy-integral pattern).
	fac.touch(s.clock)
	fac.free(idx)

	w := fac.dequeueHead()
	if w == nil {
		fac.InvokeHook(HookCtx{Domain: fac, Pos: HookPosFacilityReleased, Item: token})
		s.log.WithFields(logrus.Fields{"facility": id, "token_type": tokenTypeName(token)}).Debug("kernel: release, no waiters")
		return nil
	}

	// Transfer the slot atomically: mark it Busy for the promoted waiter
	// before re-firing its event, so an intervening Cause for another
	// token cannot steal it (spec section 4.4). idx is exactly the slot
	// we just freed, so it is guaranteed idle.
	fac.reserve(idx, w.token, w.priority, s.clock)

	s.scheduleAtCurrent(w.code, w.token)

	fac.InvokeHook(HookCtx{Domain: fac, Pos: HookPosFacilityReleased, Item: token, Detail: w.token})
	s.log.WithFields(logrus.Fields{
		"facility": id, "token_type": tokenTypeName(token), "promoted_type": tokenTypeName(w.token),
	}).Debug("kernel: release, promoted waiter")

	return nil
}

// scheduleAtCurrent inserts an event to fire immediately at the current
// clock value, after any events already queued at that time.
func (s *Simulator) scheduleAtCurrent(code Code, token Token) {
	e := &event{code: code, token: token, time: s.clock}
	s.el.insert(e)
}
