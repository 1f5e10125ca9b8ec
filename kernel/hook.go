package kernel

// HookPos identifies a site in the kernel where hooks can be invoked.
type HookPos struct {
	Name string
}

// HookPosBeforeCause triggers right before Cause advances the clock and
// returns an event.
var HookPosBeforeCause = &HookPos{Name: "BeforeCause"}

// HookPosAfterCause triggers right after Cause returns an event.
var HookPosAfterCause = &HookPos{Name: "AfterCause"}

// HookPosFacilityReserved triggers when Request immediately reserves a
// server.
var HookPosFacilityReserved = &HookPos{Name: "FacilityReserved"}

// HookPosFacilityQueued triggers when Request queues the caller.
var HookPosFacilityQueued = &HookPos{Name: "FacilityQueued"}

// HookPosFacilityReleased triggers when Release frees a server, whether or
// not a waiter was promoted.
var HookPosFacilityReleased = &HookPos{Name: "FacilityReleased"}

// HookCtx carries the information about the site a hook was triggered at.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is implemented by kernel objects that accept Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// Hook is a short piece of program invoked by a Hookable object. Hooks run
// synchronously in registration order and must not mutate kernel state.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the bookkeeping for types that implement Hookable.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks currently registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook runs all registered hooks with the given context.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
