// Package hooking lets observers attach to board components and watch their
// lifecycle events, such as operation start/success/failure or a grid
// mutation. Loggers and the operation journal are hooks.
package hooking

// A HookPos identifies one kind of lifecycle event a component fires. Each
// observable component declares its poses as package variables, and hooks
// switch on the pose to decide how to treat an event.
type HookPos struct {
	Name string
}

// HookCtx describes the event a hook is fired for.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is a component observers can attach hooks to.
type Hookable interface {
	// AcceptHook registers a hook. Registering the same hook twice panics.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int
}

// A Hook receives the lifecycle events of the component it is attached to.
type Hook interface {
	// Func handles one fired event.
	Func(ctx HookCtx)
}

// HookableBase carries the hook bookkeeping for components that embed it.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, h := range h.hookList {
		if h == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook fires the event to every registered hook, in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
