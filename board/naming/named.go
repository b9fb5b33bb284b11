// Package naming provides the naming surface board components share so that
// hooks, traces, and the monitor can identify them.
package naming

// Named is a component that can report its name.
type Named interface {
	// Name returns the name of the component. The name is stable for the
	// lifetime of the component.
	Name() string
}

// NamedBase implements Named for components that embed it.
type NamedBase struct {
	name string
}

// Name returns the name given at construction.
func (b *NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a NamedBase carrying the given name.
func MakeNamedBase(name string) NamedBase {
	return NamedBase{name: name}
}
