package panel

import "github.com/atomicstack/tmux-terminal-panel/internal/terminal"

// Registry is the ordered collection of instances. Positions are not stable
// identities: removing an instance shifts every later one down by one.
type Registry struct {
	container *terminal.Container
	instances []Instance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) attach(container *terminal.Container) {
	r.container = container
}

// Add appends inst, mounts it and makes it the only visible instance.
func (r *Registry) Add(inst Instance) int {
	r.instances = append(r.instances, inst)
	if r.container != nil {
		r.container.Mount(inst.ID())
	}
	index := len(r.instances) - 1
	r.SetActive(index)
	return index
}

// RemoveAt disposes and deletes the instance at index and reports whether
// the registry is now empty. Unknown indices are ignored.
func (r *Registry) RemoveAt(index int) bool {
	if index < 0 || index >= len(r.instances) {
		return len(r.instances) == 0
	}
	inst := r.instances[index]
	inst.Dispose()
	if r.container != nil {
		r.container.Unmount(inst.ID())
	}
	copy(r.instances[index:], r.instances[index+1:])
	r.instances[len(r.instances)-1] = nil
	r.instances = r.instances[:len(r.instances)-1]
	return len(r.instances) == 0
}

// SetActive shows and focuses the instance at index and hides the rest.
func (r *Registry) SetActive(index int) {
	if index < 0 || index >= len(r.instances) {
		return
	}
	for i, inst := range r.instances {
		active := i == index
		inst.ToggleVisibility(active)
		inst.Focus(active)
	}
}

// DisposeAll removes every instance in collection order.
func (r *Registry) DisposeAll() {
	for len(r.instances) > 0 {
		r.RemoveAt(0)
	}
}

// Len returns the number of instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// At returns the instance at index.
func (r *Registry) At(index int) (Instance, bool) {
	if index < 0 || index >= len(r.instances) {
		return nil, false
	}
	return r.instances[index], true
}

// IndexOf returns the position of inst or -1.
func (r *Registry) IndexOf(inst Instance) int {
	for i, candidate := range r.instances {
		if candidate == inst {
			return i
		}
	}
	return -1
}

// Each calls fn for every instance in order.
func (r *Registry) Each(fn func(index int, inst Instance)) {
	for i, inst := range r.instances {
		fn(i, inst)
	}
}
