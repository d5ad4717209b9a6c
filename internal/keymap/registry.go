// Package keymap maps key strings to command ids per view context and
// applies user overrides from config.
package keymap

import (
	"slices"
	"strings"
	"sync"
)

// Binding maps a key to a command in a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds the active bindings.
type Registry struct {
	mu       sync.RWMutex
	bindings []Binding
	byKey    map[string]map[string]string // context -> key -> command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]map[string]string)}
}

// NewDefault returns a registry with the default bindings and overrides applied.
func NewDefault(overrides map[string]string) *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	r.ApplyOverrides(overrides)
	return r
}

// RegisterBinding adds or replaces the binding for b.Key in b.Context.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(b)
}

func (r *Registry) register(b Binding) {
	r.bindings = slices.DeleteFunc(r.bindings, func(x Binding) bool {
		return x.Key == b.Key && x.Context == b.Context
	})
	r.bindings = append(r.bindings, b)

	m := r.byKey[b.Context]
	if m == nil {
		m = make(map[string]string)
		r.byKey[b.Context] = m
	}
	m[b.Key] = b.Command
}

// ApplyOverrides rebinds keys from config. Keys are "key" or "context:key";
// a bare key lands in the context of the first default binding for the
// command, or global. A value of "none" unbinds the key.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, spec := range keys {
		command := overrides[spec]
		context, key, found := strings.Cut(spec, ":")
		if !found || key == "" {
			key = spec
			context = r.contextFor(command)
		}
		if command == "none" {
			r.unbind(context, key)
			continue
		}
		r.register(Binding{Key: key, Command: command, Context: context})
	}
}

func (r *Registry) contextFor(command string) string {
	for _, b := range r.bindings {
		if b.Command == command {
			return b.Context
		}
	}
	return ContextGlobal
}

func (r *Registry) unbind(context, key string) {
	r.bindings = slices.DeleteFunc(r.bindings, func(x Binding) bool {
		return x.Key == key && (x.Context == context || context == ContextGlobal)
	})
	for ctx, m := range r.byKey {
		if ctx == context || context == ContextGlobal {
			delete(m, key)
		}
	}
}

// Lookup resolves key in context, falling back to global bindings.
func (r *Registry) Lookup(key, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cmd, ok := r.byKey[context][key]; ok {
		return cmd, true
	}
	cmd, ok := r.byKey[ContextGlobal][key]
	return cmd, ok
}

// BindingsForContext returns the bindings registered for context, in
// registration order.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Binding
	for _, b := range r.bindings {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// KeysFor returns the keys bound to command in context (or global).
func (r *Registry) KeysFor(command, context string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for _, b := range r.bindings {
		if b.Command == command && (b.Context == context || b.Context == ContextGlobal) {
			keys = append(keys, b.Key)
		}
	}
	return keys
}
