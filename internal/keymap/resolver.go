package keymap

import "github.com/samber/lo"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	// Deduplicate keys per action
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Global returns a resolver for the keys that work regardless of focus.
func Global() *Resolver {
	var bindings []Binding
	for _, b := range Bindings {
		if b.Context == ContextGlobal || b.Context == ContextPlayback {
			bindings = append(bindings, b)
		}
	}
	return NewResolver(bindings)
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
