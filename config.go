package fsmgine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a declarative machine definition, typically loaded from YAML.
// Predicates and actions are referenced by name and resolved against a
// Registry when the machine is built.
type Config struct {
	Name        string             `json:"name"              yaml:"name"`
	Initial     string             `json:"initial"           yaml:"initial"`
	Guarded     bool               `json:"guarded,omitempty" yaml:"guarded,omitempty"`
	States      []StateConfig      `json:"states,omitempty"  yaml:"states,omitempty"`
	Transitions []TransitionConfig `json:"transitions"       yaml:"transitions"`
}

// StateConfig declares the hooks of one state. States mentioned only in
// transitions need no StateConfig entry.
type StateConfig struct {
	Name    string   `json:"name"              yaml:"name"`
	OnEnter []string `json:"onEnter,omitempty" yaml:"onEnter,omitempty"`
	OnExit  []string `json:"onExit,omitempty"  yaml:"onExit,omitempty"`
}

// TransitionConfig declares one transition by state and function names.
type TransitionConfig struct {
	From       string   `json:"from"                 yaml:"from"`
	To         string   `json:"to"                   yaml:"to"`
	Predicates []string `json:"predicates,omitempty" yaml:"predicates,omitempty"`
	Actions    []string `json:"actions,omitempty"    yaml:"actions,omitempty"`
}

// LoadConfig reads and parses a YAML machine definition from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a YAML machine definition.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks structural validity: name and initial state present, at
// least one transition, and every transition carrying both endpoints.
// Name resolution against a Registry happens later, in Build.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrConfigNameRequired
	}

	if c.Initial == "" {
		return ErrConfigInitialRequired
	}

	if len(c.Transitions) == 0 {
		return ErrConfigNoTransitions
	}

	for i, t := range c.Transitions {
		if t.From == "" {
			return fmt.Errorf("transition %d: %w", i, ErrTransitionFromRequired)
		}

		if t.To == "" {
			return fmt.Errorf("transition %d: %w", i, ErrTransitionToRequired)
		}
	}

	return nil
}

// Registry maps predicate and action names to functions over the event type,
// for resolving Config references.
type Registry[E any] struct {
	predicates map[string]Predicate[E]
	actions    map[string]Action[E]
}

// NewRegistry creates an empty registry.
func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{
		predicates: make(map[string]Predicate[E]),
		actions:    make(map[string]Action[E]),
	}
}

// RegisterPredicate binds a predicate name. Later registrations overwrite
// earlier ones.
func (r *Registry[E]) RegisterPredicate(name string, p Predicate[E]) *Registry[E] {
	r.predicates[name] = p

	return r
}

// RegisterAction binds an action name. Later registrations overwrite earlier
// ones.
func (r *Registry[E]) RegisterAction(name string, a Action[E]) *Registry[E] {
	r.actions[name] = a

	return r
}

// Predicate resolves a predicate by name.
func (r *Registry[E]) Predicate(name string) (Predicate[E], bool) {
	p, ok := r.predicates[name]

	return p, ok
}

// Action resolves an action by name.
func (r *Registry[E]) Action(name string) (Action[E], bool) {
	a, ok := r.actions[name]

	return a, ok
}

// Build constructs a machine from a validated config, resolving every
// predicate and action name through reg. The machine is activated at the
// config's initial state before being returned, so enter hooks of that state
// run with the zero event. Options are applied on top of the config; the
// config's name and guarded flag become WithName/WithGuarded unless the
// caller overrides them.
func Build[E any](config *Config, reg *Registry[E], opts ...Option) (*FSM[E], error) {
	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithName(config.Name))

	if config.Guarded {
		all = append(all, WithGuarded())
	}

	all = append(all, opts...)

	fsm := New[E](all...)
	b := fsm.Builder()

	for _, sc := range config.States {
		for _, name := range sc.OnEnter {
			action, ok := reg.Action(name)
			if !ok {
				return nil, fmt.Errorf("state %s onEnter %q: %w", sc.Name, name, ErrActionNotRegistered)
			}

			b.OnEnter(sc.Name, action)
		}

		for _, name := range sc.OnExit {
			action, ok := reg.Action(name)
			if !ok {
				return nil, fmt.Errorf("state %s onExit %q: %w", sc.Name, name, ErrActionNotRegistered)
			}

			b.OnExit(sc.Name, action)
		}
	}

	for _, tc := range config.Transitions {
		tb := b.From(tc.From)

		for _, name := range tc.Predicates {
			p, ok := reg.Predicate(name)
			if !ok {
				return nil, fmt.Errorf("transition %s -> %s predicate %q: %w",
					tc.From, tc.To, name, ErrPredicateNotRegistered)
			}

			tb.Predicate(p)
		}

		for _, name := range tc.Actions {
			action, ok := reg.Action(name)
			if !ok {
				return nil, fmt.Errorf("transition %s -> %s action %q: %w",
					tc.From, tc.To, name, ErrActionNotRegistered)
			}

			tb.Action(action)
		}

		tb.To(tc.To)
	}

	err = fsm.SetInitialState(config.Initial)
	if err != nil {
		return nil, err
	}

	return fsm, nil
}
