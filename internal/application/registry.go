package application

import (
	"errors"
	"fmt"

	"dashboard-converter/utils"
)

// Keys of the default contexts.
const (
	KeyHostsGroup        = "key_hosts_group"
	KeyCustomApplication = "key_custom_application"
	KeyTLSDomain         = "key_tls_domain"
	KeyCNAMEDomain       = "key_cname_domain"
)

// Context is one application grouping.
type Context struct {
	Key string
	// Name is the token naming the context in dashboard file names.
	Name string
	// Labels are the display labels of the context, primary label first.
	// Longer labels must precede labels they contain.
	Labels []string
	// Tag is the measurement tag of the grouping.
	Tag string
}

// Primary returns the label other contexts' labels are replaced by.
func (c Context) Primary() string { return c.Labels[0] }

// Registry is an ordered set of contexts.
type Registry struct {
	contexts []Context
	byKey    map[string]int
}

var errInvalidContext = errors.New("invalid application context")

// NewRegistry checks and indexes contexts. Keys must be unique and every
// context needs a name, a label and a tag.
func NewRegistry(contexts ...Context) (*Registry, error) {
	r := &Registry{byKey: make(map[string]int, len(contexts))}

	for _, c := range contexts {
		if c.Key == "" || c.Name == "" || c.Tag == "" || len(c.Labels) == 0 || c.Labels[0] == "" {
			return nil, fmt.Errorf("%w: %+v", errInvalidContext, c)
		}

		if _, dup := r.byKey[c.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", errInvalidContext, c.Key)
		}

		r.byKey[c.Key] = len(r.contexts)
		r.contexts = append(r.contexts, c)
	}

	return r, nil
}

// DefaultRegistry returns the four application groupings of the dashboard set.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Context{Key: KeyHostsGroup, Name: "Hosts Group", Labels: []string{"Hosts Group"}, Tag: "hosts_group"},
		Context{
			Key:    KeyCustomApplication,
			Name:   "Application",
			Labels: []string{"Custom Application", "Application"},
			Tag:    "custom_application",
		},
		Context{Key: KeyTLSDomain, Name: "SNI Name", Labels: []string{"SNI Name"}, Tag: "tls_domain"},
		Context{Key: KeyCNAMEDomain, Name: "Canonical Name", Labels: []string{"Canonical Name"}, Tag: "cname_domain"},
	)
	if err != nil {
		panic(err)
	}

	return r
}

// Keys returns the context keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.contexts))
	for i, c := range r.contexts {
		keys[i] = c.Key
	}

	return keys
}

// Context returns the context registered under key.
func (r *Registry) Context(key string) (Context, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Context{}, false
	}

	return r.contexts[i], true
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	return utils.Found(r.Context(key))
}

// Others returns every context except the one registered under key.
func (r *Registry) Others(key string) []Context {
	out := make([]Context, 0, len(r.contexts))
	for _, c := range r.contexts {
		if c.Key != key {
			out = append(out, c)
		}
	}

	return out
}
