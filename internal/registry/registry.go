package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/result"
)

// ErrUnknownOperation is returned when no operation is registered under a name.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation is one named edit of a diagram's text. Params carry the edit's
// arguments as JSON.
type Operation interface {
	Name() string
	Apply(text string, params json.RawMessage) (string, error)
}

// Default is the global operation registry.
var Default = New()

// Registry holds edit operations.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// New returns a new empty registry.
func New() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds op under its name, replacing any previous operation.
func (r *Registry) Register(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.Name()] = op
}

// Get returns the operation for name, or nil and false.
func (r *Registry) Get(name string) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for n := range r.ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply runs the operation registered under name on text. An edit whose
// preconditions fail is not an error: the result carries the original text
// and Changed is false.
func (r *Registry) Apply(ctx context.Context, name, text string, params json.RawMessage) (result.EditResult, error) {
	op, ok := r.Get(name)
	if !ok {
		return result.EditResult{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	out, err := op.Apply(text, params)
	if err != nil {
		return result.EditResult{}, fmt.Errorf("%s: %w", name, err)
	}
	res := result.EditResult{Text: out, Changed: out != text}
	logger.FromContext(ctx).Debug("applied operation", "op", name, "changed", res.Changed)
	return res, nil
}

// Apply runs name on the Default registry.
func Apply(ctx context.Context, name, text string, params json.RawMessage) (result.EditResult, error) {
	return Default.Apply(ctx, name, text, params)
}
