package reciprocal

import (
	"fmt"
	"sort"
	"sync"
)

// StrategyFactory looks up summation strategies by name.
type StrategyFactory interface {
	Get(name string) (Summer, error)
	List() []string
	GetAll() map[string]Summer
	Register(name string, s Summer) error
}

// Options configures the strategies registered by NewDefaultFactory.
// Zero values select the defaults.
type Options struct {
	Tasks   int
	Workers int
	Cutoff  int
}

// DefaultFactory is a concurrency-safe StrategyFactory.
type DefaultFactory struct {
	mu         sync.RWMutex
	strategies map[string]Summer
}

// NewDefaultFactory returns a factory holding the sequential, two-way,
// many-task and recursive strategies configured from opts.
func NewDefaultFactory(opts Options) *DefaultFactory {
	f := &DefaultFactory{strategies: make(map[string]Summer, 4)}
	for _, s := range []Summer{
		Sequential{},
		TwoWay{},
		ManyTask{Tasks: opts.Tasks, Workers: opts.Workers},
		Recursive{Cutoff: opts.Cutoff},
	} {
		f.strategies[s.Name()] = s
	}
	return f
}

// Get returns the strategy registered under name.
func (f *DefaultFactory) Get(name string) (Summer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.strategies))
	for name := range f.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Summer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Summer, len(f.strategies))
	for name, s := range f.strategies {
		all[name] = s
	}
	return all
}

// Register adds s under name, replacing any previous entry.
func (f *DefaultFactory) Register(name string, s Summer) error {
	if name == "" {
		return fmt.Errorf("strategy name cannot be empty")
	}
	if s == nil {
		return fmt.Errorf("strategy %q is nil", name)
	}
	f.mu.Lock()
	f.strategies[name] = s
	f.mu.Unlock()
	return nil
}
