package chain

import (
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v2"
)

var (
	ErrDuplicateChain = errors.New("duplicate chain id")
	ErrUnknownChain   = errors.New("unknown chain id")
)

// Registry holds validated chains in insertion order.
type Registry struct {
	mu     sync.RWMutex
	order  []uint64
	chains map[uint64]Chain
}

func NewRegistry(chains ...Chain) (*Registry, error) {
	r := &Registry{chains: make(map[uint64]Chain)}
	for _, c := range chains {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Add(c Chain) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chains[c.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateChain, c.ID)
	}
	r.chains[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *Registry) Get(id uint64) (Chain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chains[id]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return c, nil
}

func (r *Registry) All() []Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Chain, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.chains[id])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Load parses a YAML list of chains and adds each one.
func (r *Registry) Load(data []byte) error {
	var chains []Chain
	if err := yaml.Unmarshal(data, &chains); err != nil {
		return fmt.Errorf("parse chains: %w", err)
	}
	for _, c := range chains {
		if err := r.Add(c); err != nil {
			return err
		}
	}
	return nil
}
