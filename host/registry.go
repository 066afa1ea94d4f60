package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Sentinel errors for the capability registry.
var (
	ErrCapabilityAlreadyRegistered = errors.New("capability already registered")
	ErrCapabilityNotFound          = errors.New("capability not found")
)

// CapabilityRegistry defines the interface the host uses to look up
// capabilities registered by plugins.
type CapabilityRegistry interface {
	// Register adds a capability under its name.
	Register(cap Capability) error
	// Get returns a capability by name.
	Get(name string) (Capability, bool)
	// List returns all capabilities sorted by name.
	List() []Capability
}

// InMemoryCapabilityRegistry is a thread-safe in-memory implementation of
// CapabilityRegistry.
type InMemoryCapabilityRegistry struct {
	caps   map[string]Capability
	mu     sync.RWMutex
	logger *zap.Logger
}

// Compile-time interface compliance check.
var _ CapabilityRegistry = (*InMemoryCapabilityRegistry)(nil)

// NewInMemoryCapabilityRegistry creates a new InMemoryCapabilityRegistry.
func NewInMemoryCapabilityRegistry(logger *zap.Logger) *InMemoryCapabilityRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryCapabilityRegistry{
		caps:   make(map[string]Capability),
		logger: logger.With(zap.String("component", "capability_registry")),
	}
}

// Register adds a capability to the registry.
func (r *InMemoryCapabilityRegistry) Register(cap Capability) error {
	if cap == nil {
		return fmt.Errorf("capability must not be nil")
	}
	name := cap.Name()
	if name == "" {
		return fmt.Errorf("capability name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.caps[name]; exists {
		return fmt.Errorf("%w: %s", ErrCapabilityAlreadyRegistered, name)
	}
	r.caps[name] = cap

	r.logger.Info("capability registered", zap.String("name", name))
	return nil
}

// Get returns a capability by name.
func (r *InMemoryCapabilityRegistry) Get(name string) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	return c, ok
}

// List returns all capabilities sorted by name.
func (r *InMemoryCapabilityRegistry) List() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Capability, 0, len(r.caps))
	for _, c := range r.caps {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}
