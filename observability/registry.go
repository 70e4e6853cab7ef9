package observability

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Machine configs name their observer; these are the names they can use.
// "slog" logs through slog.Default() as it is at event time, so a later
// slog.SetDefault is honoured.
var (
	registryMu sync.RWMutex
	registry   = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(nil),
	}
)

func GetObserver(name string) (Observer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	obs, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownObserver, name, registeredLocked())
	}
	return obs, nil
}

// RegisterObserver adds or replaces the observer known as name.
func RegisterObserver(name string, observer Observer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = observer
}

// Registered returns the registered observer names in sorted order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registeredLocked()
}

func registeredLocked() []string {
	return slices.Sorted(maps.Keys(registry))
}
