package rules

import (
	"reflect"
	"sync"
)

// WatcherScope defines the scope of a watcher's tracking.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire match.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeColor tracks events for a specific color.
	WatcherScopeColor
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeColor:
		return "COLOR"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes match events and tracks a condition the scheduler can query.
type Watcher interface {
	// Watch is called for every event published on the bus.
	Watch(event Event)

	// Reset clears the watcher's condition and state (typically at the start of a turn).
	Reset()

	// ConditionMet returns true if the condition this watcher tracks has been met.
	ConditionMet() bool

	// GetScope returns the scope of this watcher.
	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	// For GAME scope: type name
	// For COLOR scope: color + type name
	GetKey() string
}

// BaseWatcher provides a base implementation for watchers.
type BaseWatcher struct {
	scope     WatcherScope
	color     string
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the specified scope.
func NewBaseWatcher(scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{scope: scope}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// SetColor sets the watched color (for COLOR scope watchers).
func (bw *BaseWatcher) SetColor(color string) {
	bw.color = color
}

// GetColor returns the watched color.
func (bw *BaseWatcher) GetColor() string {
	return bw.color
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// SetKey sets the unique key for this watcher.
func (bw *BaseWatcher) SetKey(key string) {
	bw.key = key
}

// WatcherRegistry manages the watchers of a match. Watchers are notified in
// registration order so replays stay deterministic.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	ordered  []Watcher
	byScope  map[WatcherScope][]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
		byScope:  make(map[WatcherScope][]Watcher),
	}
}

// AddWatcher adds a watcher to the registry, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.GetKey()
	if key == "" {
		key = generateKey(watcher)
		if setter, ok := watcher.(interface{ SetKey(string) }); ok {
			setter.SetKey(key)
		}
	}

	if _, exists := wr.watchers[key]; exists {
		wr.removeLocked(key)
	}

	wr.watchers[key] = watcher
	wr.ordered = append(wr.ordered, watcher)
	scope := watcher.GetScope()
	wr.byScope[scope] = append(wr.byScope[scope], watcher)
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.removeLocked(key)
}

func (wr *WatcherRegistry) removeLocked(key string) {
	watcher, ok := wr.watchers[key]
	if !ok {
		return
	}
	delete(wr.watchers, key)

	for i, w := range wr.ordered {
		if w == watcher {
			wr.ordered = append(wr.ordered[:i], wr.ordered[i+1:]...)
			break
		}
	}

	scope := watcher.GetScope()
	watchers := wr.byScope[scope]
	for i, w := range watchers {
		if w == watcher {
			wr.byScope[scope] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// ResetWatchersByScope resets all watchers for a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.byScope[scope] {
		watcher.Reset()
	}
}

// NotifyWatchers forwards an event to every watcher; watchers filter internally.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	watchers := append([]Watcher(nil), wr.ordered...)
	wr.mu.RUnlock()

	for _, watcher := range watchers {
		watcher.Watch(event)
	}
}

// generateKey derives a key from the watcher's scope and concrete type name.
func generateKey(watcher Watcher) string {
	typeName := watcherTypeName(watcher)

	switch watcher.GetScope() {
	case WatcherScopeColor:
		if getter, ok := watcher.(interface{ GetColor() string }); ok {
			if color := getter.GetColor(); color != "" {
				return color + "_" + typeName
			}
		}
	}
	return typeName
}

func watcherTypeName(watcher Watcher) string {
	t := reflect.TypeOf(watcher)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "Watcher"
	}
	return t.Name()
}
