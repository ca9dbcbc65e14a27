package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a match event.
type EventType string

const (
	// Match lifecycle events
	EventMatchStarted      EventType = "MATCH_STARTED"
	EventTurnOrderDecided  EventType = "TURN_ORDER_DECIDED"
	EventRoundStarted      EventType = "ROUND_STARTED"
	EventRoundSummary      EventType = "ROUND_SUMMARY"
	EventColorFinished     EventType = "COLOR_FINISHED"
	EventFinalStandings    EventType = "FINAL_STANDINGS"
	EventMatchAborted      EventType = "MATCH_ABORTED"
	EventDiceRolled        EventType = "DICE_ROLLED"
	EventNoMovablePiece    EventType = "NO_MOVABLE_PIECE"
	EventTurnEnded         EventType = "TURN_ENDED"
	EventInitialRoll       EventType = "INITIAL_ROLL"
	EventTurnExtended      EventType = "TURN_EXTENDED"
	EventBalancingRuleUsed EventType = "BALANCING_RULE_USED"

	// Movement events
	EventPieceEnteredBoard  EventType = "PIECE_ENTERED_BOARD"
	EventPieceMoved         EventType = "PIECE_MOVED"
	EventMoveBlocked        EventType = "MOVE_BLOCKED"
	EventEnteredHomeStretch EventType = "ENTERED_HOME_STRETCH"
	EventReachedHome        EventType = "REACHED_HOME"
	EventHomeOvershoot      EventType = "HOME_OVERSHOOT"
	EventApproachPassed     EventType = "APPROACH_PASSED"

	// Capture events
	EventPieceCaptured EventType = "PIECE_CAPTURED"

	// Blockade events
	EventBlockadeFormed    EventType = "BLOCKADE_FORMED"
	EventBlockadeMoved     EventType = "BLOCKADE_MOVED"
	EventBlockadeSeparated EventType = "BLOCKADE_SEPARATED"

	// Mystery cell events
	EventMysteryCellSpawned   EventType = "MYSTERY_CELL_SPAWNED"
	EventMysteryCellSkipped   EventType = "MYSTERY_CELL_SKIPPED"
	EventMysteryEffectRolled  EventType = "MYSTERY_EFFECT_ROLLED"
	EventMysteryEffectApplied EventType = "MYSTERY_EFFECT_APPLIED"
	EventTeleportRefused      EventType = "TELEPORT_REFUSED"
	EventEffectExpired        EventType = "EFFECT_EXPIRED"
)

// IsMovement returns true if this event type reports a piece changing position.
func (et EventType) IsMovement() bool {
	movementEvents := map[EventType]bool{
		EventPieceEnteredBoard:    true,
		EventPieceMoved:           true,
		EventEnteredHomeStretch:   true,
		EventReachedHome:          true,
		EventBlockadeMoved:        true,
		EventMysteryEffectApplied: true,
		EventPieceCaptured:        true,
	}
	return movementEvents[et]
}

// Event represents a state change that the renderer or other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	MatchID     string            // Match the event belongs to
	Round       int               // Round number (0 before the first round)
	Color       string            // Color acting or affected
	PieceID     string            // Piece acting or affected (e.g. "R1")
	TargetID    string            // Second piece involved (capture victim, etc.)
	From        string            // Origin location label ("Base", "L12", "H3", "Home")
	To          string            // Destination location label
	Amount      int               // Numeric value (distance, dice, rank, ...)
	Requested   int               // Requested distance for partial moves
	Flag        bool              // Boolean flag (partial move, clockwise, ...)
	Targets     []string          // Multiple pieces (blockade members, victims, standings)
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	order          []int // subscription order for deterministic delivery
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for i, h := range bus.order {
		if h == handle {
			bus.order = append(bus.order[:i], bus.order[i+1:]...)
			break
		}
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously,
// in subscription order.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	all := make([]Listener, 0, len(bus.order))
	for _, h := range bus.order {
		all = append(all, bus.listeners[h])
	}
	typed := append([]TypedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.RUnlock()

	// Listeners run outside the lock so they may publish follow-up events.
	for _, listener := range all {
		listener(event)
	}
	for _, listener := range typed {
		listener.Callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, color, pieceID string) Event {
	return Event{
		Type:      eventType,
		Color:     color,
		PieceID:   pieceID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, color, pieceID string, amount int) Event {
	evt := NewEvent(eventType, color, pieceID)
	evt.Amount = amount
	return evt
}

// NewEventWithFlag creates a new event with a flag value.
func NewEventWithFlag(eventType EventType, color, pieceID string, flag bool) Event {
	evt := NewEvent(eventType, color, pieceID)
	evt.Flag = flag
	return evt
}
