package effects

// Holder is anything carrying a movement effect, typically a piece.
type Holder interface {
	MovementEffect() *Movement
}

// CleanupExpired ticks every holder's effect by one round and returns the
// holders whose effect expired on this tick, in input order.
func CleanupExpired[H Holder](holders []H) []H {
	var expired []H
	for _, h := range holders {
		effect := h.MovementEffect()
		if effect == nil {
			continue
		}
		if effect.Tick() {
			expired = append(expired, h)
		}
	}
	return expired
}
