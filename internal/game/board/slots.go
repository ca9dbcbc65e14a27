package board

// Slots is a fixed-capacity set of piece ids occupying one cell.
// Insertion order is preserved.
type Slots struct {
	ids [CellCapacity]PieceID
	n   int
}

// Len returns the number of occupants.
func (s Slots) Len() int { return s.n }

// Empty reports whether the cell has no occupants.
func (s Slots) Empty() bool { return s.n == 0 }

// IDs returns the occupants in insertion order.
func (s Slots) IDs() []PieceID {
	return append([]PieceID(nil), s.ids[:s.n]...)
}

// Contains reports whether id occupies the cell.
func (s Slots) Contains(id PieceID) bool {
	for i := 0; i < s.n; i++ {
		if s.ids[i] == id {
			return true
		}
	}
	return false
}

// Count returns occupants of color and of other colors.
func (s Slots) Count(c Color) (own, enemies int) {
	for i := 0; i < s.n; i++ {
		if s.ids[i].Color() == c {
			own++
		} else {
			enemies++
		}
	}
	return own, enemies
}

func (s *Slots) add(id PieceID) bool {
	if s.n == CellCapacity || s.Contains(id) {
		return false
	}
	s.ids[s.n] = id
	s.n++
	return true
}

func (s *Slots) remove(id PieceID) bool {
	for i := 0; i < s.n; i++ {
		if s.ids[i] == id {
			copy(s.ids[i:s.n-1], s.ids[i+1:s.n])
			s.n--
			s.ids[s.n] = 0
			return true
		}
	}
	return false
}
