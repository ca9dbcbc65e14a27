package board

import "fmt"

// NoCell marks the absence of a mystery cell.
const NoCell = -1

// Board is the single mutable model of a match: the piece arena plus the
// occupancy of every track and home stretch cell. Cells store piece ids.
type Board struct {
	pieces  [NumPieces]Piece
	track   [TrackLength]Slots
	stretch [NumColors][StretchLength]Slots
	mystery int
}

// New returns a board with every piece at base.
func New() *Board {
	b := &Board{mystery: NoCell}
	for _, c := range Colors {
		for i := 0; i < PiecesPerColor; i++ {
			id := NewPieceID(c, i)
			b.pieces[id] = Piece{ID: id, Color: c, Pos: BasePosition()}
			b.pieces[id].resetStats()
		}
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Piece returns the arena entry for id.
func (b *Board) Piece(id PieceID) *Piece {
	if !id.Valid() {
		invariant("Board.Piece", "piece id %d out of range", int(id))
	}
	return &b.pieces[id]
}

// Pieces returns the pieces of c in ordinal order.
func (b *Board) Pieces(c Color) []*Piece {
	mustColor("Board.Pieces", c)
	out := make([]*Piece, 0, PiecesPerColor)
	for i := 0; i < PiecesPerColor; i++ {
		out = append(out, &b.pieces[NewPieceID(c, i)])
	}
	return out
}

// AllPieces returns every piece in arena order.
func (b *Board) AllPieces() []*Piece {
	out := make([]*Piece, 0, NumPieces)
	for i := range b.pieces {
		out = append(out, &b.pieces[i])
	}
	return out
}

// Track returns the occupants of a track cell.
func (b *Board) Track(cell int) Slots {
	checkCell("Board.Track", cell)
	return b.track[cell]
}

// Stretch returns the occupants of a home stretch cell of c.
func (b *Board) Stretch(c Color, offset int) Slots {
	mustColor("Board.Stretch", c)
	if offset < 0 || offset >= StretchLength {
		invariant("Board.Stretch", "offset %d out of range", offset)
	}
	return b.stretch[c][offset]
}

// Counts returns occupants of c and of other colors on a track cell.
func (b *Board) Counts(cell int, c Color) (own, enemies int) {
	return b.Track(cell).Count(c)
}

// Occupancy is Counts keyed by color name.
func (b *Board) Occupancy(cell int, color string) (own, enemies int) {
	c, err := ParseColor(color)
	if err != nil {
		invariant("Board.Occupancy", "%v", err)
	}
	return b.Counts(cell, c)
}

// TrackLength returns the number of track cells.
func (b *Board) TrackLength() int { return TrackLength }

// Enemies returns the occupants of a track cell whose color is not c.
func (b *Board) Enemies(cell int, c Color) []PieceID {
	var out []PieceID
	for _, id := range b.Track(cell).IDs() {
		if id.Color() != c {
			out = append(out, id)
		}
	}
	return out
}

// Group returns the pieces of c on a track cell.
func (b *Board) Group(cell int, c Color) []PieceID {
	var out []PieceID
	for _, id := range b.Track(cell).IDs() {
		if id.Color() == c {
			out = append(out, id)
		}
	}
	return out
}

// IsBlockade reports whether a track cell holds two or more pieces.
func (b *Board) IsBlockade(cell int) bool {
	return b.Track(cell).Len() >= 2
}

// InBlockade reports whether id shares its track cell with a same-color piece.
func (b *Board) InBlockade(id PieceID) bool {
	p := b.Piece(id)
	if !p.Pos.OnTrack() {
		return false
	}
	own, _ := b.Counts(p.Pos.Index, p.Color)
	return own >= 2
}

// BlockadeCells returns the track cells where c holds a blockade, ascending.
func (b *Board) BlockadeCells(c Color) []int {
	var cells []int
	for cell := 0; cell < TrackLength; cell++ {
		if own, _ := b.Counts(cell, c); own >= 2 {
			cells = append(cells, cell)
		}
	}
	return cells
}

// CountIn returns how many pieces of c are in zone.
func (b *Board) CountIn(c Color, zone Zone) int {
	n := 0
	for _, p := range b.Pieces(c) {
		if p.Pos.Zone == zone {
			n++
		}
	}
	return n
}

// HasPieceOnBoard reports whether any piece of any color is on the board.
func (b *Board) HasPieceOnBoard() bool {
	for i := range b.pieces {
		if b.pieces[i].Pos.OnBoard() {
			return true
		}
	}
	return false
}

// AllHome reports whether every piece of c has finished.
func (b *Board) AllHome(c Color) bool {
	return b.CountIn(c, ZoneHome) == PiecesPerColor
}

// MysteryCell returns the current mystery cell or NoCell.
func (b *Board) MysteryCell() int { return b.mystery }

// SetMysteryCell places (or with NoCell, clears) the mystery cell.
func (b *Board) SetMysteryCell(cell int) {
	if cell != NoCell {
		checkCell("Board.SetMysteryCell", cell)
	}
	b.mystery = cell
}

// Move relocates id to pos. The origin slot is cleared before the
// destination is written. Occupants of the destination are left untouched;
// resolving captures is the caller's job.
func (b *Board) Move(id PieceID, pos Position) {
	p := b.Piece(id)
	b.lift(p)
	p.Pos = pos
	b.place(p)
}

// ResetToBase returns a captured piece to base with default stats.
func (b *Board) ResetToBase(id PieceID) {
	b.Move(id, BasePosition())
	b.Piece(id).resetStats()
}

func (b *Board) slotsFor(p *Piece) *Slots {
	switch p.Pos.Zone {
	case ZoneTrack:
		checkCell("Board.slotsFor", p.Pos.Index)
		return &b.track[p.Pos.Index]
	case ZoneHomeStretch:
		if p.Pos.Index < 0 || p.Pos.Index >= StretchLength {
			invariant("Board.slotsFor", "%s stretch offset %d out of range", p.Name(), p.Pos.Index)
		}
		return &b.stretch[p.Color][p.Pos.Index]
	default:
		return nil
	}
}

func (b *Board) lift(p *Piece) {
	slots := b.slotsFor(p)
	if slots == nil {
		return
	}
	if !slots.remove(p.ID) {
		invariant("Board.lift", "%s missing from %s", p.Name(), p.Pos)
	}
}

func (b *Board) place(p *Piece) {
	slots := b.slotsFor(p)
	if slots == nil {
		return
	}
	if !slots.add(p.ID) {
		invariant("Board.place", "cannot place %s on %s holding %d", p.Name(), p.Pos, slots.Len())
	}
}

// CheckIntegrity verifies that every visible piece sits in exactly the slot
// its position names, that no slot references a piece elsewhere, and that
// track cells are color-homogeneous.
func (b *Board) CheckIntegrity() error {
	seen := make(map[PieceID]int, NumPieces)
	for cell := 0; cell < TrackLength; cell++ {
		slots := b.track[cell]
		var first Color = -1
		for _, id := range slots.IDs() {
			seen[id]++
			p := b.Piece(id)
			if p.Pos != TrackPosition(cell) {
				return &InvariantError{Op: "CheckIntegrity", Detail: fmt.Sprintf("L%d references %s at %s", cell, p.Name(), p.Pos)}
			}
			if first == -1 {
				first = p.Color
			} else if p.Color != first {
				return &InvariantError{Op: "CheckIntegrity", Detail: fmt.Sprintf("L%d holds both %s and %s", cell, first, p.Color)}
			}
		}
	}
	for _, c := range Colors {
		for offset := 0; offset < StretchLength; offset++ {
			for _, id := range b.stretch[c][offset].IDs() {
				seen[id]++
				p := b.Piece(id)
				if p.Color != c || p.Pos != StretchPosition(offset) {
					return &InvariantError{Op: "CheckIntegrity", Detail: fmt.Sprintf("%s H%d references %s at %s", c, offset, p.Name(), p.Pos)}
				}
			}
		}
	}
	for i := range b.pieces {
		p := &b.pieces[i]
		want := 0
		if p.Pos.OnBoard() {
			want = 1
		}
		if seen[p.ID] != want {
			return &InvariantError{Op: "CheckIntegrity", Detail: fmt.Sprintf("%s at %s referenced %d times", p.Name(), p.Pos, seen[p.ID])}
		}
	}
	return nil
}

func checkCell(op string, cell int) {
	if cell < 0 || cell >= TrackLength {
		invariant(op, "cell %d out of range", cell)
	}
}
