package board

import "fmt"

// Zone is the region a piece occupies.
type Zone int

const (
	ZoneBase Zone = iota
	ZoneTrack
	ZoneHomeStretch
	ZoneHome
)

var zoneNames = map[Zone]string{
	ZoneBase:        "BASE",
	ZoneTrack:       "TRACK",
	ZoneHomeStretch: "HOME_STRETCH",
	ZoneHome:        "HOME",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Position is a tagged location. Index is meaningful for ZoneTrack (0..51)
// and ZoneHomeStretch (0..4) only.
type Position struct {
	Zone  Zone
	Index int
}

// BasePosition returns the off-board starting position.
func BasePosition() Position { return Position{Zone: ZoneBase} }

// HomePosition returns the finished position.
func HomePosition() Position { return Position{Zone: ZoneHome} }

// TrackPosition returns a standard track position.
func TrackPosition(cell int) Position {
	if cell < 0 || cell >= TrackLength {
		invariant("TrackPosition", "cell %d out of range", cell)
	}
	return Position{Zone: ZoneTrack, Index: cell}
}

// StretchPosition returns a home stretch position.
func StretchPosition(offset int) Position {
	if offset < 0 || offset >= StretchLength {
		invariant("StretchPosition", "offset %d out of range", offset)
	}
	return Position{Zone: ZoneHomeStretch, Index: offset}
}

// OnTrack reports whether the position is a standard track cell.
func (p Position) OnTrack() bool { return p.Zone == ZoneTrack }

// OnBoard reports whether the position is visible on the board.
func (p Position) OnBoard() bool {
	return p.Zone == ZoneTrack || p.Zone == ZoneHomeStretch
}

// String renders the position the way status text refers to it.
func (p Position) String() string {
	switch p.Zone {
	case ZoneBase:
		return "Base"
	case ZoneTrack:
		return fmt.Sprintf("L%d", p.Index)
	case ZoneHomeStretch:
		return fmt.Sprintf("H%d", p.Index)
	case ZoneHome:
		return "Home"
	default:
		return p.Zone.String()
	}
}
