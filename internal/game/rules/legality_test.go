package rules

import (
	"testing"
)

// mockCells implements CellAccessor for testing.
type mockCells struct {
	occupants map[int]map[string]int
}

func newMockCells() *mockCells {
	return &mockCells{occupants: make(map[int]map[string]int)}
}

func (m *mockCells) put(cell int, color string, n int) {
	if m.occupants[cell] == nil {
		m.occupants[cell] = make(map[string]int)
	}
	m.occupants[cell][color] += n
}

func (m *mockCells) Occupancy(cell int, color string) (own, enemies int) {
	for c, n := range m.occupants[cell] {
		if c == color {
			own += n
		} else {
			enemies += n
		}
	}
	return own, enemies
}

func (m *mockCells) TrackLength() int { return 52 }

func TestIsBlockedAsymmetry(t *testing.T) {
	cases := []struct {
		travelers, enemies int
		blocked            bool
	}{
		{1, 0, false},
		{1, 1, false},
		{1, 2, true},
		{2, 2, false},
		{2, 3, true},
		{3, 2, false},
		{4, 4, false},
	}
	for _, tc := range cases {
		if got := IsBlocked(tc.travelers, tc.enemies); got != tc.blocked {
			t.Errorf("IsBlocked(%d, %d) = %v, want %v", tc.travelers, tc.enemies, got, tc.blocked)
		}
	}
}

func TestCanCapture(t *testing.T) {
	if CanCapture(1, 0) {
		t.Error("an empty cell offers no capture")
	}
	if !CanCapture(1, 1) {
		t.Error("a lone piece should capture a lone enemy")
	}
	if CanCapture(1, 2) {
		t.Error("a lone piece cannot capture a pair")
	}
	if !CanCapture(2, 2) {
		t.Error("a pair should capture a pair")
	}
}

func TestCanEnterHomeStraight(t *testing.T) {
	if CanEnterHomeStraight(0, 3, true) {
		t.Error("zero captures must never allow entry")
	}
	if CanEnterHomeStraight(0, 3, false) {
		t.Error("zero captures must never allow entry counter-clockwise")
	}
	if !CanEnterHomeStraight(1, 0, true) {
		t.Error("clockwise piece with a capture should enter")
	}
	if CanEnterHomeStraight(1, 0, false) {
		t.Error("counter-clockwise piece without an approach pass should not enter")
	}
	if !CanEnterHomeStraight(1, 1, false) {
		t.Error("counter-clockwise piece with a capture and a pass should enter")
	}
}

func TestExtendsTurn(t *testing.T) {
	if !ExtendsTurn(6, false, 1) {
		t.Error("a six should extend the turn")
	}
	if !ExtendsTurn(3, true, 2) {
		t.Error("a capture should extend the turn")
	}
	if ExtendsTurn(3, false, 1) {
		t.Error("a plain roll should end the turn")
	}
	if ExtendsTurn(6, true, MaxRollsPerTurn) {
		t.Error("no extension after the roll limit")
	}
	if !CanLeaveBase(6) || CanLeaveBase(5) {
		t.Error("only a six leaves base")
	}
}

func TestLegalityChecker_CheckLanding(t *testing.T) {
	cells := newMockCells()
	cells.put(10, "BLUE", 1)
	cells.put(20, "BLUE", 2)
	cells.put(30, "RED", 2)

	checker := NewLegalityChecker(cells)

	result := checker.CheckLanding(5, 1, "RED")
	if !result.Legal || result.Reason != "" {
		t.Errorf("expected plain legal landing, got %+v", result)
	}

	result = checker.CheckLanding(10, 1, "RED")
	if !result.Legal || result.Reason != "Capture" {
		t.Errorf("expected capture landing, got %+v", result)
	}

	result = checker.CheckLanding(20, 1, "RED")
	if result.Legal {
		t.Error("expected blocked landing on a pair")
	}
	if result.Details["enemies"] != "2" {
		t.Errorf("expected enemies detail 2, got %q", result.Details["enemies"])
	}

	result = checker.CheckLanding(20, 2, "RED")
	if !result.Legal {
		t.Errorf("a pair should land on a pair, got %s", result.Reason)
	}

	result = checker.CheckLanding(30, 1, "RED")
	if !result.Legal || result.Reason != "" {
		t.Errorf("own pieces never block, got %+v", result)
	}

	result = checker.CheckLanding(52, 1, "RED")
	if result.Legal {
		t.Error("off-track cell should be illegal")
	}
}

func TestLegalityChecker_Uninitialized(t *testing.T) {
	var checker *LegalityChecker
	if checker.CheckLanding(1, 1, "RED").Legal {
		t.Error("nil checker should reject")
	}
}
