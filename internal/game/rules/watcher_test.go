package rules

import (
	"testing"
)

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	testWatcher := &testWatcherImpl{
		BaseWatcher: NewBaseWatcher(WatcherScopeGame),
	}
	testWatcher.SetKey("TestWatcher")

	registry.AddWatcher(testWatcher)

	retrieved := registry.GetWatcher("TestWatcher")
	if retrieved == nil {
		t.Fatal("should retrieve TestWatcher")
	}

	registry.NotifyWatchers(NewEvent(EventPieceCaptured, "RED", "R1"))
	if !testWatcher.ConditionMet() {
		t.Fatal("testWatcher should have condition met")
	}

	registry.ResetWatchersByScope(WatcherScopeColor)
	if !testWatcher.ConditionMet() {
		t.Fatal("color-scoped reset must not touch game watchers")
	}
	registry.ResetWatchersByScope(WatcherScopeGame)
	if testWatcher.ConditionMet() {
		t.Fatal("watcher should not have condition met after reset")
	}

	registry.RemoveWatcher("TestWatcher")
	if registry.GetWatcher("TestWatcher") != nil {
		t.Fatal("watcher should be removed")
	}
	testWatcher.SetCondition(false)
	registry.NotifyWatchers(NewEvent(EventPieceCaptured, "RED", "R1"))
	if testWatcher.ConditionMet() {
		t.Fatal("removed watcher should not be notified")
	}
}

// testWatcherImpl flags any capture event.
type testWatcherImpl struct {
	*BaseWatcher
}

func (w *testWatcherImpl) Watch(event Event) {
	if event.Type == EventPieceCaptured {
		w.SetCondition(true)
	}
}


func TestWatcherScope(t *testing.T) {
	if WatcherScopeGame.String() != "GAME" {
		t.Fatalf("expected GAME, got %s", WatcherScopeGame.String())
	}
	if WatcherScopeColor.String() != "COLOR" {
		t.Fatalf("expected COLOR, got %s", WatcherScopeColor.String())
	}
	if WatcherScope(9).String() != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN, got %s", WatcherScope(9).String())
	}
}

func TestBaseWatcher(t *testing.T) {
	bw := NewBaseWatcher(WatcherScopeGame)
	bw.SetKey("test_key")

	if bw.GetKey() != "test_key" {
		t.Fatalf("expected test_key, got %s", bw.GetKey())
	}
	if bw.ConditionMet() {
		t.Fatal("should not have condition met initially")
	}

	bw.SetCondition(true)
	if !bw.ConditionMet() {
		t.Fatal("should have condition met after SetCondition")
	}

	bw.Reset()
	if bw.ConditionMet() {
		t.Fatal("should not have condition met after reset")
	}

	bw.SetColor("RED")
	if bw.GetColor() != "RED" {
		t.Fatalf("expected RED, got %s", bw.GetColor())
	}
}

func TestWatcherRegistryGeneratesKeys(t *testing.T) {
	registry := NewWatcherRegistry()

	w := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeColor)}
	w.SetColor("BLUE")
	registry.AddWatcher(w)

	if w.GetKey() != "BLUE_testWatcherImpl" {
		t.Fatalf("expected generated key BLUE_testWatcherImpl, got %s", w.GetKey())
	}
	if registry.GetWatcher("BLUE_testWatcherImpl") == nil {
		t.Fatal("watcher should be retrievable by generated key")
	}

	// Re-adding with the same key replaces the previous watcher.
	again := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeColor)}
	again.SetColor("BLUE")
	registry.AddWatcher(again)
	if registry.GetWatcher("BLUE_testWatcherImpl") != again {
		t.Fatal("re-adding a key should replace the previous watcher")
	}
	registry.NotifyWatchers(NewEvent(EventPieceCaptured, "BLUE", "B1"))
	if w.ConditionMet() {
		t.Fatal("the replaced watcher should no longer be notified")
	}
}

func TestWatcherRegistryIntegration(t *testing.T) {
	registry := NewWatcherRegistry()
	eventBus := NewEventBus()

	eventBus.Subscribe(func(event Event) {
		registry.NotifyWatchers(event)
	})

	testWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	testWatcher.SetKey("TestWatcher")
	registry.AddWatcher(testWatcher)

	eventBus.Publish(NewEvent(EventPieceMoved, "RED", "R1"))
	if testWatcher.ConditionMet() {
		t.Fatal("a plain move should not satisfy the capture watcher")
	}

	eventBus.Publish(NewEvent(EventPieceCaptured, "RED", "R1"))
	if !testWatcher.ConditionMet() {
		t.Fatal("testWatcher should have condition met")
	}

	registry.ResetWatchersByScope(WatcherScopeGame)
	if testWatcher.ConditionMet() {
		t.Fatal("testWatcher should not have condition met after reset")
	}
}
