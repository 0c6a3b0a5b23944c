package session

import (
	"strings"
	"testing"
	"time"

	"github.com/Edju03/Richochet/game/engine"
)

func testLayout() *engine.BoardLayout {
	return &engine.BoardLayout{
		Name: "Test Board", Rows: 5, Cols: 5,
		Start:  engine.Position{Row: 0, Col: 0},
		Amber:  engine.Position{Row: 0, Col: 4},
		Violet: engine.Position{Row: 4, Col: 4},
		Goal:   engine.Position{Row: 4, Col: 0},
	}
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager(nil, 0)

	s, err := m.Create(testLayout())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" {
		t.Fatal("Expected a session ID")
	}
	if s.Engine == nil || s.Engine.RobotPosition() != (engine.Position{Row: 0, Col: 0}) {
		t.Error("Session engine not initialized at the start position")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Error("Get should return the same session")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	m := NewManager(nil, 0)
	s, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(strings.ToUpper(s.ID)); err != nil {
		t.Errorf("Expected case-insensitive lookup: %v", err)
	}
}

func TestCreateRejectsNilLayout(t *testing.T) {
	m := NewManager(nil, 0)
	if _, err := m.Create(nil); err == nil {
		t.Error("Expected error for nil layout")
	}
}

func TestCreateRejectsBrokenLayout(t *testing.T) {
	m := NewManager(nil, 0)
	broken := testLayout()
	broken.Goal = broken.Start
	if _, err := m.Create(broken); err == nil {
		t.Error("Expected error for a layout that fails to build")
	}
}

func TestDelete(t *testing.T) {
	m := NewManager(nil, 0)
	s, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(s.ID); err == nil {
		t.Error("Deleted session should not be retrievable")
	}
	if err := m.Delete(s.ID); err == nil {
		t.Error("Deleting twice should fail")
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager(nil, time.Hour)

	fresh, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	stale, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	if removed := m.CleanupExpiredSessions(); removed != 1 {
		t.Errorf("Expected 1 expired session, got %d", removed)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Error("Fresh session should survive cleanup")
	}
	if _, err := m.Get(stale.ID); err == nil {
		t.Error("Stale session should be gone")
	}
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	store, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePersistence: %v", err)
	}
	m := NewManager(store, 0)

	s, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	s.Engine.Move(engine.East)
	m.Save(s)

	// A second manager over the same store simulates a restart.
	restartedStore, err := NewFilePersistence(store.dir)
	if err != nil {
		t.Fatal(err)
	}
	restarted := NewManager(restartedStore, 0)
	restoredCount, err := restarted.LoadPersistedSessions()
	if err != nil {
		t.Fatalf("LoadPersistedSessions: %v", err)
	}
	if restoredCount != 1 {
		t.Fatalf("Expected 1 restored session, got %d", restoredCount)
	}

	restored, err := restarted.Get(s.ID)
	if err != nil {
		t.Fatalf("Get after restore: %v", err)
	}
	if restored.Engine.RobotPosition() != (engine.Position{Row: 0, Col: 4}) {
		t.Errorf("Restored robot at %s, expected (0,4)", restored.Engine.RobotPosition())
	}
	if !restored.Engine.GetState().Collected.Has(engine.ItemAmber) {
		t.Error("Restored state should include the collected amber")
	}
}

func TestFilePersistenceDelete(t *testing.T) {
	store, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(store, 0)

	s, err := m.Create(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(s.ID); err != nil {
		t.Fatal(err)
	}

	all, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("Expected no persisted sessions after delete, got %d", len(all))
	}
	// Deleting a missing snapshot is not an error.
	if err := store.Delete("no-such-session"); err != nil {
		t.Errorf("Delete of missing snapshot: %v", err)
	}
}

func TestLoadPersistedSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(store, 0)
	if _, err := m.Create(testLayout()); err != nil {
		t.Fatal(err)
	}

	// A snapshot without a layout cannot be rebuilt and must be skipped.
	if err := store.Save(&PersistedSession{ID: "broken"}); err != nil {
		t.Fatal(err)
	}

	restarted := NewManager(store, 0)
	restoredCount, err := restarted.LoadPersistedSessions()
	if err != nil {
		t.Fatal(err)
	}
	if restoredCount != 1 {
		t.Errorf("Expected only the valid session restored, got %d", restoredCount)
	}
}
