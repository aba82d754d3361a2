package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/afiqzx/botrelay-backend/internal/models"
)

func TestBotStatusInitializesOn(t *testing.T) {
	store := NewMemoryStore()

	isOn, err := store.GetBotStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isOn {
		t.Error("expected bot status to initialize to ON")
	}
}

func TestBotStatusConcurrentInit(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.GetBotStatus()
		}()
	}
	wg.Wait()

	if len(store.status) != 1 {
		t.Errorf("expected a single status record, got %d", len(store.status))
	}
	isOn, _ := store.GetBotStatus()
	if !isOn {
		t.Error("expected final state ON")
	}
}

func TestBotStatusSetGet(t *testing.T) {
	store := NewMemoryStore()

	if err := store.SetBotStatus(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	isOn, err := store.GetBotStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isOn {
		t.Error("expected bot status OFF after SetBotStatus(false)")
	}
}

func TestHistoryWindowKeepsNewestTwenty(t *testing.T) {
	store := NewMemoryStore()

	for i := 1; i <= 25; i++ {
		if err := store.AppendHistory("user1", fmt.Sprintf("msg %d", i), models.RoleUser); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	turns, err := store.ListHistory("user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != HistoryLimit {
		t.Fatalf("expected %d turns, got %d", HistoryLimit, len(turns))
	}
	if turns[0].Text != "msg 6" {
		t.Errorf("expected oldest retained turn 'msg 6', got %q", turns[0].Text)
	}
	if turns[len(turns)-1].Text != "msg 25" {
		t.Errorf("expected newest turn 'msg 25', got %q", turns[len(turns)-1].Text)
	}
}

func TestHistoryChronologicalOrder(t *testing.T) {
	store := NewMemoryStore()

	store.AppendHistory("user1", "first", models.RoleUser)
	store.AppendHistory("user1", "second", models.RoleModel)
	store.AppendHistory("user1", "third", models.RoleUser)

	turns, err := store.ListHistory("user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i, text := range want {
		if turns[i].Text != text {
			t.Errorf("turn %d: expected %q, got %q", i, text, turns[i].Text)
		}
	}
}

func TestHistoryScopedPerUser(t *testing.T) {
	store := NewMemoryStore()

	store.AppendHistory("user1", "hello from one", models.RoleUser)
	store.AppendHistory("user2", "hello from two", models.RoleUser)

	turns, _ := store.ListHistory("user1")
	if len(turns) != 1 || turns[0].Text != "hello from one" {
		t.Errorf("unexpected history for user1: %+v", turns)
	}
}

func TestClearHistory(t *testing.T) {
	store := NewMemoryStore()

	store.AppendHistory("user1", "hello", models.RoleUser)
	store.AppendHistory("user1", "hi there", models.RoleModel)

	if err := store.ClearHistory("user1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turns, err := store.ListHistory("user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected empty history after clear, got %d turns", len(turns))
	}
}
