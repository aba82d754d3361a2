package storage

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/afiqzx/botrelay-backend/internal/models"
)

func newTestDatabaseStore(t *testing.T) *DatabaseStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.BotStatus{}, &models.ChatTurn{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewDatabaseStore(db)
}

func TestDatabaseBotStatusLazyInit(t *testing.T) {
	store := newTestDatabaseStore(t)

	isOn, err := store.GetBotStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isOn {
		t.Error("expected bot status to initialize to ON")
	}

	// A second read must reuse the record, not insert another.
	isOn, err = store.GetBotStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isOn {
		t.Error("expected bot status ON on second read")
	}

	var count int64
	store.db.Model(&models.BotStatus{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single status row, got %d", count)
	}
}

func TestDatabaseBotStatusToggleRoundTrip(t *testing.T) {
	store := newTestDatabaseStore(t)

	if err := store.SetBotStatus(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isOn, _ := store.GetBotStatus(); isOn {
		t.Error("expected bot status OFF after SetBotStatus(false)")
	}

	if err := store.SetBotStatus(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isOn, _ := store.GetBotStatus(); !isOn {
		t.Error("expected bot status ON after SetBotStatus(true)")
	}

	var count int64
	store.db.Model(&models.BotStatus{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single status row after toggles, got %d", count)
	}
}

func TestDatabaseHistoryWindowTrimsRows(t *testing.T) {
	store := newTestDatabaseStore(t)

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

	// The trim must delete the old rows, not just hide them behind LIMIT.
	var count int64
	store.db.Unscoped().Model(&models.ChatTurn{}).Where("user_id = ?", "user1").Count(&count)
	if count != HistoryLimit {
		t.Errorf("expected %d rows in table, got %d", HistoryLimit, count)
	}
}

func TestDatabaseHistoryTrimScopedPerUser(t *testing.T) {
	store := newTestDatabaseStore(t)

	store.AppendHistory("user2", "keep me", models.RoleUser)
	for i := 1; i <= HistoryLimit+5; i++ {
		store.AppendHistory("user1", fmt.Sprintf("msg %d", i), models.RoleUser)
	}

	turns, err := store.ListHistory("user2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 1 || turns[0].Text != "keep me" {
		t.Errorf("trimming user1 must not touch user2, got %+v", turns)
	}
}

func TestDatabaseClearHistory(t *testing.T) {
	store := newTestDatabaseStore(t)

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

	var count int64
	store.db.Unscoped().Model(&models.ChatTurn{}).Where("user_id = ?", "user1").Count(&count)
	if count != 0 {
		t.Errorf("expected no rows after clear, got %d", count)
	}
}
