package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/websocket"
)

func TestActivityLogKeepsOnlyNewestEntries(t *testing.T) {
	db := testDB(t)
	logger := NewActivityLogger(db, nil)

	for i := 1; i <= models.MaxActivityEntries+3; i++ {
		logger.Log(fmt.Sprintf("did thing %d", i), "Test Admin")
	}

	entries, err := logger.Recent()
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != models.MaxActivityEntries {
		t.Fatalf("kept %d entries, want %d", len(entries), models.MaxActivityEntries)
	}
	if !strings.Contains(entries[0].Message, "did thing 8") {
		t.Fatalf("newest entry first, got %q", entries[0].Message)
	}
	if !strings.Contains(entries[len(entries)-1].Message, "did thing 4") {
		t.Fatalf("oldest kept entry wrong: %q", entries[len(entries)-1].Message)
	}

	var count int64
	db.Model(&models.ActivityEntry{}).Count(&count)
	if count != int64(models.MaxActivityEntries) {
		t.Fatalf("store holds %d rows, want %d", count, models.MaxActivityEntries)
	}
}

func TestActivityLogPublishesToHub(t *testing.T) {
	db := testDB(t)
	hub := websocket.NewHub()
	logger := NewActivityLogger(db, hub)

	logger.Log("logged in", "Amina Yusuf")

	select {
	case entry := <-hub.Broadcast:
		if entry.Actor != "Amina Yusuf" {
			t.Fatalf("actor = %q", entry.Actor)
		}
		if !strings.Contains(entry.Message, "logged in") {
			t.Fatalf("message = %q", entry.Message)
		}
	default:
		t.Fatal("expected the entry on the broadcast channel")
	}
}
