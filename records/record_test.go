package records

import (
	"testing"
	"time"
)

func TestNewGameRecord(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Second)

	record := NewGameRecord("stream:games/table 1", "Connect Four",
		[]string{"alice@example.com", "bob@example.com"}, "alice@example.com", "won", start, end)

	if record.ID.IsZero() {
		t.Fatal("expected a generated object ID")
	}
	if record.Duration != 95 {
		t.Fatalf("duration = %d, want 95", record.Duration)
	}
	if record.Winner != "alice@example.com" || record.Outcome != "won" {
		t.Fatalf("unexpected outcome fields: %+v", record)
	}
	if len(record.Players) != 2 {
		t.Fatalf("players = %v", record.Players)
	}
}
