package persistence

import (
	"testing"
	"time"

	"github.com/sonikk666/fitness-tracker-module/internal/domain"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := &domain.Cursor{
		CreatedAt: time.Date(2026, time.August, 20, 7, 30, 0, 0, time.UTC),
		ID:        "session-42",
	}

	token := EncodeCursor(cursor)
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	decoded, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Fatalf("expected %v got %v", cursor.CreatedAt, decoded.CreatedAt)
	}
	if decoded.ID != cursor.ID {
		t.Fatalf("expected %s got %s", cursor.ID, decoded.ID)
	}
}

func TestDecodeCursorEmptyToken(t *testing.T) {
	decoded, err := DecodeCursor("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != nil {
		t.Fatal("expected nil cursor for empty token")
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	if _, err := DecodeCursor("not-base64!!!"); err == nil {
		t.Fatal("expected error for invalid encoding")
	}
}
