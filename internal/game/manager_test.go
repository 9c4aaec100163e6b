package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(testProvider(), nil, zerolog.Nop())

	s, err := m.Create("ana", "game-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.Player() != "ana" || s.GameID() != "game-1" {
		t.Fatalf("session wired wrong: player=%q gameID=%q", s.Player(), s.GameID())
	}

	got, err := m.Get(s.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != s {
		t.Fatalf("Get returned a different session")
	}

	m.Remove(s.ID())
}

func TestManagerRejectsEmptyPlayer(t *testing.T) {
	m := NewManager(testProvider(), nil, zerolog.Nop())
	if _, err := m.Create("", "game-1"); err != ErrNoPlayer {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := NewManager(testProvider(), nil, zerolog.Nop())
	if _, err := m.Get("nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerRemoveEndsSession(t *testing.T) {
	m := NewManager(testProvider(), nil, zerolog.Nop())
	s, err := m.Create("ana", "game-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	m.Remove(s.ID())
	if s.Snapshot().Status != StatusGameOver {
		t.Fatalf("Remove should end the session")
	}
	if _, err := m.Get(s.ID()); err != ErrSessionNotFound {
		t.Fatalf("removed session still retrievable")
	}
}
