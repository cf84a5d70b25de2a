package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/professores-api/internal/config"
	"github.com/aanand-mishra/professores-api/internal/storage/sqlite"
)

func TestOpenStorage(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "main.db"),
	}}

	s, err := openStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStorage: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*sqlite.SQLite); !ok {
		t.Errorf("got %T, want *sqlite.SQLite", s)
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "oracle", DSN: "x"}}

	if _, err := openStorage(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
