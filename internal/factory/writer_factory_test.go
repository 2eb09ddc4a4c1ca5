package factory

import (
	"errors"
	"testing"

	"FlowTally/internal/config"
	"FlowTally/internal/model"
)

type stubWriter struct{}

func (stubWriter) Write(*model.Report) error { return nil }

func TestCreate(t *testing.T) {
	Register("stub", func(cfg *config.Config) (model.Writer, error) {
		return stubWriter{}, nil
	})

	cfg := config.Default()
	cfg.Writers.Types = []string{"stub"}

	writers, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(writers) != 1 {
		t.Fatalf("Expected 1 writer, got %d", len(writers))
	}
}

func TestCreate_UnknownType(t *testing.T) {
	cfg := config.Default()
	cfg.Writers.Types = []string{"no-such-writer"}

	if _, err := Create(cfg); err == nil {
		t.Fatal("Expected an error for an unknown writer type")
	}
}

func TestCreate_FactoryError(t *testing.T) {
	wantErr := errors.New("boom")
	Register("failing", func(cfg *config.Config) (model.Writer, error) {
		return nil, wantErr
	})

	cfg := config.Default()
	cfg.Writers.Types = []string{"failing"}

	if _, err := Create(cfg); !errors.Is(err, wantErr) {
		t.Fatalf("Expected wrapped factory error, got %v", err)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected a panic on duplicate registration")
		}
	}()
	Register("dup", func(cfg *config.Config) (model.Writer, error) { return stubWriter{}, nil })
	Register("dup", func(cfg *config.Config) (model.Writer, error) { return stubWriter{}, nil })
}
