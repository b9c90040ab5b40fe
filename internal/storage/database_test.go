package storage

import (
	"path/filepath"
	"testing"

	"github.com/conorfennell/flipmatch/internal/domain"
	"github.com/conorfennell/flipmatch/internal/scores"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetSet(t *testing.T) {
	db := openTestDB(t)

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := db.Get("bestScoreEasy")
		if err != nil {
			t.Fatalf("Get() returned an unexpected error: %v", err)
		}
		if ok {
			t.Error("Expected missing key to report ok=false")
		}
	})

	t.Run("set then overwrite", func(t *testing.T) {
		if err := db.Set("bestScoreEasy", "12"); err != nil {
			t.Fatalf("Set() returned an unexpected error: %v", err)
		}
		if err := db.Set("bestScoreEasy", "9"); err != nil {
			t.Fatalf("Set() returned an unexpected error: %v", err)
		}
		v, ok, err := db.Get("bestScoreEasy")
		if err != nil || !ok {
			t.Fatalf("Expected stored value, got ok=%v err=%v", ok, err)
		}
		if v != "9" {
			t.Errorf("Expected '9', but got '%s'", v)
		}
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	tracker := scores.NewTracker(db)
	if _, err := tracker.RecordResult(domain.Hard, 18); err != nil {
		t.Fatalf("RecordResult() returned an unexpected error: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen returned an unexpected error: %v", err)
	}
	defer db.Close()
	tracker = scores.NewTracker(db)

	updated, err := tracker.RecordResult(domain.Hard, 20)
	if err != nil {
		t.Fatalf("RecordResult() returned an unexpected error: %v", err)
	}
	if updated {
		t.Error("Expected 20 moves not to beat the stored 18")
	}
	if got := tracker.Display(domain.Hard); got != "18" {
		t.Errorf("Expected best '18', but got '%s'", got)
	}
}

func TestInMemoryDSN(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	defer db.Close()

	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("Set() returned an unexpected error: %v", err)
	}
	if v, ok, _ := db.Get("k"); !ok || v != "v" {
		t.Errorf("Expected 'v', but got '%s' (ok=%v)", v, ok)
	}
}
