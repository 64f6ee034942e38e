package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func setupDB(t *testing.T) *sqlx.DB {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL is not set; skipping integration tests")
	}
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	files := []string{"../../migrations/0001_init.up.sql"}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read migration %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Logf("exec migration %s: %v", f, err)
		}
	}
	return db
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestEnsureHolding_NoDuplicateRow(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	s := New(db, logger)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, uniqueName("holder"), "x", RoleUser)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	script, err := s.CreateScript(ctx, uniqueName("FND"), "Test Fund", "Equity", "Test AMC")
	if err != nil {
		t.Fatalf("create script failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		h, err := s.EnsureHolding(ctx, tx, user.ID, script.ID, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ensure holding failed: %v", err)
		}
		if !h.Units.IsZero() || !h.TotalValue.IsZero() {
			t.Fatalf("expected zero holding, got units=%s value=%s", h.Units, h.TotalValue)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	var count int
	if err := db.Get(&count, `SELECT count(*) FROM holdings WHERE user_id=$1 AND script_id=$2`, user.ID, script.ID); err != nil {
		t.Fatalf("count holdings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one holding row, got %d", count)
	}
}

func TestInsertNav_DuplicateDateRejected(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	s := New(db, logger)
	ctx := context.Background()

	script, err := s.CreateScript(ctx, uniqueName("NAV"), "Nav Fund", "Debt", "Test AMC")
	if err != nil {
		t.Fatalf("create script failed: %v", err)
	}
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	first, err := s.InsertNav(ctx, script.ID, day, decimal.RequireFromString("102.75"))
	if err != nil {
		t.Fatalf("insert nav failed: %v", err)
	}

	if _, err := s.InsertNav(ctx, script.ID, day, decimal.RequireFromString("999.99")); err != ErrNavExists {
		t.Fatalf("expected ErrNavExists, got %v", err)
	}

	// first published value must be untouched
	got, err := s.NavFor(ctx, script.ID, day)
	if err != nil {
		t.Fatalf("nav lookup failed: %v", err)
	}
	if !got.NavValue.Equal(first.NavValue) {
		t.Fatalf("nav value changed: want %s, got %s", first.NavValue, got.NavValue)
	}
}

func TestNavFor_MissingDate(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	s := New(db, logger)
	ctx := context.Background()

	script, err := s.CreateScript(ctx, uniqueName("EMPTY"), "Empty Fund", "", "")
	if err != nil {
		t.Fatalf("create script failed: %v", err)
	}
	if _, err := s.NavFor(ctx, script.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != ErrNavNotFound {
		t.Fatalf("expected ErrNavNotFound, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	s := New(db, logger)
	ctx := context.Background()

	name := uniqueName("dup")
	if _, err := s.CreateUser(ctx, name, "x", RoleUser); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if _, err := s.CreateUser(ctx, name, "y", RoleUser); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDeleteUser_Missing(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	s := New(db, logger)

	if err := s.DeleteUser(context.Background(), -1); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
