package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	other := errors.New("connection reset")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"translated foreign key", gorm.ErrForeignKeyViolated, ErrReferential},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, ErrReferential},
		{"postgres not null", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502"}), ErrReferential},
		{"sqlite foreign key message", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ErrReferential},
		{"translated duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"sqlite unique message", errors.New("UNIQUE constraint failed: rounds.round_number, rounds.tournament_id"), ErrDuplicate},
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
	}
	for _, tc := range cases {
		got := Classify(tc.err)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%s: expected original error to stay wrapped, got %v", tc.name, got)
		}
	}

	if got := Classify(other); got != other {
		t.Fatalf("expected unknown error unchanged, got %v", got)
	}
	if Classify(nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
	wrapped := Classify(gorm.ErrRecordNotFound)
	if again := Classify(wrapped); again != wrapped {
		t.Fatalf("expected classified error unchanged, got %v", again)
	}
}
