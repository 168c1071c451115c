package db

import (
	"errors"
	"testing"
)

func TestCountPlaceholders(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"SELECT * FROM users", 0},
		{"SELECT * FROM users WHERE id = ?", 1},
		{"INSERT INTO codes (account_id, code) VALUES (?, ?)", 2},
		{"SELECT * FROM users WHERE username = 'what?'", 0},
		{`SELECT * FROM users WHERE username = "who?" AND id = ?`, 1},
	}
	for _, c := range cases {
		if got := countPlaceholders(c.query); got != c.want {
			t.Errorf("countPlaceholders(%q) = %d, want %d", c.query, got, c.want)
		}
	}
}

func TestBindArgs_CountMismatch(t *testing.T) {
	_, err := bindArgs("SELECT * FROM users WHERE id = ?", nil)
	if !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("expected ErrArgumentCount for too few args, got: %v", err)
	}
	_, err = bindArgs("SELECT * FROM users WHERE id = ?", []Arg{Int(1), Int(2)})
	if !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("expected ErrArgumentCount for too many args, got: %v", err)
	}
}

func TestBindArgs_Conversions(t *testing.T) {
	vals, err := bindArgs("VALUES (?, ?, ?, ?)", []Arg{Int(7), Text("x"), Bool(true), Bool(false)})
	if err != nil {
		t.Fatalf("bindArgs failed: %v", err)
	}
	if vals[0] != int64(7) {
		t.Errorf("expected int bound as int64(7), got %#v", vals[0])
	}
	if vals[1] != "x" {
		t.Errorf("expected string bound verbatim, got %#v", vals[1])
	}
	if vals[2] != int64(1) || vals[3] != int64(0) {
		t.Errorf("expected bools bound as 1/0, got %#v, %#v", vals[2], vals[3])
	}
}

func TestBindArgs_TypeMismatch(t *testing.T) {
	_, err := bindArgs("VALUES (?)", []Arg{{Kind: KindText, Value: 42}})
	if err == nil {
		t.Fatalf("expected error for int value under KindText")
	}
}

func TestBindArgs_UnknownKind(t *testing.T) {
	_, err := bindArgs("VALUES (?)", []Arg{{Kind: Kind(99), Value: "x"}})
	if err == nil {
		t.Fatalf("expected error for unregistered kind")
	}
}
