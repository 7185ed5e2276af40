package payments

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDup(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	if !isDup(dup) {
		t.Fatal("1062 not detected")
	}
	if !isDup(fmt.Errorf("create event: %w", dup)) {
		t.Fatal("wrapped 1062 not detected")
	}
	if isDup(&mysql.MySQLError{Number: 1452}) {
		t.Fatal("foreign key error treated as duplicate")
	}
	if isDup(errors.New("duplicate-ish text")) {
		t.Fatal("plain error treated as duplicate")
	}
	if isDup(nil) {
		t.Fatal("nil treated as duplicate")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 0); got != "ab" {
		t.Errorf("truncate with 0 = %q", got)
	}
}
