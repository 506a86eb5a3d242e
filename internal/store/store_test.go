package store

import (
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestNewTokenFormat(t *testing.T) {
	tok := newToken("S")
	if !strings.HasPrefix(tok, "S_") {
		t.Fatalf("token %q missing prefix", tok)
	}
	if len(tok) != len("S_")+16 {
		t.Fatalf("token %q length = %d", tok, len(tok))
	}
	if strings.Contains(tok, "-") {
		t.Fatalf("token %q contains dashes", tok)
	}
}

func TestNewTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		tok := newToken("E")
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("23505 not detected")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violation misdetected as unique")
	}
	if isUniqueViolation(nil) {
		t.Fatal("nil error misdetected")
	}
}
