package handlers

import "testing"

func TestLowerCamel(t *testing.T) {
	tests := map[string]string{
		"Name":     "name",
		"Email":    "email",
		"Password": "password",
		"":         "",
	}
	for input, want := range tests {
		if got := lowerCamel(input); got != want {
			t.Fatalf("lowerCamel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestHashTokenIsStable(t *testing.T) {
	first := hashToken("some-refresh-token")
	second := hashToken("some-refresh-token")
	if first != second {
		t.Fatal("expected identical hashes for identical input")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first == hashToken("another-token") {
		t.Fatal("expected different hashes for different input")
	}
}

func TestGenerateRefreshString(t *testing.T) {
	token := generateRefreshString()
	if len(token) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(token))
	}
	if token == generateRefreshString() {
		t.Fatal("expected unique tokens per call")
	}
}
