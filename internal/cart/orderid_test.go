package cart

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestNewOrderIDFormat(t *testing.T) {
	at := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	id, err := NewOrderID("Arnica", 350, at)
	if err != nil {
		t.Fatalf("NewOrderID returned error: %v", err)
	}

	pattern := regexp.MustCompile(`^ARN350250520[A-Z0-9]{2}$`)
	if !pattern.MatchString(id) {
		t.Fatalf("order id %q does not match expected format", id)
	}
}

func TestNewOrderIDRoundsTotal(t *testing.T) {
	at := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	id, err := NewOrderID("Paracetamol", 275.5, at)
	if err != nil {
		t.Fatalf("NewOrderID returned error: %v", err)
	}
	if !strings.HasPrefix(id, "PAR276") {
		t.Fatalf("expected total rounded to 276 in id, got %q", id)
	}
}

func TestOrderIDPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Arnica", "ARN"},
		{"paracetamol", "PAR"},
		{"", "ORD"},
		{"   ", "ORD"},
		{"Ab", "AB"},
		{"B-50", "BX5"},
	}
	for _, tt := range tests {
		if got := orderIDPrefix(tt.name); got != tt.want {
			t.Fatalf("orderIDPrefix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRandomSuffixUsesCharset(t *testing.T) {
	suffix, err := randomSuffix(8)
	if err != nil {
		t.Fatalf("randomSuffix returned error: %v", err)
	}
	if len(suffix) != 8 {
		t.Fatalf("expected suffix length 8, got %d", len(suffix))
	}
	for _, r := range suffix {
		if !strings.ContainsRune(orderIDSuffixChars, r) {
			t.Fatalf("suffix %q contains unexpected character %q", suffix, r)
		}
	}
}
