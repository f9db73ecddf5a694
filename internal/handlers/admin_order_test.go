package handlers

import (
	"strings"
	"testing"
	"time"
)

func TestNewInvoiceNumberFormat(t *testing.T) {
	at := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

	number, err := newInvoiceNumber(at)
	if err != nil {
		t.Fatalf("newInvoiceNumber returned error: %v", err)
	}

	if !strings.HasPrefix(number, "INV-20250520-") {
		t.Fatalf("expected INV-20250520- prefix, got %s", number)
	}

	suffix := strings.TrimPrefix(number, "INV-20250520-")
	if len(suffix) != 4 {
		t.Fatalf("expected 4-digit suffix, got %q", suffix)
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric suffix, got %q", suffix)
		}
	}
}
