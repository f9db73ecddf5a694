package handlers

import "testing"

func TestSafeDeleteUploadRefusesOutsideUploads(t *testing.T) {
	for _, relPath := range []string{
		"etc/passwd",
		"/etc/passwd",
		"uploads/../secrets.txt",
		"uploads/medicines/../../../etc/passwd",
	} {
		if err := safeDeleteUpload(relPath); err == nil {
			t.Fatalf("expected %q to be refused", relPath)
		}
	}
}

func TestSafeDeleteUploadEmptyPathIsNoop(t *testing.T) {
	if err := safeDeleteUpload(""); err != nil {
		t.Fatalf("expected nil for empty path, got %v", err)
	}
	if err := safeDeleteUpload("   "); err != nil {
		t.Fatalf("expected nil for blank path, got %v", err)
	}
}

func TestSafeDeleteUploadMissingFileIsNoop(t *testing.T) {
	if err := safeDeleteUpload("uploads/medicines/does-not-exist.png"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
