package handlers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Uploaded images live under publicRootDir and are referenced from documents
// by their slash path relative to it (e.g. "uploads/medicines/<id>.png").
const (
	publicRootDir     = "/app/public"
	medicineUploadDir = "uploads/medicines"
)

// safeDeleteUpload removes a stored upload given the relative path persisted
// on a document. Anything outside the uploads tree is refused; a file that
// is already gone is not an error.
func safeDeleteUpload(relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(trimmed, "/")), "/")
	if !strings.HasPrefix(rel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	root := filepath.Clean(publicRootDir)
	target := filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside %s: %s", publicRootDir, relPath)
	}

	err := os.Remove(target)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
