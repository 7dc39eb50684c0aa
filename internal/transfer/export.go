package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
)

// Export writes records to dir/MasterAcronym.txt and returns the path. The
// file is written to a temporary name first and renamed into place, so a
// reader never sees a half-written export.
func Export(records []domain.Acronym, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+"-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := Encode(tmp, records); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return path, nil
}
