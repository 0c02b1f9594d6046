package slot

import (
	"fmt"
	"os"
	"path/filepath"
)

// File stores the payload as a single JSON file on disk — the server-side
// analog of a browser's localStorage key.
type File struct {
	path string
}

// NewFile returns a file slot at path. The parent directory is created on
// first save.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot/file: read %s: %w", f.path, err)
	}
	return data, true, nil
}

// Save writes via a temp file + rename so a crash mid-write never leaves a
// truncated document behind.
func (f *File) Save(payload []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("slot/file: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("slot/file: temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("slot/file: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("slot/file: close: %w", err)
	}

	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("slot/file: rename: %w", err)
	}
	return nil
}
