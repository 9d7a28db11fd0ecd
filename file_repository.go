package taskpad

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileSlotStore keeps each slot in its own file under a data directory.
// No caching - always reads/writes the file. File locking prevents two
// processes from interleaving a write.
type FileSlotStore struct {
	dir string
}

// NewFileSlotStore creates the data directory if needed
func NewFileSlotStore(dir string) (*FileSlotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileSlotStore{dir: dir}, nil
}

// Path returns the file backing key
func (r *FileSlotStore) Path(key string) string {
	return filepath.Join(r.dir, slotFileName(key))
}

// Get reads a slot. A missing file is reported as absent.
// Lock → Read → Unlock
func (r *FileSlotStore) Get(key string) (string, bool, error) {
	path := r.Path(key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", false, nil
	}

	var value string
	err := r.withFileLock(path, os.O_RDONLY, syscall.LOCK_SH, func(file *os.File) error {
		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("failed to read slot %s: %w", key, err)
		}
		value = string(data)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set replaces a slot's content.
// Lock → Truncate → Write → Unlock
func (r *FileSlotStore) Set(key, value string) error {
	return r.withFileLock(r.Path(key), os.O_RDWR|os.O_CREATE, syscall.LOCK_EX, func(file *os.File) error {
		if err := file.Truncate(0); err != nil {
			return fmt.Errorf("failed to truncate slot %s: %w", key, err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek slot %s: %w", key, err)
		}
		if _, err := file.WriteString(value); err != nil {
			return fmt.Errorf("failed to write slot %s: %w", key, err)
		}
		return file.Sync()
	})
}

// withFileLock executes a function with the file locked
func (r *FileSlotStore) withFileLock(path string, flag, how int, fn func(*os.File) error) error {
	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := syscall.Flock(int(file.Fd()), how); err != nil {
		return fmt.Errorf("failed to lock file: %w", err)
	}
	defer syscall.Flock(int(file.Fd()), syscall.LOCK_UN)

	return fn(file)
}

// slotFileName maps a key to a safe file name
func slotFileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return safe + ".json"
}
