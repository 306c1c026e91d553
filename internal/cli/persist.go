package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/feb29/compacts"
	"github.com/feb29/compacts/internal/filelock"
	"github.com/natefinch/atomic"
)

// loadMap reads the Map at path, returning a fresh empty Map if the file
// doesn't exist yet (a bitset command against a not-yet-created file
// starts from the empty set rather than erroring).
func loadMap(path string) (*roaring.Map, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config/flags
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return roaring.New(), nil
		}

		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := roaring.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return m, nil
}

// withMapLock opens path under an exclusive lock, applies fn, and — if fn
// returns a non-nil Map — atomically writes the result back. A nil Map
// return means the operation was read-only and nothing is persisted.
func withMapLock(path string, optimizeOnWrite bool, fn func(*roaring.Map) (*roaring.Map, error)) error {
	lock, err := filelock.AcquireDefault(path)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer func() { _ = lock.Close() }()

	m, err := loadMap(path)
	if err != nil {
		return err
	}

	result, err := fn(m)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	if optimizeOnWrite {
		result.Optimize()
	}

	return writeMapAtomic(path, result)
}

func writeMapAtomic(path string, m *roaring.Map) error {
	var buf bytes.Buffer

	if _, err := m.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// fileAge reports the modification age of path, used by the stat command.
func fileAge(path string) (time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return time.Since(info.ModTime()), nil
}
