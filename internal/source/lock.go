package source

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// lockCacheEntry acquires a per-cache-entry lock by exclusively creating
// a sentinel file, retrying briefly if another run holds it. It returns
// an unlock function that removes the sentinel.
func lockCacheEntry(dir string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, err
	}
	lockPath := dir + ".lock"

	deadline := time.Now().Add(30 * time.Second)
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock on %s", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
