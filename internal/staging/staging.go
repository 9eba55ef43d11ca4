// Package staging holds downloaded export bytes in a scratch file for the
// duration of one extraction.
package staging

import (
	"fmt"
	"os"
	"time"

	"gagyebu/internal/logger"
)

// WithFile writes data to a new scratch file under dir and calls fn with its
// path. The file is truncated and removed when fn returns, whatever the
// outcome; cleanup failures are logged and never replace fn's error.
func WithFile(dir, prefix string, data []byte, fn func(path string) error) error {
	f, err := os.CreateTemp(dir, fmt.Sprintf("%s-%d-*.db", prefix, time.Now().UnixNano()))
	if err != nil {
		return fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	defer release(path)

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close scratch file: %w", err)
	}

	return fn(path)
}

func release(path string) {
	log := logger.Get()
	if err := os.Truncate(path, 0); err != nil && !os.IsNotExist(err) {
		log.Warnw("failed to truncate scratch file", "path", path, "error", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warnw("failed to remove scratch file", "path", path, "error", err)
	}
}
