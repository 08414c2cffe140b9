package util

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

var ErrFileExists = errors.New("file already exists")

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic writes the content to the given path, replacing the file in a single rename.
// Symlinks are followed, an existing file is only replaced if overwrite is set.
func WriteFileAtomic(path string, content []byte, overwrite bool) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	if !overwrite && FileExists(path) {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(content))
}
