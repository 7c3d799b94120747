package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Resolve returns the directory `new` reports for now: the week bucket under
// base, or the named project inside it.
func Resolve(base string, now time.Time, name *Directory) string {
	dir := BucketFor(now).Dir(base)
	if name != nil {
		dir = filepath.Join(dir, name.String())
	}
	return dir
}

// Ensure creates path and any missing parents. An existing directory is not
// an error; created reports whether anything had to be made.
func Ensure(path string) (created bool, err error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", path)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", path, err)
	}
	return true, nil
}

// NewProject resolves and creates today's bucket (or a project inside it)
// and returns its absolute path.
func NewProject(base string, now time.Time, name *Directory, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir, err := NormalizePath(Resolve(base, now, name))
	if err != nil {
		return "", err
	}

	created, err := Ensure(dir)
	if err != nil {
		return "", err
	}
	if created {
		log.Debug("created directory", zap.String("path", dir))
	} else {
		log.Debug("directory already exists", zap.String("path", dir))
	}
	return dir, nil
}
