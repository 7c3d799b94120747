package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RescueOptions configures a scan. Now selects the bucket that is left out.
type RescueOptions struct {
	BasePath string
	Now      time.Time
	Query    string
	Log      *zap.Logger
}

// Rescue walks BasePath/<year>/<week> and returns the non-hidden entries of
// every week except the current one, filtered by Query when it is set.
// Weeks with nothing left are omitted. The first read error aborts the walk.
func Rescue(opts RescueOptions) ([]Report, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	today := BucketFor(opts.Now).Dir(opts.BasePath)

	years, err := os.ReadDir(opts.BasePath)
	if err != nil {
		return nil, fmt.Errorf("read base directory %s: %w", opts.BasePath, err)
	}

	var reports []Report
	for _, year := range years {
		yearPath := filepath.Join(opts.BasePath, year.Name())
		ok, err := isDir(yearPath, year)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		weeks, err := os.ReadDir(yearPath)
		if err != nil {
			return nil, fmt.Errorf("read year directory %s: %w", yearPath, err)
		}
		for _, week := range weeks {
			weekPath := filepath.Join(yearPath, week.Name())
			ok, err := isDir(weekPath, week)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if weekPath == today {
				log.Debug("skipping current bucket", zap.String("path", weekPath))
				continue
			}

			entries, err := collectEntries(weekPath, opts.Query)
			if err != nil {
				return nil, err
			}
			if len(entries) == 0 {
				continue
			}
			reports = append(reports, Report{
				Year:    year.Name(),
				Week:    week.Name(),
				Path:    weekPath,
				Entries: entries,
			})
		}
	}

	log.Debug("rescue scan finished",
		zap.String("base", opts.BasePath),
		zap.String("query", opts.Query),
		zap.Int("buckets", len(reports)))
	return reports, nil
}

func collectEntries(weekPath, query string) ([]Entry, error) {
	children, err := os.ReadDir(weekPath)
	if err != nil {
		return nil, fmt.Errorf("read week directory %s: %w", weekPath, err)
	}

	var entries []Entry
	for _, child := range children {
		name := child.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := FuzzyMatch(name, query); !ok {
			continue
		}

		path := filepath.Join(weekPath, name)
		info, err := child.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    path,
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// isDir follows symlinks, so a linked year or week directory is still walked.
func isDir(path string, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}
