package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// Bucket identifies one ISO week. Its directory lives at base/<year>/<week>.
type Bucket struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

func BucketFor(t time.Time) Bucket {
	year, week := t.ISOWeek()
	return Bucket{Year: year, Week: week}
}

func (b Bucket) Dir(base string) string {
	return filepath.Join(base, strconv.Itoa(b.Year), strconv.Itoa(b.Week))
}

func (b Bucket) String() string {
	return fmt.Sprintf("%d/%d", b.Year, b.Week)
}

type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_dir"`
	ModTime time.Time `json:"mod_time"`
}

// Report groups the rescued entries of one week directory. Year and Week
// hold the directory names as found on disk.
type Report struct {
	Year    string  `json:"year"`
	Week    string  `json:"week"`
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}
