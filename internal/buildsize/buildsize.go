// Package buildsize measures a build output directory and compares it with
// a size budget.
package buildsize

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultLimit is the budget used when none is configured.
const DefaultLimit int64 = 50 * 1024

// ErrNotFound is returned by Check when the directory does not exist.
var ErrNotFound = errors.New("build directory not found")

var units = []string{"Bytes", "KB", "MB", "GB"}

// Report is the outcome of a size check.
type Report struct {
	Dir   string
	Size  int64
	Limit int64
	Over  bool
}

// String renders the report the way the sizecheck command prints it.
func (r Report) String() string {
	return "Build size: " + FormatBytes(r.Size)
}

// DirSize returns the total size of every regular file below root.
func DirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measuring %s: %w", root, err)
	}
	return total, nil
}

// FormatBytes renders n in base-1024 units with at most two decimals,
// trailing zeros dropped: 51200 is "50 KB", 1536 is "1.5 KB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

// Check measures dir and compares it with limit. A limit of zero or less
// selects DefaultLimit. A build that reaches the limit is over budget, so
// exactly 50 KB fails the default check.
func Check(dir string, limit int64) (Report, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	r := Report{Dir: dir, Limit: limit}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return r, err
	}
	if !info.IsDir() {
		return r, fmt.Errorf("%s: not a directory", dir)
	}
	size, err := DirSize(dir)
	if err != nil {
		return r, err
	}
	r.Size = size
	r.Over = size >= limit
	return r, nil
}
