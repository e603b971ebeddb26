package sequence

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/vtkview/internal/fsutil"
	"github.com/san-kum/vtkview/internal/monitoring"
)

// Direction selects a neighbour.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "previous"
}

var suffixPattern = regexp.MustCompile(`(?i)^(.+?)(\d+)\.vtk$`)

// Suffix is the decomposition of a sequence file name.
type Suffix struct {
	Prefix string
	Digits string
	Number uint64
}

// ParseSuffix splits name into prefix and trailing number. The whole name
// must match, so digits not directly before .vtk do not count.
func ParseSuffix(name string) (Suffix, bool) {
	m := suffixPattern.FindStringSubmatch(name)
	if m == nil {
		return Suffix{}, false
	}
	return Suffix{Prefix: m[1], Digits: m[2], Number: parseNumber(m[2])}, true
}

// parseNumber saturates instead of failing on digit runs too long for
// uint64; ordering uses the digit string so it stays exact.
func parseNumber(digits string) uint64 {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return ^uint64(0)
	}
	return n
}

func normalizeDigits(digits string) string {
	d := strings.TrimLeft(digits, "0")
	if d == "" {
		return "0"
	}
	return d
}

// compareDigits orders two digit strings by numeric value.
func compareDigits(a, b string) int {
	a, b = normalizeDigits(a), normalizeDigits(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Entry is one member of a sequence.
type Entry struct {
	Name   string
	Digits string
	Number uint64
	Path   string
}

// Info locates a file in its sequence. CurrentIndex is 1-based and -1
// when the file is not part of a sequence.
type Info struct {
	CurrentIndex int    `json:"currentIndex"`
	TotalFiles   int    `json:"totalFiles"`
	Pattern      string `json:"pattern"`
}

var noSequence = Info{CurrentIndex: -1, TotalFiles: 0, Pattern: ""}

// NavState is what a viewer needs to enable its previous/next controls.
type NavState struct {
	CurrentFile string `json:"currentFile"`
	HasNext     bool   `json:"hasNext"`
	HasPrev     bool   `json:"hasPrev"`
	Info        *Info  `json:"sequenceInfo,omitempty"`
}

// Resolver answers sequence queries against a filesystem.
type Resolver struct {
	fs fsutil.FileSystem
}

// NewResolver returns a Resolver over fsys, or the OS filesystem when
// fsys is nil.
func NewResolver(fsys fsutil.FileSystem) *Resolver {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Resolver{fs: fsys}
}

// List returns the files in dir named <prefix><digits>.vtk, ordered by
// number. An unreadable directory yields an empty list.
func (r *Resolver) List(dir, prefix string) []Entry {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		monitoring.Logf("sequence: read dir %s: %v", dir, err)
		return []Entry{}
	}

	pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) + `(\d+)\.vtk$`)
	files := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		files = append(files, Entry{
			Name:   e.Name(),
			Digits: m[1],
			Number: parseNumber(m[1]),
			Path:   filepath.Join(dir, e.Name()),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if c := compareDigits(files[i].Digits, files[j].Digits); c != 0 {
			return c < 0
		}
		return files[i].Name < files[j].Name
	})
	return files
}

// locate lists the sequence of path and finds path in it. idx is -1 when
// the name has no numeric suffix or the file is not in the listing.
func (r *Resolver) locate(path string) (files []Entry, idx int, sfx Suffix) {
	name := filepath.Base(path)
	sfx, ok := ParseSuffix(name)
	if !ok {
		return nil, -1, sfx
	}

	files = r.List(filepath.Dir(path), sfx.Prefix)
	idx = -1
	for i, f := range files {
		if compareDigits(f.Digits, sfx.Digits) != 0 {
			continue
		}
		if f.Name == name {
			return files, i, sfx
		}
		if idx == -1 {
			idx = i
		}
	}
	return files, idx, sfx
}

// FileInfo reports whether path has neighbours on either side.
func (r *Resolver) FileInfo(path string) NavState {
	state := NavState{CurrentFile: filepath.Base(path)}
	files, idx, _ := r.locate(path)
	if idx == -1 {
		return state
	}
	state.HasPrev = idx > 0
	state.HasNext = idx < len(files)-1
	return state
}

// SequenceInfo reports the position of path in its sequence.
func (r *Resolver) SequenceInfo(path string) Info {
	files, idx, sfx := r.locate(path)
	if idx == -1 {
		return noSequence
	}
	return Info{
		CurrentIndex: idx + 1,
		TotalFiles:   len(files),
		Pattern:      sfx.Prefix + "*",
	}
}

// Navigation combines FileInfo and SequenceInfo from a single listing.
func (r *Resolver) Navigation(path string) NavState {
	state := NavState{CurrentFile: filepath.Base(path)}
	files, idx, sfx := r.locate(path)
	if idx == -1 {
		info := noSequence
		state.Info = &info
		return state
	}
	state.HasPrev = idx > 0
	state.HasNext = idx < len(files)-1
	state.Info = &Info{CurrentIndex: idx + 1, TotalFiles: len(files), Pattern: sfx.Prefix + "*"}
	return state
}

// Adjacent returns the neighbour of path in direction d. The neighbour is
// checked for existence again just before it is returned.
func (r *Resolver) Adjacent(path string, d Direction) (string, bool) {
	files, idx, _ := r.locate(path)
	if idx == -1 {
		return "", false
	}
	target := idx + int(d)
	if target < 0 || target >= len(files) {
		return "", false
	}
	p := files[target].Path
	if !r.fs.Exists(p) {
		monitoring.Logf("sequence: %s vanished before it could be opened", p)
		return "", false
	}
	return p, true
}

// All returns the full ordered sequence containing path, or nil when path
// has no numeric suffix.
func (r *Resolver) All(path string) []Entry {
	sfx, ok := ParseSuffix(filepath.Base(path))
	if !ok {
		return nil
	}
	return r.List(filepath.Dir(path), sfx.Prefix)
}
