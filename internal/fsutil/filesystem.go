// Package fsutil provides the filesystem view used for file loading and
// sequence discovery.
package fsutil

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileSystem is the read side the viewer needs from a filesystem.
type FileSystem interface {
	// ReadDir lists the entries of a directory.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether a regular file exists at name.
	Exists(name string) bool
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) Exists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// FS serves a FileSystem from an fs.FS such as an embed.FS or a
// fstest.MapFS. Host paths are rooted at the top of the fs.FS: "/data/a.vtk"
// and "data/a.vtk" name the same file.
type FS struct {
	FS fs.FS
}

// FromFS wraps fsys.
func FromFS(fsys fs.FS) FS {
	return FS{FS: fsys}
}

func (f FS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(f.FS, fsPath(name))
}

func (f FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.FS, fsPath(name))
}

func (f FS) Exists(name string) bool {
	info, err := fs.Stat(f.FS, fsPath(name))
	return err == nil && !info.IsDir()
}

// fsPath turns a host path into an unrooted slash path.
func fsPath(name string) string {
	p := strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "/")
	if p == "" {
		return "."
	}
	return p
}
