package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/san-kum/vtkview/internal/fsutil"
	"github.com/san-kum/vtkview/internal/monitoring"
	"github.com/san-kum/vtkview/internal/sequence"
)

// ErrNoFile is returned by operations that need an open file.
var ErrNoFile = errors.New("no file open")

// Host loads files into a Session and handles sequence navigation.
type Host struct {
	fs       fsutil.FileSystem
	resolver *sequence.Resolver
	session  *Session
	path     string
}

// NewHost returns a host reading through fsys. A nil fsys uses the OS.
func NewHost(fsys fsutil.FileSystem, s *Session) *Host {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Host{
		fs:       fsys,
		resolver: sequence.NewResolver(fsys),
		session:  s,
	}
}

func (h *Host) Session() *Session            { return h.session }
func (h *Host) Resolver() *sequence.Resolver { return h.resolver }

// Path is the file currently displayed.
func (h *Host) Path() string { return h.path }

// Title is the panel title for the current file.
func (h *Host) Title() string {
	if h.path == "" {
		return "VTK Visualizer"
	}
	return "VTK Visualizer - " + filepath.Base(h.path)
}

// StatusText is the file label shown under the plot.
func (h *Host) StatusText() string {
	return h.session.StatusText()
}

// Open loads path into the session. The current path only changes when
// the file was read and parsed.
func (h *Host) Open(path string) error {
	return h.load(path)
}

// Refresh reloads the current file, e.g. after it changed on disk.
func (h *Host) Refresh() error {
	if h.path == "" {
		return ErrNoFile
	}
	return h.load(h.path)
}

// Navigate moves to the neighbouring file in the sequence. A missing
// neighbour is not an error; it only queues an info message.
func (h *Host) Navigate(d sequence.Direction) error {
	if h.path == "" {
		return ErrNoFile
	}
	next, ok := h.resolver.Adjacent(h.path, d)
	if !ok {
		h.session.post(MessageInfo, "No %s file found.", d)
		return nil
	}
	if err := h.load(next); err != nil {
		return err
	}
	h.session.post(MessageInfo, "Navigated to %s", filepath.Base(next))
	return nil
}

// Handle dispatches a navigation request from the view.
func (h *Host) Handle(req Request) error {
	switch req {
	case NavigatePrev, NavigateNext:
		return h.Navigate(req.Direction())
	}
	return fmt.Errorf("unknown request %q", req)
}

func (h *Host) load(path string) error {
	data, err := h.fs.ReadFile(path)
	if err != nil {
		monitoring.Logf("session: read %s: %v", path, err)
		h.session.post(MessageError, "Error loading file: %v", err)
		return err
	}
	nav := h.resolver.Navigation(path)
	if _, err := h.session.Update(NewUpdate(string(data), nav)); err != nil {
		return err
	}
	h.path = path
	return nil
}
