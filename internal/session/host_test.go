package session

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/vtkview/internal/fsutil"
	"github.com/san-kum/vtkview/internal/sequence"
)

// unreadableFS lists every file but refuses to read the ones in deny.
type unreadableFS struct {
	fsutil.FS
	deny map[string]bool
}

func (u *unreadableFS) ReadFile(name string) ([]byte, error) {
	if u.deny[filepath.Clean(name)] {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrPermission}
	}
	return u.FS.ReadFile(name)
}

func file(text string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(text)}
}

func karmanFS() fstest.MapFS {
	return fstest.MapFS{
		"data/karman_001.vtk": file(vtkText(pressure, temp)),
		"data/karman_002.vtk": file(vtkText(pressure, temp)),
		"data/karman_003.vtk": file(vtkText(pressure)),
		"data/notes.txt":      file("x"),
	}
}

func TestHost_Open(t *testing.T) {
	h := NewHost(fsutil.FromFS(karmanFS()), New(Options{}))
	assert.Equal(t, "VTK Visualizer", h.Title())

	require.NoError(t, h.Open("/data/karman_002.vtk"))
	assert.Equal(t, "/data/karman_002.vtk", h.Path())
	assert.Equal(t, "VTK Visualizer - karman_002.vtk", h.Title())
	assert.Equal(t, "karman_002.vtk (2/3)", h.StatusText())

	nav := h.Session().Nav()
	assert.True(t, nav.HasPrev)
	assert.True(t, nav.HasNext)
	assert.Equal(t, &sequence.Info{CurrentIndex: 2, TotalFiles: 3, Pattern: "karman_*"}, nav.Info)
	assert.Empty(t, h.Session().Messages())
}

func TestHost_Navigate(t *testing.T) {
	h := NewHost(fsutil.FromFS(karmanFS()), New(Options{}))
	require.NoError(t, h.Open("/data/karman_001.vtk"))

	require.NoError(t, h.Handle(NavigatePrev))
	assert.Equal(t, "/data/karman_001.vtk", h.Path())
	assert.Equal(t, []Message{{Type: MessageInfo, Text: "No previous file found."}}, h.Session().Messages())

	require.NoError(t, h.Handle(NavigateNext))
	assert.Equal(t, "/data/karman_002.vtk", h.Path())
	assert.Equal(t, []Message{{Type: MessageInfo, Text: "Navigated to karman_002.vtk"}}, h.Session().Messages())

	require.NoError(t, h.Navigate(sequence.Next))
	assert.Equal(t, "/data/karman_003.vtk", h.Path())
	assert.Equal(t, "karman_003.vtk (3/3)", h.StatusText())
	assert.False(t, h.Session().Nav().HasNext)

	require.NoError(t, h.Navigate(sequence.Next))
	assert.Equal(t, "/data/karman_003.vtk", h.Path())
	assert.Equal(t, []Message{
		{Type: MessageInfo, Text: "Navigated to karman_003.vtk"},
		{Type: MessageInfo, Text: "No next file found."},
	}, h.Session().Messages())
}

func TestHost_NavigateKeepsFieldSelection(t *testing.T) {
	h := NewHost(fsutil.FromFS(karmanFS()), New(Options{}))
	require.NoError(t, h.Open("/data/karman_001.vtk"))
	_, err := h.Session().SelectField("temp")
	require.NoError(t, err)

	require.NoError(t, h.Navigate(sequence.Next))
	assert.Equal(t, "temp", h.Session().Field())

	// karman_003 has no temp field.
	require.NoError(t, h.Navigate(sequence.Next))
	assert.Equal(t, "pressure", h.Session().Field())
	assert.True(t, h.Session().AutoRange())
}

func TestHost_LoadFailureKeepsCurrentFile(t *testing.T) {
	mem := karmanFS()
	u := &unreadableFS{FS: fsutil.FromFS(mem), deny: map[string]bool{"/data/karman_002.vtk": true}}
	h := NewHost(u, New(Options{}))
	require.NoError(t, h.Open("/data/karman_001.vtk"))
	before := h.Session().Frame()

	err := h.Navigate(sequence.Next)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, "/data/karman_001.vtk", h.Path())
	assert.Same(t, before, h.Session().Frame())

	msgs := h.Session().Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MessageError, msgs[0].Type)
	assert.Contains(t, msgs[0].Text, "Error loading file: ")
}

func TestHost_ParseFailureKeepsCurrentFile(t *testing.T) {
	mem := karmanFS()
	mem["data/karman_002.vtk"] = file("not a vtk file")
	h := NewHost(fsutil.FromFS(mem), New(Options{}))
	require.NoError(t, h.Open("/data/karman_001.vtk"))

	require.Error(t, h.Navigate(sequence.Next))
	assert.Equal(t, "/data/karman_001.vtk", h.Path())
	assert.Equal(t, "karman_001.vtk (1/3)", h.StatusText())

	msgs := h.Session().Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Error parsing VTK file: ")
}

func TestHost_SingleFile(t *testing.T) {
	mem := fstest.MapFS{"data/cavity.vtk": file(vtkText(pressure))}
	h := NewHost(fsutil.FromFS(mem), New(Options{}))

	require.NoError(t, h.Open("/data/cavity.vtk"))
	assert.Equal(t, "cavity.vtk", h.StatusText())
	require.NoError(t, h.Navigate(sequence.Next))
	assert.Equal(t, []Message{{Type: MessageInfo, Text: "No next file found."}}, h.Session().Messages())
}

func TestHost_NoFileOpen(t *testing.T) {
	h := NewHost(fsutil.FromFS(fstest.MapFS{}), New(Options{}))
	assert.ErrorIs(t, h.Navigate(sequence.Next), ErrNoFile)
	assert.ErrorIs(t, h.Refresh(), ErrNoFile)
	assert.Error(t, h.Handle(Request("zoom")))
}

func TestHost_Refresh(t *testing.T) {
	mem := karmanFS()
	h := NewHost(fsutil.FromFS(mem), New(Options{}))
	require.NoError(t, h.Open("/data/karman_001.vtk"))
	require.Equal(t, "pressure", h.Session().Field())

	mem["data/karman_001.vtk"] = file(vtkText(temp))
	require.NoError(t, h.Refresh())
	assert.Equal(t, "temp", h.Session().Field())
}
