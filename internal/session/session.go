package session

import (
	"errors"
	"fmt"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/monitoring"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/sequence"
	"github.com/san-kum/vtkview/internal/vtk"
)

// Options seeds a new Session.
type Options struct {
	Colormap  string
	AutoRange bool
	Range     colormap.Range
}

// Session is the view state for one panel.
type Session struct {
	grid     *vtk.Grid
	nav      sequence.NavState
	field    string
	colormap string
	auto     bool
	manual   colormap.Range
	loaded   bool
	frame    *render.Frame
	messages []Message
}

func New(opts Options) *Session {
	return &Session{
		colormap: colormap.Resolve(opts.Colormap).Name,
		auto:     opts.AutoRange,
		manual:   opts.Range,
	}
}

func (s *Session) Grid() *vtk.Grid             { return s.grid }
func (s *Session) Frame() *render.Frame        { return s.frame }
func (s *Session) Field() string               { return s.field }
func (s *Session) Colormap() string            { return s.colormap }
func (s *Session) AutoRange() bool             { return s.auto }
func (s *Session) ManualRange() colormap.Range { return s.manual }
func (s *Session) Nav() sequence.NavState      { return s.nav }

// Fields lists the scalar fields of the current grid.
func (s *Session) Fields() []string {
	if s.grid == nil {
		return nil
	}
	return s.grid.Fields.ScalarNames()
}

// Messages returns and clears the queued notices.
func (s *Session) Messages() []Message {
	out := s.messages
	s.messages = nil
	return out
}

func (s *Session) post(t MessageType, format string, args ...interface{}) {
	s.messages = append(s.messages, Message{Type: t, Text: fmt.Sprintf(format, args...)})
}

// StatusText is the file label with its sequence position when the file
// belongs to a sequence of more than one file.
func (s *Session) StatusText() string {
	text := s.nav.CurrentFile
	if info := s.nav.Info; info != nil && info.TotalFiles > 1 {
		text += fmt.Sprintf(" (%d/%d)", info.CurrentIndex, info.TotalFiles)
	}
	return text
}

// Update parses newly loaded content. On a parse failure an error message
// is queued and the previous grid, navigation state and frame are kept.
func (s *Session) Update(msg UpdateMessage) (*render.Frame, error) {
	g, err := vtk.Parse(msg.Text)
	if err != nil {
		s.post(MessageError, "Error parsing VTK file: %v", err)
		return nil, err
	}
	for _, name := range g.ShortFields() {
		monitoring.Logf("session: %s: field %q holds fewer than %d values", msg.CurrentFile, name, g.Points())
	}

	s.grid = g
	s.nav = sequence.NavState{
		CurrentFile: msg.CurrentFile,
		HasNext:     msg.HasNext,
		HasPrev:     msg.HasPrev,
		Info:        msg.SequenceInfo,
	}
	if s.nav.CurrentFile == "" {
		s.nav.CurrentFile = "Unknown"
	}

	first := g.FirstScalar()
	switch {
	case !s.loaded:
		s.field = first
		s.auto = true
		s.loaded = true
	case !g.HasScalar(s.field):
		s.field = first
		s.auto = true
	}
	return s.visualize()
}

// SelectField switches the displayed field. Choosing a different field
// returns to auto range.
func (s *Session) SelectField(name string) (*render.Frame, error) {
	if s.grid == nil {
		return nil, nil
	}
	if name != s.field {
		s.auto = true
		s.field = name
	}
	return s.visualize()
}

// SelectColormap switches the colormap; unknown names select Viridis.
func (s *Session) SelectColormap(name string) (*render.Frame, error) {
	s.colormap = colormap.Resolve(name).Name
	if s.grid == nil {
		return nil, nil
	}
	return s.visualize()
}

// SetAutoRange toggles auto range. Turning it on re-renders; turning it
// off keeps the current frame until a manual range is applied.
func (s *Session) SetAutoRange(on bool) (*render.Frame, error) {
	s.auto = on
	if !on || s.grid == nil {
		return s.frame, nil
	}
	return s.visualize()
}

// ApplyRange switches to manual range [min, max]. An invalid range queues
// an error and falls back to auto range on the same field.
func (s *Session) ApplyRange(min, max float64) (*render.Frame, error) {
	s.manual = colormap.Range{Min: min, Max: max}
	s.auto = false
	if s.grid == nil {
		return nil, nil
	}
	return s.visualize()
}

// Rerender draws the current state again.
func (s *Session) Rerender() (*render.Frame, error) {
	if s.grid == nil {
		return nil, nil
	}
	return s.visualize()
}

func (s *Session) visualize() (*render.Frame, error) {
	var rng *colormap.Range
	if !s.auto {
		r := s.manual
		rng = &r
	}

	f, fellBack, err := render.RenderWithFallback(s.grid, s.field, s.colormap, rng)
	if errors.Is(err, render.ErrFieldNotFound) {
		monitoring.Logf("session: field %q not in grid, using %q", s.field, s.grid.FirstScalar())
		s.field = s.grid.FirstScalar()
		s.auto = true
		f, fellBack, err = render.RenderWithFallback(s.grid, s.field, s.colormap, nil)
	}
	if err != nil {
		s.post(MessageError, "%v", err)
		return nil, err
	}
	if fellBack {
		s.post(MessageError, "%v", &render.RangeError{Range: s.manual})
		s.auto = true
	}
	if s.auto {
		s.manual = f.Range
	}
	s.frame = f
	return f, nil
}
