package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vtkview/internal/analysis"
	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/monitoring"
	"github.com/san-kum/vtkview/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	legendWidth   = 14
	chromeLines   = 8
	profileLines  = 10
)

// Model is the Bubble Tea model of the viewer.
type Model struct {
	host          *session.Host
	theme         Theme
	styles        Styles
	width, height int
	showProfile   bool
	profileRow    int
	editing       bool
	editBuf       string
	notice        *session.Message
}

type Options struct {
	Theme   string
	Profile bool
}

func NewModel(host *session.Host, opts Options) Model {
	t := GetTheme(opts.Theme)
	m := Model{
		host:        host,
		theme:       t,
		styles:      NewStyles(t),
		width:       defaultWidth,
		height:      defaultHeight,
		showProfile: opts.Profile,
	}
	m.drain()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// drain keeps the latest queued message as the notice line.
func (m *Model) drain() {
	msgs := m.host.Session().Messages()
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		m.notice = &last
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// handleKey ignores the errors of session calls: every failure is also
// queued as a message, and drain shows it as the notice.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.host.Session()
	nav := s.Nav()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if nav.HasPrev {
			_ = m.host.Handle(session.NavigatePrev)
		}
	case "right", "l":
		if nav.HasNext {
			_ = m.host.Handle(session.NavigateNext)
		}
	case "f":
		if fields := s.Fields(); len(fields) > 0 {
			_, _ = s.SelectField(nextName(fields, s.Field()))
		}
	case "c":
		_, _ = s.SelectColormap(colormap.Next(s.Colormap()))
	case "a":
		_, _ = s.SetAutoRange(!s.AutoRange())
	case "r":
		r := s.ManualRange()
		m.editing = true
		m.editBuf = colormap.FormatTick(r.Min) + " " + colormap.FormatTick(r.Max)
	case "p":
		m.showProfile = !m.showProfile
	case "up", "k":
		if g := s.Grid(); g != nil && m.profileRow < g.NY()-1 {
			m.profileRow++
		}
	case "down", "j":
		if m.profileRow > 0 {
			m.profileRow--
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = NewStyles(m.theme)
	case "ctrl+r":
		_ = m.host.Refresh()
	}

	if g := s.Grid(); g != nil && m.profileRow >= g.NY() {
		m.profileRow = g.NY() - 1
	}
	m.drain()
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		min, max, err := parseRange(m.editBuf)
		m.editBuf = ""
		if err != nil {
			m.notice = &session.Message{Type: session.MessageError, Text: err.Error()}
			return m, nil
		}
		_, _ = m.host.Session().ApplyRange(min, max)
		m.drain()
	case tea.KeyEsc:
		m.editing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		for _, c := range msg.Runes {
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' || c == '+' || c == ' ' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

// parseRange reads "min max".
func parseRange(s string) (min, max float64, err error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("enter range as \"min max\"")
	}
	if min, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid min %q", parts[0])
	}
	if max, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid max %q", parts[1])
	}
	return min, max, nil
}

func nextName(names []string, current string) string {
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (m Model) View() string {
	s := m.host.Session()
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(m.host.Title()) + "\n")

	f := s.Frame()
	if f == nil {
		b.WriteString(m.styles.KeyHint.Render("no data") + "\n")
	} else {
		avail := m.height - chromeLines
		if m.showProfile {
			avail -= profileLines
		}
		if avail < 2 {
			avail = 2
		}
		heat := RenderHeatmap(f, m.width-legendWidth, avail)
		_, lines := cellSize(f, m.width-legendWidth, avail)
		legend := RenderLegend(f.Legend, colormap.Lookup(f.Colormap), lines)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heat, "  ", legend) + "\n\n")

		mode := "manual"
		if f.Auto {
			mode = "auto"
		}
		b.WriteString(m.styles.Label.Render("file") + m.styles.Value.Render(s.StatusText()) + "\n")
		b.WriteString(m.styles.Label.Render("field") + m.styles.Value.Render(f.Field) + "\n")
		b.WriteString(m.styles.Label.Render("colormap") + m.styles.Value.Render(f.Colormap) + "\n")
		b.WriteString(m.styles.Label.Render("range") + m.styles.Value.Render(fmt.Sprintf("[%s, %s] %s",
			colormap.FormatTick(f.Range.Min), colormap.FormatTick(f.Range.Max), mode)) + "\n")

		if m.showProfile {
			b.WriteString(m.profileView())
		}
	}

	if m.editing {
		b.WriteString(m.styles.Label.Render("min max") + m.styles.Value.Render(m.editBuf+"_") + "\n")
	} else if m.notice != nil {
		style := m.styles.Info
		if m.notice.Type == session.MessageError {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.notice.Text) + "\n")
	}

	nav := s.Nav()
	var pairs []string
	if nav.HasPrev {
		pairs = append(pairs, "←", "prev")
	}
	if nav.HasNext {
		pairs = append(pairs, "→", "next")
	}
	pairs = append(pairs, "f", "field", "c", "colormap", "a", "auto", "r", "range", "p", "profile", "t", "theme", "q", "quit")
	b.WriteString(m.styles.Help(pairs...) + "\n")
	return b.String()
}

func (m Model) profileView() string {
	s := m.host.Session()
	g := s.Grid()
	f, ok := g.Scalar(s.Field())
	if !ok {
		return ""
	}
	row, err := analysis.RowProfile(g, f, m.profileRow)
	if err != nil || len(analysis.Finite(row)) < 2 {
		return m.styles.KeyHint.Render(fmt.Sprintf("row %d: not enough finite values", m.profileRow)) + "\n"
	}
	width := m.width - 12
	if width < 10 {
		width = 10
	}
	chart := asciigraph.Plot(row,
		asciigraph.Height(profileLines-4),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s, row j=%d", f.Name, m.profileRow)))
	return m.styles.Graph.Render(chart) + "\n"
}

// Notice returns the message currently shown, if any.
func (m Model) Notice() *session.Message { return m.notice }

// Theme returns the active theme.
func (m Model) Theme() Theme { return m.theme }

// Run starts the viewer on the host's current file.
func Run(host *session.Host, opts Options) error {
	logf := monitoring.Logf
	monitoring.SetLogger(nil)
	defer monitoring.SetLogger(logf)

	_, err := tea.NewProgram(NewModel(host, opts), tea.WithAltScreen()).Run()
	return err
}
