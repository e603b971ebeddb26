package viz

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Key     lipgloss.Style
	KeyHint lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
	Graph   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Key:     lipgloss.NewStyle().Foreground(t.Title).Bold(true),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted),
		Info:    lipgloss.NewStyle().Foreground(t.Info),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Graph: lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
	}
}

// Help renders key hints as "key action" pairs.
func (s Styles) Help(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			out += "  "
		}
		out += s.Key.Render(pairs[i]) + s.KeyHint.Render(" "+pairs[i+1])
	}
	return out
}
