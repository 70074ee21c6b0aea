package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss style of each block kind.
type Styles struct {
	Heading3  lipgloss.Style
	Heading2  lipgloss.Style
	Bold      lipgloss.Style
	Paragraph lipgloss.Style
}

// DefaultStyles returns the blueprint palette: blue sub-headings, white
// underlined headings, bright bold lines and muted paragraphs.
func DefaultStyles() Styles {
	return Styles{
		Heading3: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA")).
			MarginTop(1),
		Heading2: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#27272A")).
			MarginTop(1),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4F4F5")),
		Paragraph: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA")),
	}
}

// style returns the style for k.
func (s Styles) style(k Kind) lipgloss.Style {
	switch k {
	case Heading3:
		return s.Heading3
	case Heading2:
		return s.Heading2
	case Bold:
		return s.Bold
	default:
		return s.Paragraph
	}
}

// Terminal renders blocks with styles, one block per output line group.
// A positive width wraps text to that many columns.
func Terminal(blocks []Block, s Styles, width int) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if b.Kind == Spacer {
			continue
		}
		st := s.style(b.Kind)
		if width > 0 {
			st = st.Width(width)
		}
		sb.WriteString(st.Render(b.Text))
	}
	return sb.String()
}

// Plain renders blocks as unstyled text. Spacers become empty lines.
func Plain(blocks []Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.Text
	}
	return strings.Join(lines, "\n")
}

// Glamour renders text as full markdown with glamour, bypassing the line
// classifier. style is a glamour standard style name ("auto", "dark",
// "light", "notty", ...). A positive width enables word wrap.
func Glamour(text, style string, width int) (string, error) {
	if style == "" {
		style = "auto"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("cannot create markdown renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}
