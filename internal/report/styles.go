package report

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// Styles groups the styles used by the human-readable report.
type Styles struct {
	Title    lipgloss.Style
	Path     lipgloss.Style
	Location lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles returns colored styles, or unstyled ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:    plain,
			Path:     plain,
			Location: plain,
			Success:  plain,
			Warning:  plain,
			Error:    plain,
			Muted:    plain,
		}
	}

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Path:     lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(ColorMuted),
		Success:  lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning:  lipgloss.NewStyle().Foreground(ColorWarning),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
	}
}
