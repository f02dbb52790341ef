// Package tui - терминальная витрина каталога (bubbletea + lipgloss).
//
// Каждая модель отображает один resource.List в одном из четырёх состояний:
// loading, error, empty, populated.
package tui

import "github.com/charmbracelet/lipgloss"

// Цвета витрины.
var (
	colorPrimary = lipgloss.Color("#2563eb")
	colorMuted   = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#d1d5db")
	colorError   = lipgloss.Color("#dc2626")
	colorSuccess = lipgloss.Color("#16a34a")
	colorBadge   = lipgloss.Color("#f59e0b")
)

// Styles holds the lipgloss styles of the storefront views.
type Styles struct {
	Header     lipgloss.Style
	Card       lipgloss.Style
	Name       lipgloss.Style
	Price      lipgloss.Style
	OldPrice   lipgloss.Style
	Muted      lipgloss.Style
	InStock    lipgloss.Style
	OutOfStock lipgloss.Style
	Discount   lipgloss.Style
	Category   lipgloss.Style
	Filter     lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Spinner    lipgloss.Style
	Footer     lipgloss.Style
	Help       lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(48),
		Name:       lipgloss.NewStyle().Bold(true),
		Price:      lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		OldPrice:   lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		InStock:    lipgloss.NewStyle().Foreground(colorSuccess),
		OutOfStock: lipgloss.NewStyle().Foreground(colorError),
		Discount: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorError).
			Padding(0, 1),
		Category: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111827")).
			Background(colorBadge).
			Padding(0, 1),
		Filter:   lipgloss.NewStyle().Foreground(colorMuted),
		Selected: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true),
		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().Foreground(colorPrimary),
		Footer:  lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Help:    lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// PlainStyles renders without colors or borders. Used in tests and for
// non-terminal output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Card:       plain,
		Name:       plain,
		Price:      plain,
		OldPrice:   plain,
		Muted:      plain,
		InStock:    plain,
		OutOfStock: plain,
		Discount:   plain,
		Category:   plain,
		Filter:     plain,
		Selected:   plain,
		Error:      plain,
		Spinner:    plain,
		Footer:     plain,
		Help:       plain,
	}
}
