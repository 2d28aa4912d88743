package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// ═══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Ink on parchment
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Primary palette
	Indigo    = lipgloss.Color("#5C6BC0") // Ink blue
	Navy      = lipgloss.Color("#3949AB") // Deep ink
	Gold      = lipgloss.Color("#F4D03F") // Gilt edge
	Amber     = lipgloss.Color("#E59866") // Aged paper
	Parchment = lipgloss.Color("#FAE5D3") // Light parchment
	Sepia     = lipgloss.Color("#A67B5B") // Sepia tone

	// Accents
	Green   = lipgloss.Color("#58D68D") // Fresh ink
	Emerald = lipgloss.Color("#27AE60") // Deep emerald
	Blue    = lipgloss.Color("#5DADE2") // Pale blue
	Cyan    = lipgloss.Color("#76D7C4") // Verdigris
	Copper  = lipgloss.Color("#DC7633") // Copper accent
	Crimson = lipgloss.Color("#E74C3C") // Red wax

	// Neutrals
	White    = lipgloss.Color("#FDFEFE")
	Gray     = lipgloss.Color("#AAB7B8")
	DarkGray = lipgloss.Color("#5D6D7E")
	Charcoal = lipgloss.Color("#2C3E50")
	Black    = lipgloss.Color("#1C2833")
)

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT STYLES
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Title for primary headings
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gold)

	// Subtitle for secondary headings
	Subtitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	// Success messages
	Success = lipgloss.NewStyle().
		Foreground(Green)

	// Error messages
	Error = lipgloss.NewStyle().
		Foreground(Crimson).
		Bold(true)

	// Warning messages
	Warning = lipgloss.NewStyle().
		Foreground(Copper)

	// Info messages
	Info = lipgloss.NewStyle().
		Foreground(Blue)

	// Muted/secondary text
	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	// Dim - even more subtle
	Dim = lipgloss.NewStyle().
		Foreground(DarkGray)

	// Highlight for important items
	Highlight = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	// Code/command style
	Code = lipgloss.NewStyle().
		Foreground(Cyan)
)

// ═══════════════════════════════════════════════════════════════════════════════
// LOGO
// ═══════════════════════════════════════════════════════════════════════════════

// Logo returns the quill logo
func Logo() string {
	if !IsTTY {
		return "\n  QUILL - Conventions for AI Coding Assistants\n"
	}

	lines := []struct {
		text  string
		color lipgloss.Color
	}{
		{"", Black},
		{"        ▄▖", Sepia},
		{"       ▞ ▐▖     ┌─┐ ┬ ┬ ┬ ┬   ┬", Amber},
		{"      ▞   ▜▖    │─┼ │ │ │ │   │", Gold},
		{"     ▞_____▜▖   └─┘ └─┘ ┴ └─┘ └─┘", Indigo},
		{"    ▔▔▔▔▔▔▔▔▔      ▔", Navy},
		{"", Black},
	}

	var result strings.Builder
	for _, line := range lines {
		styled := lipgloss.NewStyle().Foreground(line.color).Render(line.text)
		result.WriteString(styled)
		result.WriteString("\n")
	}

	return result.String()
}

// ═══════════════════════════════════════════════════════════════════════════════
// DECORATIVE ELEMENTS
// ═══════════════════════════════════════════════════════════════════════════════

// Divider returns a horizontal divider
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(DarkGray).
		Render(strings.Repeat("─", width))
}

// SectionHeader creates a decorated section header
func SectionHeader(title string, _ int) string {
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	titleStyled := lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft

	left := lipgloss.NewStyle().Foreground(DarkGray).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(DarkGray).Render(" ├" + strings.Repeat("─", padRight))

	return left + titleStyled + right
}

// TerminalWidth returns the current terminal width, or 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// ═══════════════════════════════════════════════════════════════════════════════
// STATUS LINE COMPONENTS
// ═══════════════════════════════════════════════════════════════════════════════

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Green)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Crimson)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Copper)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Blue)
}

// StepLine renders a numbered bootstrap step heading
func StepLine(n int, message string) string {
	if !IsTTY {
		return fmt.Sprintf("  [%d] %s", n, message)
	}
	num := lipgloss.NewStyle().Foreground(Indigo).Bold(true).Render(fmt.Sprintf("[%d]", n))
	msg := lipgloss.NewStyle().Foreground(White).Render(message)
	return fmt.Sprintf("  %s %s", num, msg)
}

// PageFooter returns a closing decoration for command output
func PageFooter() string {
	if !IsTTY {
		return ""
	}
	return "\n" + lipgloss.NewStyle().Foreground(DarkGray).Render("  ───────────── ❦ ─────────────") + "\n"
}
