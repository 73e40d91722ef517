package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	MedGreen    = lipgloss.Color("#00C832")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Magenta     = lipgloss.Color("#FF00FF")
	Yellow      = lipgloss.Color("#FFD700")
	Amber       = lipgloss.Color("#FFB000")
	Orange      = lipgloss.Color("#FF8C00")
	Red         = lipgloss.Color("#FF4136")
	MidGray     = lipgloss.Color("#3a3a4e")
	Black       = lipgloss.Color("#0D0208")
	White       = lipgloss.Color("#e0e0e0")

	// Accent drives borders and titles; ApplyTheme swaps it.
	Accent = Green

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	StatusKnowledgeStyle = lipgloss.NewStyle().
				Background(Green).
				Foreground(Black).
				Bold(true).
				Padding(0, 1)

	// Question column
	QuestionStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(DarkGreen)

	// Prediction
	PredictionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(Magenta).
				Foreground(Magenta).
				Bold(true).
				Padding(0, 4).
				Align(lipgloss.Center)

	AssetStyle = lipgloss.NewStyle().
			Foreground(MidGray).
			Italic(true)

	// Confirmation
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)

	// Input
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(0, 1)

	// Outcomes
	SuccessStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Orange).
			Bold(true)

	// Separator
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// Error
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	LabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)
)

// Theme is an accent color plus the banner shades derived from it.
type Theme struct {
	Accent   lipgloss.Color
	Gradient []lipgloss.Color
}

var Themes = map[string]Theme{
	"green": {Accent: Green, Gradient: []lipgloss.Color{BrightGreen, Green, MedGreen, DarkGreen, MedGreen, Green}},
	"amber": {Accent: Amber, Gradient: []lipgloss.Color{Yellow, Amber, Orange, Amber}},
	"cyan":  {Accent: Cyan, Gradient: []lipgloss.Color{White, Cyan, MedGreen, Cyan}},
}

// ApplyTheme recolors the accent-driven styles.
func ApplyTheme(name string) error {
	th, ok := Themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	c := th.Accent
	Accent = c
	gradient = th.Gradient
	InputBoxStyle = InputBoxStyle.BorderForeground(c)
	StatusKnowledgeStyle = StatusKnowledgeStyle.Background(c)
	LabelStyle = LabelStyle.Foreground(c)
	return nil
}

const Banner = `
╔══════════════════════════════════════════════════════════════════════╗
║                        ░░░ ADIVINA EL WARFRAME ░░░                   ║
║──────────────────────────────────────────────────────────────────────║
║       Responde las preguntas y el sistema intentará adivinar         ║
║                         tu Warframe pensado.                         ║
╚══════════════════════════════════════════════════════════════════════╝`

var gradient = Themes["green"].Gradient

// GradientBanner renders the banner with one shade per line.
func GradientBanner() string {
	lines := strings.Split(strings.TrimPrefix(Banner, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		style := lipgloss.NewStyle().Foreground(gradient[i%len(gradient)]).Bold(true)
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
