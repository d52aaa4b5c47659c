package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/seatchart/pkg/render"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared styles.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status prefixes a line with a colored marker.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) println(msg string) {
	fmt.Println(s.style.Render(s.icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	statusSuccess.println(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusInfo.println(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value in an aligned column.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints a one-line chart summary such as
// "24 seated · 3 rows · 2 unplaced · cached".
func printStats(placed, unplaced, rows int, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d seated", placed)),
		StyleDim.Render(fmt.Sprintf("%d rows", rows)),
	}
	if unplaced > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unplaced", unplaced)))
	}
	if cached {
		parts = append(parts, statusSuccess.style.Render("cached"))
	} else {
		parts = append(parts, statusInfo.style.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// partStyles returns a background style per part using the image palette,
// so terminal and SVG charts color parts alike.
func partStyles(parts []string) map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(parts))
	for part, hex := range render.PartColors(parts) {
		styles[part] = lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(lipgloss.Color("0"))
	}
	return styles
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
