package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moving-progress/internal/model"
)

const barWidth = 24

var (
	green   = lipgloss.Color("#a6e3a1")
	peach   = lipgloss.Color("#fab387")
	subtext = lipgloss.Color("#a6adc8")
	surface = lipgloss.Color("#45475a")
	blue    = lipgloss.Color("#74c7ec")

	titleStyle = lipgloss.NewStyle().Foreground(blue).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(subtext)
	doneStyle  = lipgloss.NewStyle().Foreground(green)
	warnStyle  = lipgloss.NewStyle().Foreground(peach).Bold(true)
	fillStyle  = lipgloss.NewStyle().Foreground(green)
	emptyStyle = lipgloss.NewStyle().Foreground(surface)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface).
			Padding(0, 1)
)

// bar draws pct (clamped to 0..100) as a fixed width bar.
func bar(pct int) string {
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	filled := pct * barWidth / 100
	return fillStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func progressLine(label string, p model.SectionProgress) string {
	return fmt.Sprintf("%-22s %s %3d%%  %s",
		label,
		bar(p.Percentage),
		p.Percentage,
		mutedStyle.Render(fmt.Sprintf("%d/%d", p.Completed, p.Total)),
	)
}

func taskLine(t model.Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = doneStyle.Render("[x]")
	}
	section := "-"
	if t.SectionID != nil {
		section = fmt.Sprintf("%d", *t.SectionID)
	}
	return fmt.Sprintf("%s %-10s %-6s %-3s %s",
		mark,
		t.ID,
		string(t.Source),
		section,
		t.Title,
	)
}
