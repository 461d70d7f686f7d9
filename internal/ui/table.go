package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows under headers with the printer's color settings.
func (p *Printer) Table(headers []string, rows [][]string) string {
	border := p.renderer.NewStyle()
	header := p.renderer.NewStyle().Bold(true)
	if !p.noColor {
		border = border.Foreground(Primary)
		header = header.Foreground(Primary)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return p.renderer.NewStyle().Padding(0, 1)
		})

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}
