package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled lines to a single stream. Styles degrade to plain text
// when the stream is not a terminal or NoColor is set.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	noColor  bool
}

func NewPrinter(w io.Writer, noColor bool) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		noColor:  noColor,
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if p.noColor {
		return text
	}
	return s.Renderer(p.renderer).Render(text)
}

func (p *Printer) Header(text string) string {
	return p.style(HeaderStyle, text)
}

func (p *Printer) Code(text string) string {
	return p.style(CodeStyle, text)
}

func (p *Printer) Green(text string) string {
	return p.style(SuccessStyle, text)
}

func (p *Printer) Yellow(text string) string {
	return p.style(WarningStyle, text)
}

func (p *Printer) Red(text string) string {
	return p.style(ErrorStyle, text)
}

func (p *Printer) Muted(text string) string {
	return p.style(MutedStyle, text)
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.w, p.Green("✓")+" "+msg)
}

func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintln(p.w, p.Yellow(msg))
}

func (p *Printer) PrintError(msg string) {
	fmt.Fprintln(p.w, p.Red(msg))
}

func (p *Printer) PrintErrorWithHint(msg, hint string) {
	fmt.Fprintln(p.w, p.Red(msg))
	if hint != "" {
		fmt.Fprintln(p.w, p.Muted(hint))
	}
}
