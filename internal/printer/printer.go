package printer

import (
	"github.com/fatih/color"
)

type ColorPrinter struct {
	Success   func(format string, a ...interface{}) string
	Error     func(format string, a ...interface{}) string
	Warning   func(format string, a ...interface{}) string
	Info      func(format string, a ...interface{}) string
	Debug     func(format string, a ...interface{}) string
	Highlight func(format string, a ...interface{}) string
	Muted     func(format string, a ...interface{}) string

	attrs   []*color.Color
	enabled bool
}

func NewColorPrinter() *ColorPrinter {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	warning := color.New(color.FgYellow)
	info := color.New(color.FgBlue)
	debug := color.New(color.FgCyan)
	highlight := color.New(color.FgHiBlue, color.Bold)
	muted := color.New(color.FgHiBlack)

	return &ColorPrinter{
		Success:   success.SprintfFunc(),
		Error:     failure.SprintfFunc(),
		Warning:   warning.SprintfFunc(),
		Info:      info.SprintfFunc(),
		Debug:     debug.SprintfFunc(),
		Highlight: highlight.SprintfFunc(),
		Muted:     muted.SprintfFunc(),
		attrs:     []*color.Color{success, failure, warning, info, debug, highlight, muted},
		enabled:   !color.NoColor,
	}
}

// SetEnabled forces colours on or off for this printer only.
func (p *ColorPrinter) SetEnabled(on bool) {
	p.enabled = on
	for _, c := range p.attrs {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *ColorPrinter) Enabled() bool {
	return p.enabled
}
