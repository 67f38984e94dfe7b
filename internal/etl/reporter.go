package etl

import (
	"io"
	"time"

	"github.com/fatih/color"
)

// ColorReporter prints one colored line per job event.
type ColorReporter struct {
	out   io.Writer
	start *color.Color
	ok    *color.Color
	fail  *color.Color
}

func NewColorReporter(out io.Writer) *ColorReporter {
	return &ColorReporter{
		out:   out,
		start: color.New(color.FgCyan),
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
	}
}

func (r *ColorReporter) JobStarted(name string) {
	r.start.Fprintf(r.out, "▶ %s\n", name)
}

func (r *ColorReporter) JobFinished(name string, elapsed time.Duration, err error) {
	if err != nil {
		r.fail.Fprintf(r.out, "✗ %s failed after %s: %v\n", name, elapsed.Round(time.Millisecond), err)
		return
	}
	r.ok.Fprintf(r.out, "✓ %s (%s)\n", name, elapsed.Round(time.Millisecond))
}
