package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriter writes one line per alert to w, plus indented details.
// Colors are used only when w is a terminal and noColor is false.
func NewWriter(w io.Writer, noColor bool) Writer {
	color := !noColor && isTerminal(w)
	return WriterFunc(func(alert *Alert) error {
		line := alert.String()
		if color {
			line = alert.Level.Color() + line + ResetColor()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, d := range alert.Details {
			if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
				return err
			}
		}
		return nil
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
