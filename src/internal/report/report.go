package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bibvals/src/internal/tabulate"
)

// NewPrinter returns a printer that groups digits the way locale does.
func NewPrinter(locale string) (*message.Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return message.NewPrinter(tag), nil
}

// Write prints one "<key>: <count>" line per key in ascending order, a blank
// line, then the total entry count, formatting counts with p.
func Write(w io.Writer, res tabulate.Result, p *message.Printer) error {
	for _, k := range res.Keys() {
		if _, err := p.Fprintf(w, "%s: %d\n", k, res.Counts[k]); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "\nTotal database entries: %d\n", res.TotalEntries)
	return err
}
