package printer

import (
	"fmt"
	"io"

	"github.com/magnetlabs/magnet/internal/cmd/output"
	"github.com/magnetlabs/magnet/internal/servers"
)

var _ output.Printer[servers.Result] = (*ResultPrinter)(nil)

// ResultPrinter prints the outcome of a mutating command.
type ResultPrinter struct {
	hooks[servers.Result]
}

func (p *ResultPrinter) Item(w io.Writer, r servers.Result) error {
	marker := "✓"
	if !r.Success {
		marker = "✗"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", marker, r.Message)
	return nil
}
