package printer

import (
	"fmt"
	"io"

	"github.com/magnetlabs/magnet/internal/cmd/output"
	"github.com/magnetlabs/magnet/internal/probe"
)

var _ output.Printer[probe.Result] = (*ProbePrinter)(nil)

// ProbePrinter prints what a launched server reported about itself.
type ProbePrinter struct {
	hooks[probe.Result]
}

func (p *ProbePrinter) Item(w io.Writer, r probe.Result) error {
	_, _ = fmt.Fprintf(
		w,
		"✓ '%s' responded as %s %s (protocol %s)\n",
		r.ID,
		r.ServerName,
		r.ServerVersion,
		r.ProtocolVersion,
	)

	if len(r.Tools) == 0 {
		_, _ = fmt.Fprintln(w, "  no tools")
		return nil
	}

	_, _ = fmt.Fprintf(w, "  %d tool%s:\n", len(r.Tools), plural(len(r.Tools)))
	for _, t := range r.Tools {
		if t.Description == "" {
			_, _ = fmt.Fprintf(w, "    %s\n", t.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "    %s - %s\n", t.Name, t.Description)
	}

	return nil
}
