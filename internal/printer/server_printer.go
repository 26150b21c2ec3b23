package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/cmd/output"
)

var _ output.Printer[catalog.FrontendServer] = (*ServerPrinter)(nil)

// ServerPrinter prints catalog projections, one block per server.
type ServerPrinter struct {
	hooks[catalog.FrontendServer]
}

// NewServerPrinter returns a ServerPrinter with a count footer.
func NewServerPrinter() *ServerPrinter {
	p := &ServerPrinter{}
	p.SetFooter(DefaultServersFooter())
	return p
}

func (p *ServerPrinter) Item(w io.Writer, s catalog.FrontendServer) error {
	marker := "-"
	if s.IsInstalled {
		marker = "✓"
	}

	title := s.Title
	if title == "" {
		title = s.ID
	}
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", marker, title, s.ID)

	if s.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", s.Description)
	}

	if len(s.Env) > 0 {
		keys := make([]string, 0, len(s.Env))
		for k := range s.Env {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		_, _ = fmt.Fprintf(w, "  env: %s\n", strings.Join(keys, ", "))
	}

	if arg := s.InputArg; arg.Name != "" {
		_, _ = fmt.Fprintf(w, "  %s (%s, %s)", arg.Name, arg.Class, arg.Multiplicity)
		if len(arg.Value) > 0 {
			_, _ = fmt.Fprintf(w, ": %s", strings.Join(arg.Value, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

// DefaultServersFooter reports the number of servers printed.
func DefaultServersFooter() output.WriteFunc[catalog.FrontendServer] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "\n%d server%s\n", count, plural(count))
	}
}
