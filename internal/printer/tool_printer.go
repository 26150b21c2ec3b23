package printer

import (
	"fmt"
	"io"

	"github.com/magnetlabs/magnet/internal/cmd/output"
	"github.com/magnetlabs/magnet/internal/runtime"
)

var _ output.Printer[runtime.NamedTool] = (*ToolPrinter)(nil)

// ToolPrinter prints where each runtime tool is provisioned.
type ToolPrinter struct {
	hooks[runtime.NamedTool]
}

func (p *ToolPrinter) Item(w io.Writer, t runtime.NamedTool) error {
	switch {
	case t.System:
		_, _ = fmt.Fprintf(w, "%s: system", t.Name)
		if t.Path != "" {
			_, _ = fmt.Fprintf(w, " (%s)", t.Path)
		}
	case t.Path == "":
		_, _ = fmt.Fprintf(w, "%s: not provisioned", t.Name)
	default:
		_, _ = fmt.Fprintf(w, "%s: %s", t.Name, t.Path)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
