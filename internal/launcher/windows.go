package launcher

import (
	"fmt"
	"strings"

	"github.com/magnetlabs/magnet/internal/errors"
)

// Windows launches through 'cmd /c', prepending to PATH with a ';' separator.
// NewWindows should be used to create instances of Windows.
type Windows struct {
	stat StatFunc
}

// NewWindows returns a Windows launcher that uses stat to tell tool directories from tool binaries.
func NewWindows(stat StatFunc) *Windows {
	return &Windows{stat: stat}
}

// Name implements Launcher.
func (w *Windows) Name() string {
	return "cmd"
}

// WrapWithPathPrepend implements Launcher.
// e.g. cmd /c set "PATH=C:\Users\u\AppData\Local\uv\bin;%PATH%" && uvx run
func (w *Windows) WrapWithPathPrepend(toolDir string, inner string) (string, []string) {
	return w.Name(), []string{
		"/c",
		fmt.Sprintf(`set "PATH=%s;%%PATH%%" && %s`, strings.ReplaceAll(toolDir, `"`, ""), inner),
	}
}

// CheckValue implements Launcher.
// 'cmd /c' expands '%' references even inside double quotes and ends the command at a line break,
// so values holding either are rejected.
func (w *Windows) CheckValue(value string) error {
	if i := strings.IndexAny(value, "%\r\n"); i >= 0 {
		return fmt.Errorf(
			"%w: value %q contains %q, which cmd can't pass through literally",
			errors.ErrBadRequest,
			value,
			value[i],
		)
	}
	return nil
}

// Quote implements Launcher. Values are always double-quoted, with embedded quotes doubled.
func (w *Windows) Quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// ToolDir implements Launcher. Both '\' and '/' are accepted as separators.
func (w *Windows) ToolDir(path string) string {
	return toolDir(w.stat, path, `\/`)
}
