package launcher

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// POSIX launches through 'sh -c', prepending to PATH with a ':' separator.
// NewPOSIX should be used to create instances of POSIX.
type POSIX struct {
	stat StatFunc
}

// NewPOSIX returns a POSIX launcher that uses stat to tell tool directories from tool binaries.
func NewPOSIX(stat StatFunc) *POSIX {
	return &POSIX{stat: stat}
}

// Name implements Launcher.
func (p *POSIX) Name() string {
	return "sh"
}

// WrapWithPathPrepend implements Launcher.
// e.g. sh -c 'PATH="/home/u/.uv/bin:$PATH" uvx run'
func (p *POSIX) WrapWithPathPrepend(toolDir string, inner string) (string, []string) {
	return p.Name(), []string{
		"-c",
		fmt.Sprintf(`PATH="%s:$PATH" %s`, escapeDoubleQuoted(toolDir), inner),
	}
}

// CheckValue implements Launcher. Single quoting passes any value through.
func (p *POSIX) CheckValue(string) error {
	return nil
}

// Quote implements Launcher using single-quote shell escaping.
func (p *POSIX) Quote(value string) string {
	return shellescape.Quote(value)
}

// ToolDir implements Launcher.
func (p *POSIX) ToolDir(path string) string {
	return toolDir(p.stat, path, "/")
}

// escapeDoubleQuoted escapes the characters that keep their special meaning inside a double-quoted sh word.
func escapeDoubleQuoted(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"$", `\$`,
		"`", "\\`",
	)
	return r.Replace(s)
}
