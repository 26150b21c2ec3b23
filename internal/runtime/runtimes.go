package runtime

import (
	"fmt"
	"strings"
)

// Runtime represents a well-known program a catalog entry can be launched with,
// which may need to be rewritten to use a privately provisioned copy of its underlying tool.
type Runtime string

const (
	// NPX represents the 'npx' Node package runner, the interpreter-invocation program for NodeJS packages.
	NPX Runtime = "npx"

	// UVX represents the 'uvx' UV runner, the package-runner program for Python packages.
	UVX Runtime = "uvx"
)

// ToolName identifies the provisioned tool that provides a Runtime.
type ToolName string

const (
	// Node provides NPX.
	Node ToolName = "node"

	// UV provides UVX.
	UV ToolName = "uv"
)

// Tool describes where a runtime's tool lives.
type Tool struct {
	// Path is the stored location of the tool (binary or directory).
	Path string `json:"path" yaml:"path"`

	// System is true when the tool was found on the operating system's search path,
	// false when a private copy was provisioned.
	System bool `json:"system" yaml:"system"`
}

// NeedsPathPrepend reports whether launching through this tool requires its directory on the search path.
func (t Tool) NeedsPathPrepend() bool {
	return !t.System && strings.TrimSpace(t.Path) != ""
}

// Toolchain is the typed view of the provisioned runtime tools.
type Toolchain struct {
	Node Tool `json:"node" yaml:"node"`
	UV   Tool `json:"uv"   yaml:"uv"`
}

// NamedTool is a Tool labeled with its name, for display.
type NamedTool struct {
	Name ToolName `json:"name" yaml:"name"`
	Tool `yaml:",inline"`
}

// Tools lists every tool in the toolchain, in a stable order.
func (tc Toolchain) Tools() []NamedTool {
	return []NamedTool{
		{Name: Node, Tool: tc.Node},
		{Name: UV, Tool: tc.UV},
	}
}

// DefaultSupportedRuntimes returns the runtimes that trigger runtime substitution, mapped to their tool.
func DefaultSupportedRuntimes() map[Runtime]ToolName {
	return map[Runtime]ToolName{
		NPX: Node,
		UVX: UV,
	}
}

// For returns the tool backing the given program, if the program is a well-known runtime.
func (tc Toolchain) For(program string) (ToolName, Tool, bool) {
	name, ok := DefaultSupportedRuntimes()[Runtime(program)]
	if !ok {
		return "", Tool{}, false
	}
	tool, _ := tc.Tool(name)
	return name, tool, true
}

// Tool returns the tool with the given name.
func (tc Toolchain) Tool(name ToolName) (Tool, error) {
	switch name {
	case Node:
		return tc.Node, nil
	case UV:
		return tc.UV, nil
	default:
		return Tool{}, fmt.Errorf("unknown tool '%s'", name)
	}
}

// ParseToolName converts user input into a ToolName.
func ParseToolName(s string) (ToolName, error) {
	switch ToolName(strings.ToLower(strings.TrimSpace(s))) {
	case Node:
		return Node, nil
	case UV:
		return UV, nil
	default:
		return "", fmt.Errorf("unknown tool '%s', must be one of: %s, %s", s, Node, UV)
	}
}
