// Package probe launches an installed server the way the desktop client would, and asks it for its tools.
package probe

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/magnetlabs/magnet/internal/clientconfig"
)

// DefaultTimeout bounds how long a server has to start, initialize and list its tools.
const DefaultTimeout = 30 * time.Second

// Tool describes a tool offered by a server.
type Tool struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Result describes a server that answered a probe.
type Result struct {
	ID              string `json:"id"              yaml:"id"`
	ServerName      string `json:"serverName"      yaml:"serverName"`
	ServerVersion   string `json:"serverVersion"   yaml:"serverVersion"`
	ProtocolVersion string `json:"protocolVersion" yaml:"protocolVersion"`
	Tools           []Tool `json:"tools"           yaml:"tools"`
}

// Prober launches servers over stdio.
// NewProber should be used to create instances of Prober.
type Prober struct {
	logger     hclog.Logger
	clientName string
	version    string
}

// NewProber creates a Prober identifying itself to servers with the given client name and version.
func NewProber(logger hclog.Logger, clientName string, version string) *Prober {
	return &Prober{
		logger:     logger.Named("probe"),
		clientName: clientName,
		version:    version,
	}
}

// Probe starts the server described by rec, initializes an MCP session and lists its tools.
// The server process is stopped before Probe returns.
func (p *Prober) Probe(ctx context.Context, id string, rec clientconfig.Record, timeout time.Duration) (Result, error) {
	if rec.Command == "" {
		return Result{}, fmt.Errorf("server '%s' has no command", id)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p.logger.Debug("Starting server", "id", id, "command", rec.Command, "args", rec.Args)

	c, err := client.NewStdioMCPClient(rec.Command, Environ(rec.Env), rec.Args...)
	if err != nil {
		return Result{}, fmt.Errorf("error starting server '%s': %w", id, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			p.logger.Debug("Error closing server", "id", id, "error", err)
		}
	}()

	initResult, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: p.clientName, Version: p.version},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("error initializing server '%s': %w", id, err)
	}

	p.logger.Info(
		"Initialized server",
		"id", id,
		"name", initResult.ServerInfo.Name,
		"version", initResult.ServerInfo.Version,
	)

	listResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return Result{}, fmt.Errorf("error listing tools for server '%s': %w", id, err)
	}

	tools := make([]Tool, 0, len(listResult.Tools))
	for _, t := range listResult.Tools {
		tools = append(tools, Tool{Name: t.Name, Description: t.Description})
	}
	slices.SortFunc(tools, func(a, b Tool) int { return strings.Compare(a.Name, b.Name) })

	return Result{
		ID:              id,
		ServerName:      initResult.ServerInfo.Name,
		ServerVersion:   initResult.ServerInfo.Version,
		ProtocolVersion: initResult.ProtocolVersion,
		Tools:           tools,
	}, nil
}

// Environ formats an env map as KEY=VALUE pairs, sorted by key.
func Environ(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
