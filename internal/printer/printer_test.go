package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/probe"
	"github.com/magnetlabs/magnet/internal/runtime"
	"github.com/magnetlabs/magnet/internal/servers"
)

func TestServerPrinter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		server   catalog.FrontendServer
		expected string
	}{
		{
			name: "not installed",
			server: catalog.FrontendServer{
				Server: catalog.Server{ID: "weather", Title: "Weather", Description: "Forecasts"},
				Env:    map[string]string{"B": "", "A": ""},
			},
			expected: "- Weather (weather)\n  Forecasts\n  env: A, B\n",
		},
		{
			name: "installed with input values",
			server: catalog.FrontendServer{
				Server:      catalog.Server{ID: "filesystem"},
				IsInstalled: true,
				InputArg: catalog.InputArg{
					Name:         "directories",
					Class:        catalog.ArgClassDirectoryPath,
					Multiplicity: catalog.MultiplicityMultiple,
					Value:        []string{"/home/u/docs", "/tmp"},
				},
			},
			expected: "✓ filesystem (filesystem)\n  directories (DirectoryPath, Multiple): /home/u/docs, /tmp\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			require.NoError(t, NewServerPrinter().Item(buf, tc.server))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestServerPrinter_Footer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := NewServerPrinter()
	p.Footer(buf, 1)
	p.Footer(buf, 3)
	require.Equal(t, "\n1 server\n\n3 servers\n", buf.String())

	buf.Reset()
	p.SetFooter(nil)
	p.Header(buf, 3)
	p.Footer(buf, 3)
	require.Empty(t, buf.String())
}

func TestResultPrinter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := &ResultPrinter{}
	require.NoError(t, p.Item(buf, servers.Result{Success: true, Message: "Server 'a' installed"}))
	require.NoError(t, p.Item(buf, servers.Result{Success: false, Message: "server not found: 'b'"}))
	require.Equal(t, "✓ Server 'a' installed\n✗ server not found: 'b'\n", buf.String())
}

func TestToolPrinter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := &ToolPrinter{}
	for _, tool := range []runtime.NamedTool{
		{Name: runtime.Node, Tool: runtime.Tool{Path: "/opt/node/bin/node"}},
		{Name: runtime.UV, Tool: runtime.Tool{System: true}},
		{Name: runtime.Node, Tool: runtime.Tool{System: true, Path: "/usr/bin/node"}},
		{Name: runtime.UV},
	} {
		require.NoError(t, p.Item(buf, tool))
	}

	require.Equal(t, "node: /opt/node/bin/node\nuv: system\nnode: system (/usr/bin/node)\nuv: not provisioned\n", buf.String())
}

func TestProbePrinter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := &ProbePrinter{}

	require.NoError(t, p.Item(buf, probe.Result{
		ID:              "weather",
		ServerName:      "weather-server",
		ServerVersion:   "1.0.0",
		ProtocolVersion: "2025-06-18",
		Tools: []probe.Tool{
			{Name: "forecast", Description: "Get a forecast"},
			{Name: "ping"},
		},
	}))
	require.Equal(
		t,
		"✓ 'weather' responded as weather-server 1.0.0 (protocol 2025-06-18)\n"+
			"  2 tools:\n"+
			"    forecast - Get a forecast\n"+
			"    ping\n",
		buf.String(),
	)

	buf.Reset()
	require.NoError(t, p.Item(buf, probe.Result{ID: "x", ServerName: "x", ServerVersion: "0", ProtocolVersion: "p"}))
	require.Contains(t, buf.String(), "  no tools\n")
}
