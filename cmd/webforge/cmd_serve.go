package main

import (
	"context"

	"github.com/spf13/cobra"

	"webforge/internal/logging"
	mcpserver "webforge/internal/mcp"
	"webforge/internal/store"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveFlags struct {
	noStore bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio for agent integration",
	Long: `Starts an MCP server over stdin/stdout. Coding agents connect via their
MCP configuration and call generate_tests, synthesize_edge_cases,
analyze_quality and get_snapshot directly.

The server monitors for parent process death. When the agent host
disconnects, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.noStore, "no-store", false, "Keep snapshots in memory instead of the workspace DB")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var st store.Store
	if serveFlags.noStore {
		st = store.NewMemStore()
	} else {
		st, err = openStore(cfg)
		if err != nil {
			return err
		}
	}
	defer st.Close()

	srv := mcpserver.NewServer(buildClient(cfg), st, version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting webforge MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
