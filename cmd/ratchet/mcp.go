package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/internal/logging"
	"github.com/ratchetworks/ratchet/pkg/adapters/mcp"
	"github.com/ratchetworks/ratchet/pkg/adapters/memory"
	"github.com/ratchetworks/ratchet/pkg/binder"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the workflow engine as an MCP Server.
This allows AI agents (like Claude Desktop) to inspect and drive subjects through their workflows as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		subjects, _ := cmd.Flags().GetStringSlice("subject")

		if err := runMCP(file, transport, port, subjects); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().StringSlice("subject", nil, "Subject IDs to seed in the initial state")
}

func runMCP(file, transport string, port int, subjects []string) error {
	// Logs go to stderr so they don't corrupt JSON-RPC on stdout.
	logger := logging.New(slog.LevelInfo)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	def, err := schema.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	factory, err := ratchet.NewFactory(def, ratchet.WithLogger(logger))
	if err != nil {
		return err
	}

	store := memory.NewSubjectStore()
	for _, id := range subjects {
		store.Put(id, memory.NewSubject(def.InitialState()))
	}

	srv := mcp.NewServer(binder.New(factory, store, binder.WithLogger(logger)))

	switch transport {
	case "stdio":
		log.SetOutput(os.Stderr)
		logger.Info("starting MCP server (stdio)", "workflow", def.Name)
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server (SSE)", "workflow", def.Name, "port", port)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
			return err
		}
		logger.Info("MCP server stopped")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
	}
}
