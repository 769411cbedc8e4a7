package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	mcpAdapter "github.com/aretw0/arbor/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes the sample machines as MCP tools, over stdio by default or SSE with --sse.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := resolveConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		reg, err := cli.BuildRegistry(logger)
		if err != nil {
			fmt.Printf("Error building machines: %v\n", err)
			os.Exit(1)
		}

		srv := mcpAdapter.NewServer(reg)

		port, _ := cmd.Flags().GetInt("sse")
		if port == 0 {
			port = cfg.MCPPort
		}

		if port > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil {
				fmt.Printf("MCP server error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := srv.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	mcpCmd.Flags().Int("sse", 0, "Serve over SSE on the given port instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}
