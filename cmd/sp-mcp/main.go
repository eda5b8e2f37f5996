// sp-mcp bridges a running Super Productivity instance to MCP clients.
//
// The Super Productivity plugin dials the bridge over a websocket; MCP
// clients (Claude, agents, editors) talk to the /mcp endpoint over
// HTTP. A companion REST API exposes the same task/project/tag CRUD for
// plain HTTP callers.
//
// Usage:
//
//	sp-mcp serve       # Start the bridge server
//	sp-mcp tasks       # List tasks via a running bridge
//	sp-mcp projects    # List projects via a running bridge
//	sp-mcp tags        # List tags via a running bridge
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	spserver "github.com/rochadelon/super-productivity-mcp/internal/server"
)

func main() {
	// Optional .env next to the binary; missing is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sp-mcp",
		Short:         "Super Productivity MCP bridge",
		Long:          "sp-mcp connects a running Super Productivity instance to MCP clients: the app's plugin dials in over a websocket, and agents reach tasks, projects, tags, and UI actions through MCP tools or a plain REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newTasksCmd(),
		newProjectsCmd(),
		newTagsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sp-mcp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sp-mcp v%s\n", spserver.Version)
		},
	}
}
