package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-skeleton/internal/mcp"
)

var mcpNoWatchFlag bool

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for code skeletons",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
read the skeleton of any Java or Python file in the current project.

The MCP server:
- Provides the code_skeleton tool (XML-like skeleton document, optional line range)
- Provides the code_signatures tool (JSON signature tree)
- Watches the project and drops cached documents of changed files
- Communicates via stdio (standard MCP transport)

Example:
  skeleton mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpNoWatchFlag, "no-watch", false, "do not watch the project for changes")
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := mcp.NewServer(a.service, mcp.ServerOptions{
		ProjectRoot: a.root,
		Include:     a.cfg.Paths.Include,
		Ignore:      a.cfg.Paths.Ignore,
		Version:     Version,
		Watch:       a.cfg.Cache.Enabled && !mcpNoWatchFlag,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
