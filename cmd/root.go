package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the intervals-mcp application
var rootCmd = &cobra.Command{
	Use:   "intervals-mcp",
	Short: "MCP server for the Intervals.icu training calendar",
	Long: `intervals-mcp exposes the Intervals.icu training calendar and sport
settings as MCP (Model Context Protocol) tools for AI assistants.

Requests from agents are normalized before they reach the API: category
names, sport type casing, date formats, and common field aliases are all
corrected automatically. Rejected requests come back with specific
suggestions explaining how to fix them.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "intervals-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
