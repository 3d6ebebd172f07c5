package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// initLogging configures the default logger. User-facing progress goes to
// stdout via fmt; logs go to stderr and stay quiet unless --debug is set.
func initLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// rootCmd represents the base command for the flycast application
var rootCmd = &cobra.Command{
	Use:   "flycast",
	Short: "Fetches Fireflies.ai meeting transcripts and drafts case studies",
	Long: `flycast is a personal automation tool for Fireflies.ai meeting transcripts.

It fetches transcripts through the Fireflies GraphQL API, filters meetings by
client email domain or participant name, and can draft marketing case studies
with Gemini. Output lands on the clipboard, in a file, or on stdout.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
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
	rootCmd.SetVersionTemplate(`{{printf "flycast version %s\n" .Version}}`)

	// If no subcommand is provided, run the copy command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "copy")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newTabsCmd())
	rootCmd.AddCommand(newCaseStudyCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
