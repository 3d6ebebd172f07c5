// Package cmd implements the command-line interface for flycast.
//
// This package provides the following commands:
//   - copy: Copy the latest Fireflies meeting transcript to the clipboard
//   - tabs: Fetch transcripts for all Fireflies tabs open in Google Chrome
//   - casestudy: Generate a marketing case study from a client's meetings
//   - list: List meetings matching a client email domain
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The copy command is the default command when no subcommand is specified.
package cmd
