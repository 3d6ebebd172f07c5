package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/culstrup/fireflies-raycast/internal/chrome"
	"github.com/culstrup/fireflies-raycast/internal/clipboard"
	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/fireflies"
)

func newTabsCmd() *cobra.Command {
	var (
		paste     bool
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Fetch transcripts for all Fireflies tabs open in Chrome",
		Long: `Scan Google Chrome for open fireflies.ai meeting tabs, extract the
transcript IDs from their URLs, fetch all transcripts in parallel and copy the
combined text to the clipboard in tab order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(debugMode)

			cfg := config.Load()
			client, err := fireflies.NewClient(cfg.FirefliesAPIKey)
			if err != nil {
				return err
			}

			return runTabs(cmd.Context(), client, chrome.NewTabs(), cfg.FetchWorkers, paste)
		},
	}

	cmd.Flags().BoolVar(&paste, "paste", false, "Paste the transcripts via simulated Cmd+V after copying")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runTabs(ctx context.Context, client *fireflies.Client, tabs *chrome.Tabs, workers int, paste bool) error {
	start := time.Now()

	fmt.Println("FlyCast: Checking Chrome tabs...")
	urls, err := tabs.FirefliesURLs()
	if err != nil {
		return fmt.Errorf("FlyCast Error: %w", err)
	}
	if len(urls) == 0 {
		fmt.Println("FlyCast: No Fireflies tabs found in Chrome.")
		return nil
	}

	fmt.Println("FlyCast: Extracting transcript IDs...")
	ids := chrome.ExtractTranscriptIDs(urls)
	if len(ids) == 0 {
		fmt.Println("FlyCast: No valid Fireflies transcript IDs found in Chrome tabs.")
		return nil
	}

	fmt.Printf("FlyCast: Found %d Fireflies transcripts in Chrome tabs.\n", len(ids))
	fmt.Printf("FlyCast: Fetching %d transcripts (this may take a moment)...\n", len(ids))

	results, err := client.FetchMany(ctx, ids, workers)
	if err != nil {
		return fmt.Errorf("FlyCast: Failed to fetch any transcripts: %w", err)
	}

	fmt.Println("FlyCast: Formatting transcripts...")
	formatted := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Transcript == nil {
			fmt.Printf("FlyCast: Warning: Could not fetch transcript with ID: %s\n", r.ID)
			continue
		}
		formatted = append(formatted, fireflies.FormatTranscript(r.Transcript))
	}
	if len(formatted) == 0 {
		return fmt.Errorf("FlyCast: Failed to fetch any transcripts")
	}

	fmt.Println("FlyCast: Combining transcripts...")
	finalText := "\n\n" + strings.Join(formatted, "\n\n")

	fmt.Println("FlyCast: Copying to clipboard...")
	if err := clipboard.Copy(finalText); err != nil {
		return fmt.Errorf("FlyCast Error: Failed to copy to clipboard: %w", err)
	}

	pasted := false
	if paste {
		fmt.Println("FlyCast: Attempting to paste...")
		pasted = clipboard.Paste(slog.Default())
	}

	elapsed := time.Since(start).Seconds()
	if pasted {
		fmt.Printf("FlyCast: Copied and pasted %d Fireflies transcripts successfully in %.2f seconds.\n", len(formatted), elapsed)
	} else {
		fmt.Printf("FlyCast: Copied %d Fireflies transcripts to clipboard in %.2f seconds. Paste manually with Cmd+V.\n", len(formatted), elapsed)
	}
	return nil
}
