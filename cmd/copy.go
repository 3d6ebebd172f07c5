package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/culstrup/fireflies-raycast/internal/clipboard"
	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/fireflies"
)

func newCopyCmd() *cobra.Command {
	var (
		limit     int
		paste     bool
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the latest meeting transcript to the clipboard",
		Long: `Fetch your most recent Fireflies meeting transcripts, pick the newest one
and copy it to the clipboard as formatted text. With --paste the transcript is
also pasted into the frontmost application via a simulated Cmd+V.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(debugMode)

			cfg := config.Load()
			client, err := fireflies.NewClient(cfg.FirefliesAPIKey)
			if err != nil {
				return err
			}

			return runCopy(cmd.Context(), client, limit, paste)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", config.DefaultRecentLimit, "How many recent transcripts to consider")
	cmd.Flags().BoolVar(&paste, "paste", false, "Paste the transcript via simulated Cmd+V after copying")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runCopy(ctx context.Context, client *fireflies.Client, limit int, paste bool) error {
	transcripts, err := client.RecentTranscripts(ctx, limit)
	if err != nil {
		return fmt.Errorf("fetching transcripts: %w", err)
	}

	if len(transcripts) == 0 {
		fmt.Println("No transcripts found.")
		return nil
	}

	newest := newestTranscript(transcripts)

	if len(newest.Sentences) == 0 {
		title := newest.Title
		if title == "" {
			title = "Unknown"
		}
		fmt.Printf("The latest meeting '%s' is still processing. Transcript not available yet.\n", title)
		return nil
	}

	formatted := fireflies.FormatTranscript(newest)

	if err := clipboard.Copy(formatted); err != nil {
		return fmt.Errorf("failed to copy transcript to clipboard: %w", err)
	}

	if paste && clipboard.Paste(slog.Default()) {
		fmt.Println("Copied and pasted Fireflies transcript successfully!")
	} else {
		fmt.Println("Copied Fireflies transcript to clipboard. Paste manually with Cmd+V.")
	}
	return nil
}

// newestTranscript returns the transcript with the latest date. Transcripts
// with unparsable dates sort last.
func newestTranscript(transcripts []*fireflies.Transcript) *fireflies.Transcript {
	sorted := make([]*fireflies.Transcript, len(transcripts))
	copy(sorted, transcripts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().After(sorted[j].Date())
	})
	return sorted[0]
}
