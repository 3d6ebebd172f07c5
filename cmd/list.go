package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/fireflies"
)

func newListCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "list <domain> [days-back]",
		Short: "List meetings with participants from a client email domain",
		Long: `Search your meeting history for meetings with at least one participant from
the given email domain and list them in chronological order, without
generating anything.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(debugMode)

			cfg := config.Load()
			client, err := fireflies.NewClient(cfg.FirefliesAPIKey)
			if err != nil {
				return err
			}

			filter := fireflies.Filter{
				Domain:     args[0],
				DaysBack:   cfg.DaysBack,
				PageSize:   cfg.PageSize,
				MaxScan:    cfg.MaxScan,
				MaxMatches: cfg.MaxMatches,
			}
			if len(args) > 1 {
				daysBack, err := strconv.Atoi(args[1])
				if err != nil || daysBack <= 0 {
					return fmt.Errorf("days-back must be a positive number, got %q", args[1])
				}
				filter.DaysBack = daysBack
			}

			return runList(cmd.Context(), client, filter)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runList(ctx context.Context, client *fireflies.Client, filter fireflies.Filter) error {
	matches, err := client.Search(ctx, filter, func(message string) {
		fmt.Printf("FlyCast: %s\n", message)
	})
	if err != nil {
		return fmt.Errorf("FlyCast Error: %w", err)
	}

	fmt.Printf("\nTotal meetings found: %d\n", len(matches))
	if len(matches) == 0 {
		return nil
	}

	fmt.Println("\nMeetings in chronological order:")
	for i, t := range matches {
		fmt.Print(formatListEntry(i+1, t, filter.Domain))
	}
	return nil
}

// formatListEntry renders one meeting with its matched domain participants.
func formatListEntry(n int, t *fireflies.Transcript, domain string) string {
	var sb strings.Builder

	title := t.Title
	if title == "" {
		title = "Untitled Meeting"
	}
	date := "unknown date"
	if d := t.Date(); !d.IsZero() {
		date = d.Format("2006-01-02")
	}
	fmt.Fprintf(&sb, "%d. %s - %s\n", n, date, title)
	if t.TranscriptURL != "" {
		fmt.Fprintf(&sb, "   URL: %s\n", t.TranscriptURL)
	}
	if matched := domainParticipants(t, domain); len(matched) > 0 {
		fmt.Fprintf(&sb, "   Participants: %s\n", strings.Join(matched, ", "))
	}
	return sb.String()
}

// domainParticipants returns the participant emails matching the domain.
func domainParticipants(t *fireflies.Transcript, domain string) []string {
	suffix := "@" + strings.ToLower(domain)
	var matched []string
	for _, email := range fireflies.ParticipantEmails(t) {
		if strings.HasSuffix(email, suffix) {
			matched = append(matched, email)
		}
	}
	return matched
}
