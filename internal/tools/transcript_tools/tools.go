package transcript_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/instrumentation"
	"github.com/culstrup/fireflies-raycast/internal/server"
	"github.com/culstrup/fireflies-raycast/internal/tools/common"
)

// DefaultListLimit is the number of meetings returned by
// fireflies_list_recent when no limit is given.
const DefaultListLimit = 10

// MaxListLimit caps the limit argument of fireflies_list_recent.
const MaxListLimit = 50

// getFirefliesClient retrieves the shared Fireflies client from the server context
func getFirefliesClient(sc *server.ServerContext) (*fireflies.Client, error) {
	client := sc.FirefliesClient()
	if client == nil {
		return nil, fmt.Errorf("Fireflies client not configured. Set FIREFLIES_API_KEY and restart the server")
	}
	return client, nil
}

// RegisterTranscriptTools registers all transcript-related tools with the MCP server
func RegisterTranscriptTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List recent meetings
	listRecentTool := mcp.NewTool("fireflies_list_recent",
		mcp.WithDescription("List the most recent Fireflies meeting transcripts with their titles, dates and IDs"),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of meetings to return (default: %d, max: %d)", DefaultListLimit, MaxListLimit)),
		),
	)

	s.AddTool(listRecentTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_list_recent", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListRecent(ctx, request, sc)
		}))

	// Get a single transcript
	getTranscriptTool := mcp.NewTool("fireflies_get_transcript",
		mcp.WithDescription("Fetch a Fireflies meeting transcript by ID and return it as formatted text"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The Fireflies transcript ID"),
		),
	)

	s.AddTool(getTranscriptTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_get_transcript", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTranscript(ctx, request, sc)
		}))

	// Batch fetch transcripts
	batchGetTool := mcp.NewTool("fireflies_batch_get_transcripts",
		mcp.WithDescription("Fetch one or more Fireflies transcripts in parallel and return a JSON batch result"),
		mcp.WithString("ids",
			mcp.Required(),
			mcp.Description("Transcript ID (string) or array of transcript IDs to fetch"),
		),
	)

	s.AddTool(batchGetTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_batch_get_transcripts", instrumentation.OperationBatchGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBatchGetTranscripts(ctx, request, sc)
		}))

	// Register search tools
	if err := RegisterSearchTools(s, sc); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}

	return nil
}

func handleListRecent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	limit := DefaultListLimit
	if limitVal, ok := args["limit"].(float64); ok && limitVal > 0 {
		limit = int(limitVal)
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	client, err := getFirefliesClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	transcripts, err := client.RecentTranscripts(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list recent meetings: %v", err)), nil
	}

	if len(transcripts) == 0 {
		return mcp.NewToolResultText("No recent meetings found"), nil
	}

	return mcp.NewToolResultText(formatMeetingList(transcripts)), nil
}

func handleGetTranscript(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getFirefliesClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	transcript, err := client.TranscriptByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch transcript: %v", err)), nil
	}
	if transcript == nil {
		return mcp.NewToolResultError(fmt.Sprintf("Transcript %s not found", id)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordTranscriptDelivered(ctx, "mcp", 1)
	}

	return mcp.NewToolResultText(fireflies.FormatTranscript(transcript)), nil
}

// formatMeetingList renders transcripts as a numbered list with title,
// date, ID and URL per entry.
func formatMeetingList(transcripts []*fireflies.Transcript) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d meeting(s):\n\n", len(transcripts))

	for i, t := range transcripts {
		title := t.Title
		if title == "" {
			title = "Untitled Meeting"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		if date := t.Date(); !date.IsZero() {
			fmt.Fprintf(&sb, "   Date: %s\n", date.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&sb, "   ID: %s\n", t.ID)
		if t.TranscriptURL != "" {
			fmt.Fprintf(&sb, "   URL: %s\n", t.TranscriptURL)
		}
	}

	return sb.String()
}
