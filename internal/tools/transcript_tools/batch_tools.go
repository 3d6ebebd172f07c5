package transcript_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/server"
	"github.com/culstrup/fireflies-raycast/internal/tools/batch"
)

func handleBatchGetTranscripts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ids, err := batch.ParseStringOrArray(args["ids"], "ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getFirefliesClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fetched, err := client.FetchMany(ctx, ids, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch transcripts: %v", err)), nil
	}

	results := make([]batch.Result, 0, len(fetched))
	delivered := 0
	for _, fr := range fetched {
		switch {
		case fr.Err != nil:
			results = append(results, batch.NewErrorResult(fr.ID, fr.Err))
		case fr.Transcript == nil:
			results = append(results, batch.NewErrorResult(fr.ID, fmt.Errorf("transcript not found")))
		default:
			results = append(results, batch.NewSuccessResult(fr.ID, fireflies.FormatTranscript(fr.Transcript)))
			delivered++
		}
	}

	if metrics := sc.Metrics(); metrics != nil && delivered > 0 {
		metrics.RecordTranscriptDelivered(ctx, "mcp", delivered)
	}

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
