package transcript_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/instrumentation"
	"github.com/culstrup/fireflies-raycast/internal/server"
	"github.com/culstrup/fireflies-raycast/internal/tools/common"
)

// RegisterSearchTools registers the meeting search tools with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Search by participant email domain
	searchDomainTool := mcp.NewTool("fireflies_search_domain",
		mcp.WithDescription("Find meetings with at least one participant from an email domain (e.g. all meetings with a client organization)"),
		mcp.WithString("domain",
			mcp.Required(),
			mcp.Description("Email domain to match, without the @ (e.g. 'acme.com')"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("How many days of history to search (default: 180)"),
		),
		mcp.WithNumber("max_matches",
			mcp.Description("Stop after this many matching meetings (default: 20)"),
		),
	)

	s.AddTool(searchDomainTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_search_domain", instrumentation.OperationSearchPage, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchDomain(ctx, request, sc)
		}))

	// Search by speaker name
	searchSpeakerTool := mcp.NewTool("fireflies_search_speaker",
		mcp.WithDescription("Find meetings where a named person spoke"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Participant name to match (case-insensitive substring, e.g. 'Jane Smith')"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("How many days of history to search (default: 180)"),
		),
	)

	s.AddTool(searchSpeakerTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_search_speaker", instrumentation.OperationSearchPage, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchSpeaker(ctx, request, sc)
		}))

	return nil
}

func handleSearchDomain(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	domain, ok := args["domain"].(string)
	if !ok || domain == "" {
		return mcp.NewToolResultError("domain is required"), nil
	}

	filter := fireflies.Filter{Domain: domain}
	if daysVal, ok := args["days_back"].(float64); ok && daysVal > 0 {
		filter.DaysBack = int(daysVal)
	}
	if maxVal, ok := args["max_matches"].(float64); ok && maxVal > 0 {
		filter.MaxMatches = int(maxVal)
	}

	return runSearch(ctx, sc, filter, fmt.Sprintf("No meetings found with participants from %s", domain))
}

func handleSearchSpeaker(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	filter := fireflies.Filter{SpeakerName: name}
	if daysVal, ok := args["days_back"].(float64); ok && daysVal > 0 {
		filter.DaysBack = int(daysVal)
	}

	return runSearch(ctx, sc, filter, fmt.Sprintf("No meetings found where %s spoke", name))
}

func runSearch(ctx context.Context, sc *server.ServerContext, filter fireflies.Filter, emptyMessage string) (*mcp.CallToolResult, error) {
	client, err := getFirefliesClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches, err := client.Search(ctx, filter, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(emptyMessage), nil
	}

	return mcp.NewToolResultText(formatMeetingList(matches)), nil
}
