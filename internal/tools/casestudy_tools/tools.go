package casestudy_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/culstrup/fireflies-raycast/internal/casestudy"
	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/instrumentation"
	"github.com/culstrup/fireflies-raycast/internal/server"
	"github.com/culstrup/fireflies-raycast/internal/tools/common"
)

// RegisterCaseStudyTools registers the case study generation tool with the MCP server
func RegisterCaseStudyTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	caseStudyTool := mcp.NewTool("fireflies_case_study",
		mcp.WithDescription("Generate a marketing case study draft from all meetings with a client, found by email domain or participant name"),
		mcp.WithString("domain",
			mcp.Description("Client email domain to search for (e.g. 'acme.com'). One of domain or name is required."),
		),
		mcp.WithString("name",
			mcp.Description("Participant name to search for (e.g. 'Jane Smith'). One of domain or name is required."),
		),
		mcp.WithNumber("days_back",
			mcp.Description("How many days of history to search (default: 180)"),
		),
		mcp.WithBoolean("excerpts",
			mcp.Description("Send key excerpts instead of full transcripts. Faster and cheaper for long histories."),
		),
	)

	s.AddTool(caseStudyTool, common.InstrumentedToolHandlerWithOperation(
		"fireflies_case_study", instrumentation.OperationGenerate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCaseStudy(ctx, request, sc)
		}))

	return nil
}

func handleCaseStudy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := casestudy.Request{}
	if domain, ok := args["domain"].(string); ok {
		req.Domain = domain
	}
	if name, ok := args["name"].(string); ok {
		req.ParticipantName = name
	}
	if req.Domain == "" && req.ParticipantName == "" {
		return mcp.NewToolResultError("one of domain or name is required"), nil
	}
	if daysVal, ok := args["days_back"].(float64); ok && daysVal > 0 {
		req.DaysBack = int(daysVal)
	}
	if excerpts, ok := args["excerpts"].(bool); ok {
		req.Excerpts = excerpts
	}

	generator := sc.CaseStudyGenerator()
	if generator == nil {
		return mcp.NewToolResultError("Gemini API key not configured. Set GOOGLE_AI_STUDIO_KEY and restart the server"), nil
	}

	result, err := generator.Generate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Case study generation failed: %v", err)), nil
	}
	if result == nil {
		subject := req.Domain
		if subject == "" {
			subject = req.ParticipantName
		}
		return mcp.NewToolResultText(fmt.Sprintf("No meetings found for %s", subject)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		model := sc.Config().GeminiModel
		if model == "" {
			model = config.DefaultGeminiModel
		}
		metrics.RecordGeminiGeneration(ctx, model, instrumentation.StatusSuccess, result.Duration)
	}

	return mcp.NewToolResultText(result.CaseStudy), nil
}
