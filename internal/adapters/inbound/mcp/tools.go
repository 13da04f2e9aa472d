package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fingerprinter/fingerprinter/internal/application"
)

func registerTools(s *server.MCPServer, b *backend) {
	s.AddTool(
		mcplib.NewTool("fingerprint_urls",
			mcplib.WithDescription("Fetch each URL and score how many rule categories (header, meta, script, link) match. Results are returned in input order; a URL that cannot be fetched carries an error instead of a score."),
			mcplib.WithString("urls",
				mcplib.Required(),
				mcplib.Description("Comma-separated URLs; bare hosts are fetched over http"),
			),
			mcplib.WithString("rules", mcplib.Description("Rule file path (defaults to the configured or built-in rules)")),
		),
		handleFingerprintURLs(b),
	)

	s.AddTool(
		mcplib.NewTool("get_rules",
			mcplib.WithDescription("Returns the effective rule set as JSON, with the git revision of the rule file when available"),
			mcplib.WithString("rules", mcplib.Description("Rule file path (defaults to the configured or built-in rules)")),
		),
		handleGetRules(b),
	)
}

func handleFingerprintURLs(b *backend) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("urls")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		urls := splitAndTrim(raw)
		if len(urls) == 0 {
			return errorResult("at least one URL is required"), nil
		}

		override, _ := request.GetArguments()["rules"].(string)
		rules, err := b.rules.Load(b.rulesPath(override))
		if err != nil {
			return errorResult(fmt.Sprintf("loading rules: %v", err)), nil
		}

		svc := application.NewFingerprintService(b.fetcher, rules,
			application.WithConcurrency(b.settings.Concurrency),
			application.WithLogger(b.logger),
		)
		return jsonResult(svc.Run(ctx, urls))
	}
}

func handleGetRules(b *backend) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		override, _ := request.GetArguments()["rules"].(string)
		report, err := b.rules.Describe(b.rulesPath(override))
		if err != nil {
			return errorResult(fmt.Sprintf("loading rules: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
