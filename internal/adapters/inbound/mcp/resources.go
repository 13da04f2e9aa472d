package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const rulesURI = "fingerprinter://rules"

func registerResources(s *server.MCPServer, b *backend) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Rule Set",
			mcplib.WithResourceDescription("Effective fingerprinting rule set and its source"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(b),
	)
}

func handleRulesResource(b *backend) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := b.rules.Describe(b.settings.Rules)
		if err != nil {
			return nil, fmt.Errorf("loading rules: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
