package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/fingerprinter/fingerprinter/internal/adapters/inbound/mcp"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/config"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the fingerprinter MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		rulesPath  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start fingerprinter MCP server (stdio)",
		Long:  "Start the fingerprinter MCP server using stdio transport. This lets AI assistants fingerprint URLs and inspect the active rule set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rules") {
				settings.Rules = rulesPath
			}

			// stdout carries the protocol; logs go to stderr.
			logger := newLogger(cmd.ErrOrStderr(), settings)
			s := mcpadapter.NewFingerprinterMCPServer(settings, mcpadapter.WithLogger(logger))
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Default rule file for tool calls")
	cmd.Flags().StringVar(&configPath, "config", "", "Settings file (default ./"+config.DefaultSettingsFile+" if present)")

	return cmd
}
