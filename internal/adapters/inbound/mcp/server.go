package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/config"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/fetcher"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/gitinfo"
	"github.com/fingerprinter/fingerprinter/internal/application"
	"github.com/fingerprinter/fingerprinter/internal/domain"
	"github.com/fingerprinter/fingerprinter/internal/shared"
)

// backend holds what every tool and resource handler needs to build its services.
type backend struct {
	settings domain.Settings
	fetcher  domain.Fetcher
	rules    *application.RulesService
	logger   *slog.Logger
}

// Option configures the MCP server.
type Option func(*backend)

// WithFetcher replaces the HTTP fetcher, for tests.
func WithFetcher(f domain.Fetcher) Option {
	return func(b *backend) { b.fetcher = f }
}

// WithLogger sets the logger passed to the fingerprint service. It must not write to stdout.
func WithLogger(l *slog.Logger) Option {
	return func(b *backend) { b.logger = l }
}

// NewFingerprinterMCPServer creates an MCP server with the fingerprinting tools
// and the rules resource registered. settings supplies the default rule file,
// timeout and concurrency.
func NewFingerprinterMCPServer(settings domain.Settings, opts ...Option) *server.MCPServer {
	b := &backend{
		settings: settings,
		rules:    application.NewRulesService(config.NewRulesLoader(), gitinfo.New()),
		logger:   shared.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fetcher == nil {
		b.fetcher = fetcher.FromSettings(settings)
	}

	s := server.NewMCPServer(
		"fingerprinter",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, b)
	registerResources(s, b)

	return s
}

// rulesPath returns override when set, otherwise the configured rule file.
func (b *backend) rulesPath(override string) string {
	if override != "" {
		return override
	}
	return b.settings.Rules
}
