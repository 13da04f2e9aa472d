package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := &fingerprintOptions{}

	cmd := &cobra.Command{
		Use:   "fingerprinter [flags] URL...",
		Short: "Score how likely a site runs Ruby on Rails",
		Long: "fingerprinter fetches each URL once and checks its response headers, <meta> tags, " +
			"script sources and stylesheet links against a rule set. Each URL gets a " +
			"\"matched / total\" score over the categories the rule set configures.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(cmd, opts, args)
		},
	}

	opts.bind(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
