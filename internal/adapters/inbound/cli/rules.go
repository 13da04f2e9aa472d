package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/config"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/gitinfo"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/tui"
	"github.com/fingerprinter/fingerprinter/internal/application"
)

func newRulesCmd() *cobra.Command {
	var (
		rulesPath  string
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule set",
		Long:  "Load the rule set the root command would use and print every sub-rule, with the git revision of the rule file when it is tracked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rules") {
				settings.Rules = rulesPath
			}

			report, err := application.NewRulesService(config.NewRulesLoader(), gitinfo.New()).Describe(settings.Rules)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Rule file (YAML or JSON); defaults to the built-in Rails rules")
	cmd.Flags().StringVar(&configPath, "config", "", "Settings file (default ./"+config.DefaultSettingsFile+" if present)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the rule set as JSON")

	return cmd
}
