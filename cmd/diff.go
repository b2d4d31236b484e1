package cmd

import (
	"achievement-manager/feature/report"

	"github.com/spf13/cobra"
)

var diffFlags setFlags

var diffCmd = &cobra.Command{
	Use:   "diff <input_file_path>",
	Short: "Show how the definition differs from remote and local data",
	Long: `Shows the difference between the achievement set of a YAML definition and the
set defined by remote data and the local file. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffFlags.register(diffCmd, true, false)
	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := diffFlags.validate(); err != nil {
		return err
	}

	a, err := newApp(ctx, diffFlags.timeout)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	input, err := loadInput(args[0])
	if err != nil {
		return err
	}

	plan, err := a.plan(ctx, input, &diffFlags, "diff", false)
	if plan == nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), report.Options{ContextLines: diffFlags.contextLines})
	if _, err := printer.Print(plan.Report); err != nil {
		return err
	}
	a.sets.LogWarnings(plan)
	return nil
}
