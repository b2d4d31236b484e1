package cmd

import (
	"os"

	"achievement-manager/feature/report"
	"achievement-manager/feature/sets"

	"github.com/spf13/cobra"
)

var (
	diffSaveFlags setFlags
	yesConfirm    bool
)

var diffSaveCmd = &cobra.Command{
	Use:   "diff-save <input_file_path>",
	Short: "Show the diff, then prompt to save it",
	Long: `Shows the output of the diff command first. If there are any changes, prompts
to save them into the local file like the save command does.

Examples:
  # Review and confirm interactively
  achievement-manager diff-save ./sonic.yml

  # Non-interactive (CI, pipes)
  achievement-manager diff-save ./sonic.yml --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDiffSave,
}

func init() {
	diffSaveFlags.register(diffSaveCmd, true, true)
	diffSaveCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Save without prompting")
	RootCmd.AddCommand(diffSaveCmd)
}

func runDiffSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := diffSaveFlags.validate(); err != nil {
		return err
	}

	a, err := newApp(ctx, diffSaveFlags.timeout)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	input, err := loadInput(args[0])
	if err != nil {
		return err
	}

	plan, err := a.plan(ctx, input, &diffSaveFlags, "diff-save", true)
	if plan == nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), report.Options{ContextLines: diffSaveFlags.contextLines})
	shown, err := printer.Print(plan.Report)
	if err != nil {
		return err
	}
	a.sets.LogWarnings(plan)
	if !shown {
		return nil
	}

	confirmed, err := confirm(os.Stdin, cmd.OutOrStdout(), "Proceed to save changes to local file?", yesConfirm)
	if err != nil {
		return err
	}
	if !confirmed {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	_, err = a.sets.Apply(ctx, plan, sets.ApplyOptions{Confirmed: true})
	return err
}
