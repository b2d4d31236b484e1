package cmd

import (
	"achievement-manager/feature/sets"

	"github.com/spf13/cobra"
)

var saveFlags setFlags

var saveCmd = &cobra.Command{
	Use:   "save <input_file_path>",
	Short: "Save the definition into the local file in RACache",
	Long: `Saves the achievement set of a YAML definition into the local file in the
RACache directory.

Local assets that are not part of the definition are preserved. Assets that
became identical to remote data are removed from the local file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveFlags.register(saveCmd, false, true)
	RootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := saveFlags.validate(); err != nil {
		return err
	}

	a, err := newApp(ctx, saveFlags.timeout)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	input, err := loadInput(args[0])
	if err != nil {
		return err
	}

	plan, err := a.plan(ctx, input, &saveFlags, "save", true)
	if plan == nil {
		return err
	}

	if _, err := a.sets.Apply(ctx, plan, sets.ApplyOptions{Confirmed: true}); err != nil {
		return err
	}
	a.sets.LogWarnings(plan)
	return nil
}
