package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchTimeout int

var fetchCmd = &cobra.Command{
	Use:   "fetch <game_id>",
	Short: "Fetch remote data of a game into RACache",
	Long: `Fetches the remote data about an achievement set into the RACache directory.

Other commands run this implicitly when RACache lacks remote data for the game.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVarP(&fetchTimeout, "timeout", "t", 0, "seconds after which fetching remote data is considered failed (default from config)")
	RootCmd.AddCommand(fetchCmd)
}

func parseGameID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("expected game_id to be positive integer, but got %s", s)
	}
	return uint32(id), nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	gameID, err := parseGameID(args[0])
	if err != nil {
		return err
	}
	if fetchTimeout < 0 {
		return fmt.Errorf("expected timeout to be positive integer, but got %d", fetchTimeout)
	}

	a, err := newApp(ctx, fetchTimeout)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	snap, err := a.client.Fetch(ctx, gameID)
	if err != nil {
		return err
	}

	set, err := snap.SelectSet(0)
	if err != nil {
		return err
	}
	a.logger.Info("Fetched remote data",
		zap.Uint32("game_id", gameID),
		zap.String("title", snap.Title),
		zap.Int("achievements", len(set.Achievements)),
		zap.Int("leaderboards", len(set.Leaderboards)),
	)
	return nil
}
