package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"achievement-manager/core/asset"
	"achievement-manager/feature/definition"
	"achievement-manager/feature/remote"
	"achievement-manager/feature/sets"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
)

// loadInput reads the YAML definition at path.
func loadInput(path string) (*asset.Set, error) {
	return definition.LoadSet(afero.NewOsFs(), path)
}

// plan runs sets.Plan and logs the hints for the failures users can fix.
// It returns a nil plan and no error when the input is empty.
func (a *app) plan(ctx context.Context, input *asset.Set, f *setFlags, command string, strict bool) (*sets.Plan, error) {
	opts, err := f.planOptions(strict)
	if err != nil {
		return nil, err
	}

	plan, err := a.sets.Plan(ctx, input, opts)
	switch {
	case errors.Is(err, sets.ErrEmptySet):
		a.logger.Warn(fmt.Sprintf("set doesn't define any achievements or leaderboards, %s aborted", command))
		return nil, nil
	case errors.Is(err, sets.ErrLocalFileBroken):
		a.logger.Warn("local file got issues")
		a.logger.Warn("will not update local file to prevent loss of data")
		a.logger.Warn("you can force overwrite local file by specifying --force-rewrite parameter")
	case errors.Is(err, sets.ErrRemote):
		a.logger.Error(fmt.Sprintf("remote data got issues, cannot proceed with the %s", command))
		a.logger.Warn(remote.RefetchHint)
	}
	return plan, err
}

// confirm asks a yes/no question on in. Without a terminal it only proceeds
// when assumeYes is set.
func confirm(in *os.File, out io.Writer, question string, assumeYes bool) (bool, error) {
	if assumeYes {
		fmt.Fprintln(out, question, "yes (--yes)")
		return true, nil
	}
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return false, errors.New("cannot prompt for confirmation without a terminal, pass --yes to proceed")
	}
	return ask(in, out, question)
}

func ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
