package cmd

import (
	"fmt"

	"achievement-manager/core/reconcile"
	"achievement-manager/feature/report"
	"achievement-manager/feature/sets"

	"github.com/spf13/cobra"
)

// setFlags are shared by diff, save and diff-save.
type setFlags struct {
	filters           []string
	includeUnofficial bool
	refetch           bool
	timeout           int
	contextLines      int
	forceRewrite      bool
}

func (f *setFlags) register(cmd *cobra.Command, withContext, withRewrite bool) {
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil,
		fmt.Sprintf("only output assets that match the filter (%v); id takes a comma separated list, the rest a regular expression", reconcile.FilterTypes))
	cmd.Flags().BoolVar(&f.includeUnofficial, "include-unofficial", false, "do not ignore unofficial achievements on the server")
	cmd.Flags().BoolVarP(&f.refetch, "refetch", "r", false, "force refetching of remote data")
	cmd.Flags().IntVarP(&f.timeout, "timeout", "t", 0, "seconds after which fetching remote data is considered failed (default from config)")
	if withContext {
		cmd.Flags().IntVarP(&f.contextLines, "context-lines", "c", 0, fmt.Sprintf("how many conditions to show around changed ones, %d max", report.MaxContextLines))
	}
	if withRewrite {
		cmd.Flags().BoolVar(&f.forceRewrite, "force-rewrite", false, "completely overwrite the local file instead of updating matching assets, THIS MAY RESULT IN LOSS OF LOCAL DATA!")
	}
}

func (f *setFlags) validate() error {
	if f.timeout < 0 {
		return fmt.Errorf("expected timeout to be positive integer, but got %d", f.timeout)
	}
	if f.contextLines < 0 {
		return fmt.Errorf("expected context-lines to be positive integer, but got %d", f.contextLines)
	}
	if f.contextLines > report.MaxContextLines {
		f.contextLines = report.MaxContextLines
	}
	return nil
}

func (f *setFlags) planOptions(strict bool) (sets.PlanOptions, error) {
	filters, err := reconcile.ParseFilters(f.filters)
	if err != nil {
		return sets.PlanOptions{}, err
	}
	return sets.PlanOptions{
		Filters:           filters,
		IncludeUnofficial: f.includeUnofficial,
		Refetch:           f.refetch,
		StrictLocal:       strict,
		ForceRewrite:      f.forceRewrite,
	}, nil
}
