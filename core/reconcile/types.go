package reconcile

import (
	"strconv"

	"achievement-manager/core/asset"
)

// ActionType is the decision taken for a single asset.
type ActionType string

const (
	// ActionKeep leaves the local line untouched.
	ActionKeep ActionType = "keep"
	// ActionDelete drops the local line because remote already matches the input.
	ActionDelete ActionType = "delete"
	// ActionWrite writes the input asset into the local file.
	ActionWrite ActionType = "write"
	// ActionSkip means the input asset already matches remote and nothing is written.
	ActionSkip ActionType = "skip"

	// actionNext tells the matcher to try the next matching strategy.
	actionNext ActionType = ""
)

// Action describes one decision of a reconciliation run.
type Action struct {
	// Type specifies the decision.
	Type ActionType `json:"type"`

	// Kind is the asset variant.
	Kind string `json:"kind"`

	// ID is the id the asset ends up with, or the removed id for deletions.
	ID uint32 `json:"id"`

	// Title is the display title of the asset.
	Title string `json:"title"`

	// Reason explains why this action was taken.
	Reason string `json:"reason"`
}

// Diff pairs the asset being replaced with its replacement.
type Diff struct {
	// Original is the local or remote asset before the change.
	Original asset.Asset

	// Modified is the asset that gets written.
	Modified asset.Asset
}

// Warning reports a local line that could not be parsed and was passed through.
type Warning struct {
	// Line is the one-based line number in the local file.
	Line int `json:"line"`

	// Err is the parse error.
	Err error `json:"-"`
}

func (w Warning) String() string {
	return "local file, ignoring line " + strconv.Itoa(w.Line) + ": " + w.Err.Error()
}

// Summary provides aggregate counts of a reconciliation run.
type Summary struct {
	// Kept counts local lines left untouched.
	Kept int `json:"kept"`

	// Deleted counts local lines dropped as redundant.
	Deleted int `json:"deleted"`

	// Written counts assets written into the local file.
	Written int `json:"written"`

	// Filtered counts writes suppressed by filters.
	Filtered int `json:"filtered"`

	// Warnings counts unparsable local lines.
	Warnings int `json:"warnings"`
}

// Transcript is the full output of a reconciliation run. It is built once and
// not changed afterwards.
type Transcript struct {
	// AddToLocalFromScratch holds input assets that matched nothing and got a fresh local-only id.
	AddToLocalFromScratch []asset.Asset

	// AddToLocalByRemoteMatch holds input assets that differ from the remote asset they matched.
	AddToLocalByRemoteMatch []Diff

	// UpdateInLocal holds input assets that replace a differing local asset.
	UpdateInLocal []Diff

	// RemoveFromLocal holds local assets that are no longer needed because remote matches the input.
	RemoveFromLocal []asset.Asset

	// KeepInLocal holds local assets that stay as they are.
	KeepInLocal []asset.Asset

	// Lines is the new file body, achievements then leaderboards, each ordered by id.
	Lines []string

	// CodeNotes are the local code note lines, written after Lines.
	CodeNotes []string

	// Warnings lists local lines that could not be parsed.
	Warnings []Warning

	// Actions lists every decision in the order it was taken.
	Actions []Action

	// Summary provides aggregate counts.
	Summary Summary
}

// Options controls a reconciliation run.
type Options struct {
	// Filters restrict which input assets may be written. An asset is written
	// when it matches any filter. No filters means everything is written.
	Filters []Filter
}
