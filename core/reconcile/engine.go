package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"achievement-manager/core/asset"
	"achievement-manager/core/cachefile"
)

// seedBase is the counter start for fresh local-only ids before the local
// pass. It gets incremented once after the pass, so the first fresh id is
// asset.LocalIDThreshold when the local file has no local-only ids.
const seedBase = asset.LocalIDThreshold - 1

type run struct {
	t       *Transcript
	m       *matcher
	filters []Filter
	nextID  map[asset.Kind]uint32
	lines   []string
}

// Reconcile computes the new local file from the input set (desired state),
// the remote set (server state) and the parsed local file. remote and local
// may be nil.
//
// Local assets are matched against input first, in file order. Input assets
// left over are then matched against remote. Any ambiguity or id conflict
// aborts the run and no transcript is returned.
func Reconcile(input, remote *asset.Set, local *cachefile.File, opts Options) (*Transcript, error) {
	r := &run{
		t:       &Transcript{},
		m:       newMatcher(setAssets(input), setAssets(remote)),
		filters: opts.Filters,
		nextID: map[asset.Kind]uint32{
			asset.KindAchievement: seedBase,
			asset.KindLeaderboard: seedBase,
		},
	}

	if local != nil {
		for _, entry := range local.Entries {
			if err := r.local(entry); err != nil {
				return nil, err
			}
		}
	}

	r.nextID[asset.KindAchievement]++
	r.nextID[asset.KindLeaderboard]++

	for _, a := range r.m.input.remaining() {
		if err := r.input(a); err != nil {
			return nil, err
		}
	}

	r.t.Lines = sortLines(r.lines)
	r.t.Summary.Warnings = len(r.t.Warnings)
	return r.t, nil
}

func setAssets(s *asset.Set) []asset.Asset {
	if s == nil {
		return nil
	}
	return s.Assets()
}

func (r *run) local(entry cachefile.Entry) error {
	switch entry.Type {
	case cachefile.EntryInvalid:
		r.lines = append(r.lines, entry.Line)
		r.t.Warnings = append(r.t.Warnings, Warning{Line: entry.Number, Err: entry.Err})
		return nil
	case cachefile.EntryCodeNote:
		r.t.CodeNotes = append(r.t.CodeNotes, entry.Line)
		return nil
	case cachefile.EntryAchievement, cachefile.EntryLeaderboard:
	default:
		return nil
	}

	old := entry.Asset
	if kind := old.Kind(); !asset.IsUniqueID(old.ID()) && old.ID() > r.nextID[kind] {
		r.nextID[kind] = old.ID()
	}

	res, err := r.m.localToInput(old)
	if err != nil {
		return err
	}

	switch res.action {
	case ActionKeep:
		r.lines = append(r.lines, entry.Line)
		r.t.KeepInLocal = append(r.t.KeepInLocal, old)
		r.record(ActionKeep, old, res.reason)
	case ActionDelete:
		r.t.RemoveFromLocal = append(r.t.RemoveFromLocal, old)
		r.record(ActionDelete, old, res.reason)
	case ActionWrite:
		next := res.asset
		keepServerID := asset.IsUniqueID(old.ID()) && !asset.IsUniqueID(next.ID())
		keepLocalID := !asset.IsUniqueID(old.ID()) && !asset.IsUniqueID(next.ID()) && old.ID() != next.ID()
		if keepServerID || keepLocalID {
			next = next.WithID(old.ID())
		}
		if res.preserveBadge {
			if next, err = withBadgeOf(next, res.old); err != nil {
				return err
			}
		}

		if !filtersMatch(next, r.filters) {
			r.lines = append(r.lines, entry.Line)
			r.record(ActionKeep, old, "filtered out")
			r.t.Summary.Filtered++
			return nil
		}
		r.lines = append(r.lines, next.String())
		r.t.UpdateInLocal = append(r.t.UpdateInLocal, Diff{Original: old, Modified: next})
		r.record(ActionWrite, next, res.reason)
	}
	return nil
}

func (r *run) input(a asset.Asset) error {
	res, err := r.m.inputToRemote(a)
	if err != nil {
		return err
	}
	if res.action != ActionWrite {
		r.record(res.action, a, res.reason)
		return nil
	}

	next := res.asset
	if res.old != nil {
		next = next.WithID(res.old.ID())
		if res.preserveBadge {
			if next, err = withBadgeOf(next, res.old); err != nil {
				return err
			}
		}
	} else {
		kind := next.Kind()
		next = next.WithID(r.nextID[kind])
		r.nextID[kind]++
	}

	if !filtersMatch(next, r.filters) {
		r.t.Summary.Filtered++
		return nil
	}

	r.lines = append(r.lines, next.String())
	if res.old != nil {
		r.t.AddToLocalByRemoteMatch = append(r.t.AddToLocalByRemoteMatch, Diff{Original: res.old, Modified: next})
	} else {
		r.t.AddToLocalFromScratch = append(r.t.AddToLocalFromScratch, next)
	}
	r.record(ActionWrite, next, res.reason)
	return nil
}

func (r *run) record(t ActionType, a asset.Asset, reason string) {
	r.t.Actions = append(r.t.Actions, Action{
		Type:   t,
		Kind:   a.Kind().String(),
		ID:     a.ID(),
		Title:  a.Title(),
		Reason: reason,
	})
	switch t {
	case ActionKeep:
		r.t.Summary.Kept++
	case ActionDelete:
		r.t.Summary.Deleted++
	case ActionWrite:
		r.t.Summary.Written++
	}
}

// withBadgeOf copies the badge of old onto next when both are achievements.
func withBadgeOf(next, old asset.Asset) (asset.Asset, error) {
	a, ok := next.(asset.Achievement)
	if !ok {
		return next, nil
	}
	o, ok := old.(asset.Achievement)
	if !ok {
		return next, nil
	}
	res, err := a.WithBadge(o.Badge())
	if err != nil {
		return nil, fmt.Errorf("achievement %d: %w", a.ID(), err)
	}
	return res, nil
}

// sortLines orders achievement lines then leaderboard lines by numeric id.
// Lines without a readable id keep their relative order after the rest.
func sortLines(lines []string) []string {
	var achievements, leaderboards []string
	for _, line := range lines {
		if strings.HasPrefix(line, "L") {
			leaderboards = append(leaderboards, line)
		} else {
			achievements = append(achievements, line)
		}
	}
	sortByID(achievements)
	sortByID(leaderboards)
	return append(achievements, leaderboards...)
}

func sortByID(lines []string) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, aok := lineID(lines[i])
		b, bok := lineID(lines[j])
		if aok && bok {
			return a < b
		}
		return aok && !bok
	})
}

func lineID(line string) (uint64, bool) {
	head, _, ok := strings.Cut(line, ":")
	if !ok {
		return 0, false
	}
	head = strings.TrimPrefix(head, "L")
	head, _, _ = strings.Cut(head, "|")
	id, err := strconv.ParseUint(head, 10, 64)
	return id, err == nil
}

// Render returns the complete new local file. The version, title and line
// ending of local are kept when present, title is the fallback otherwise.
func (t *Transcript) Render(local *cachefile.File, title string) string {
	var version, eol string
	if local != nil {
		version, eol = local.Version, local.EOL
		if local.Title != "" {
			title = local.Title
		}
	}
	return cachefile.Render(version, title, eol, append(append([]string(nil), t.Lines...), t.CodeNotes...))
}
