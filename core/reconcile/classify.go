package reconcile

import (
	"sort"
	"strconv"
	"strings"

	"achievement-manager/core/asset"
)

// Comparison contexts of a Change.
const (
	ComparedToLocal  = "compared to local"
	ComparedToRemote = "compared to remote"
)

// Change is an updated asset together with what it was compared to.
type Change struct {
	Original asset.Asset
	Modified asset.Asset
	// Context is ComparedToLocal or ComparedToRemote.
	Context string
}

// Report regroups a transcript for presentation.
type Report struct {
	NewAchievements     []string
	NewLeaderboards     []string
	UpdatedAchievements []Change
	UpdatedLeaderboards []Change
	RemovedAchievements int
	RemovedLeaderboards int
}

// Classify buckets the transcript into added, updated and removed assets.
func Classify(t *Transcript) Report {
	var r Report

	for _, a := range t.AddToLocalFromScratch {
		if a.Kind() == asset.KindLeaderboard {
			r.NewLeaderboards = append(r.NewLeaderboards, a.Title())
		} else {
			r.NewAchievements = append(r.NewAchievements, a.Title())
		}
	}
	sortTitles(r.NewAchievements)
	sortTitles(r.NewLeaderboards)

	add := func(d Diff, context string) {
		c := Change{Original: d.Original, Modified: d.Modified, Context: context}
		if d.Modified.Kind() == asset.KindLeaderboard {
			r.UpdatedLeaderboards = append(r.UpdatedLeaderboards, c)
		} else {
			r.UpdatedAchievements = append(r.UpdatedAchievements, c)
		}
	}
	for _, d := range t.UpdateInLocal {
		add(d, ComparedToLocal)
	}
	for _, d := range t.AddToLocalByRemoteMatch {
		add(d, ComparedToRemote)
	}

	for _, a := range t.RemoveFromLocal {
		if a.Kind() == asset.KindLeaderboard {
			r.RemovedLeaderboards++
		} else {
			r.RemovedAchievements++
		}
	}
	return r
}

func sortTitles(titles []string) {
	sort.SliceStable(titles, func(i, j int) bool {
		a, b := strings.ToLower(titles[i]), strings.ToLower(titles[j])
		if a != b {
			return a < b
		}
		return titles[i] < titles[j]
	})
}

// Changes returns every updated asset, achievements first.
func (r Report) Changes() []Change {
	return append(append([]Change(nil), r.UpdatedAchievements...), r.UpdatedLeaderboards...)
}

// HasChanges reports whether anything was added or updated.
func (r Report) HasChanges() bool {
	return len(r.NewAchievements)+len(r.NewLeaderboards)+len(r.UpdatedAchievements)+len(r.UpdatedLeaderboards) > 0
}

// Stats returns one line per non-empty bucket, for example
// "added: 1 achievement, 2 leaderboards".
func (r Report) Stats() []string {
	buckets := []struct {
		header       string
		achievements int
		leaderboards int
	}{
		{"added", len(r.NewAchievements), len(r.NewLeaderboards)},
		{"updated", len(r.UpdatedAchievements), len(r.UpdatedLeaderboards)},
		{"removed from local (similar to remote)", r.RemovedAchievements, r.RemovedLeaderboards},
	}

	var lines []string
	for _, b := range buckets {
		var parts []string
		if b.achievements > 0 {
			parts = append(parts, strconv.Itoa(b.achievements)+" "+asset.KindAchievement.Plural(b.achievements))
		}
		if b.leaderboards > 0 {
			parts = append(parts, strconv.Itoa(b.leaderboards)+" "+asset.KindLeaderboard.Plural(b.leaderboards))
		}
		if len(parts) > 0 {
			lines = append(lines, b.header+": "+strings.Join(parts, ", "))
		}
	}
	return lines
}
