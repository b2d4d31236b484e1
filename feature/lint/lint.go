package lint

import (
	"fmt"
	"unicode/utf8"

	"achievement-manager/core/asset"
)

// Rule names a single check.
type Rule string

const (
	RuleLongTitle         Rule = "no-long-titles"
	RuleLongDescription   Rule = "no-long-descriptions"
	RuleOddPoints         Rule = "no-odd-points"
	RuleDuplicateAchTitle Rule = "unique-achievement-titles-without-id"
	RuleDuplicateLbTitle  Rule = "unique-leaderboard-titles-without-id"
)

const (
	maxTextLength      = 255
	titlePreviewLength = 40
)

var allowedPoints = map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 10: true, 25: true, 50: true, 100: true}

// Issue is one finding. Duplicate is the first asset holding the title for
// the duplicate title rules.
type Issue struct {
	Rule      Rule
	Asset     asset.Asset
	Duplicate asset.Asset
	Message   string
}

func (i Issue) String() string {
	return "WARN: " + i.Message
}

type check func(set *asset.Set) []Issue

var checks = []check{
	longTitles,
	longDescriptions,
	oddPoints,
	duplicateAchievementTitles,
	duplicateLeaderboardTitles,
}

// Check runs every rule against set, rule by rule.
func Check(set *asset.Set) []Issue {
	if set == nil {
		return nil
	}
	var issues []Issue
	for _, c := range checks {
		issues = append(issues, c(set)...)
	}
	return issues
}

func kindName(a asset.Asset) string {
	if a.Kind() == asset.KindLeaderboard {
		return "Leaderboard"
	}
	return "Achievement"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func longTitles(set *asset.Set) []Issue {
	var issues []Issue
	for _, a := range set.Assets() {
		if n := utf8.RuneCountInString(a.Title()); n > maxTextLength {
			issues = append(issues, Issue{
				Rule:  RuleLongTitle,
				Asset: a,
				Message: fmt.Sprintf("%s \"%s\" has title length above %d: %d",
					kindName(a), truncate(a.Title(), titlePreviewLength), maxTextLength, n),
			})
		}
	}
	return issues
}

func longDescriptions(set *asset.Set) []Issue {
	var issues []Issue
	for _, a := range set.Assets() {
		if n := utf8.RuneCountInString(a.Description()); n > maxTextLength {
			issues = append(issues, Issue{
				Rule:  RuleLongDescription,
				Asset: a,
				Message: fmt.Sprintf("%s \"%s\" has description length above %d: %d",
					kindName(a), truncate(a.Title(), titlePreviewLength), maxTextLength, n),
			})
		}
	}
	return issues
}

func oddPoints(set *asset.Set) []Issue {
	var issues []Issue
	for _, a := range set.Achievements() {
		if !allowedPoints[a.Points()] {
			issues = append(issues, Issue{
				Rule:    RuleOddPoints,
				Asset:   a,
				Message: fmt.Sprintf("Achievement \"%s\" has odd amount of points: %d", a.Title(), a.Points()),
			})
		}
	}
	return issues
}

func duplicateAchievementTitles(set *asset.Set) []Issue {
	var assets []asset.Asset
	for _, a := range set.Achievements() {
		assets = append(assets, a)
	}
	return duplicateTitles(RuleDuplicateAchTitle, assets)
}

func duplicateLeaderboardTitles(set *asset.Set) []Issue {
	var assets []asset.Asset
	for _, l := range set.Leaderboards() {
		assets = append(assets, l)
	}
	return duplicateTitles(RuleDuplicateLbTitle, assets)
}

// duplicateTitles only looks at local-only ids.
func duplicateTitles(rule Rule, assets []asset.Asset) []Issue {
	first := map[string]asset.Asset{}
	var issues []Issue
	for _, a := range assets {
		if asset.IsUniqueID(a.ID()) {
			continue
		}
		if existing, ok := first[a.Title()]; ok {
			issues = append(issues, Issue{
				Rule:      rule,
				Asset:     a,
				Duplicate: existing,
				Message:   fmt.Sprintf("There are several achievements without ID titled \"%s\"", a.Title()),
			})
			continue
		}
		first[a.Title()] = a
	}
	return issues
}
