package report

import (
	"bytes"
	"testing"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"
	"achievement-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievement(id uint32, title, code string, patch ...func(*asset.AchievementData)) asset.Achievement {
	d := asset.AchievementData{
		ID:          id,
		Title:       title,
		Description: "D",
		Points:      5,
		Conditions:  condition.MustParseGroupSet(code),
	}
	for _, p := range patch {
		p(&d)
	}
	return asset.MustAchievement(d)
}

func leaderboard(id uint32, title, conditions string) asset.Leaderboard {
	lc, err := asset.ParseLeaderboardConditions(conditions)
	if err != nil {
		panic(err)
	}
	return asset.MustLeaderboard(asset.LeaderboardData{
		ID:         id,
		Title:      title,
		Type:       asset.LeaderboardType("SCORE"),
		Conditions: lc,
	})
}

func TestPrint_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	shown, err := NewPrinter(&buf, Options{}).Print(reconcile.Report{})

	require.NoError(t, err)
	assert.False(t, shown)
	assert.Equal(t, NoChanges+"\n", buf.String())
}

func TestRender_NewTitles(t *testing.T) {
	var buf bytes.Buffer
	out := NewPrinter(&buf, Options{}).Render(reconcile.Report{
		NewAchievements: []string{"A", "b"},
		NewLeaderboards: []string{"Z"},
	})

	assert.Equal(t, "New achievements added:\n  A\n  b\n\nNew leaderboards added:\n  Z", out)
}

func TestChange_Fields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{})

	original := achievement(12, "Old", "0xH1=1_0xH2=1")
	modified := achievement(12, "New", "0xH1=1_0xH2=2", func(d *asset.AchievementData) {
		d.Points = 10
		d.Type = asset.AchievementTypeProgression
	})

	out := p.Change(reconcile.Change{Original: original, Modified: modified, Context: reconcile.ComparedToLocal})

	assert.Contains(t, out, "  A.ID │ 12 (compared to local)\n")
	assert.Contains(t, out, " Title │ - Old\n")
	assert.Contains(t, out, "       │ + New\n")
	assert.Contains(t, out, " Desc. │ D\n")
	assert.Contains(t, out, "  Type │ None -> Progression\n")
	assert.Contains(t, out, "  Pts. │ 5 -> 10\n")
	assert.Contains(t, out, "  Code │ Core\n")
	assert.Contains(t, out, "Flag")
	assert.Contains(t, out, "Hits")
}

func TestChange_Unchanged(t *testing.T) {
	var buf bytes.Buffer
	a := achievement(12, "Same", "0xH1=1")

	out := NewPrinter(&buf, Options{}).Change(reconcile.Change{Original: a, Modified: a, Context: reconcile.ComparedToRemote})
	assert.Empty(t, out)
}

func TestChange_LeaderboardGroups(t *testing.T) {
	var buf bytes.Buffer
	original := leaderboard(7, "Score", "STA:0xH1=1::CAN:0=1::SUB:0xH2=1::VAL:M:0xX10")
	modified := leaderboard(7, "Score", "STA:0xH1=1S0xH3=1::CAN:0=1::SUB:0xH2=1::VAL:M:0xX20")

	out := NewPrinter(&buf, Options{}).Change(reconcile.Change{Original: original, Modified: modified, Context: reconcile.ComparedToRemote})

	assert.Contains(t, out, "  L.ID │ 7 (compared to remote)\n")
	assert.Contains(t, out, "  Code │ Start - Alt 1\n")
	assert.Contains(t, out, "  Code │ Value\n")
	assert.NotContains(t, out, "Start - Core")
	assert.NotContains(t, out, "Cancel")
	assert.NotContains(t, out, " Desc. │")
}

func TestRender_AssetsChanged(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{ContextLines: 2})

	shown, err := p.Print(reconcile.Report{
		UpdatedAchievements: []reconcile.Change{{
			Original: achievement(1, "T", "0xH1=1"),
			Modified: achievement(1, "T", "0xH1=2"),
			Context:  reconcile.ComparedToRemote,
		}},
	})
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Contains(t, buf.String(), "Assets changed:\n\n  A.ID │ 1 (compared to remote)\n")
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		section  string
		index    int
		expected string
	}{
		{"", 0, "Core"},
		{"", 2, "Alt 2"},
		{"Start", 0, "Start - Core"},
		{"Cancel", 1, "Cancel - Alt 1"},
		{"Value", 0, "Value"},
		{"Value", 1, "Value - Alt 1"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, groupName(tt.section, tt.index))
		})
	}
}
