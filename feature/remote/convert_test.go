package remote

import (
	"testing"

	"achievement-manager/core/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiSetJSON = `{
	"Success": true,
	"Title": "Sonic",
	"Sets": [
		{
			"Title": "Bonus",
			"GameId": 1,
			"AchievementSetId": 20,
			"Type": "bonus",
			"Achievements": [
				{"ID": 9, "MemAddr": "0xH9=9", "Title": "Bonus", "Description": "", "Points": 1, "Flags": 3, "BadgeName": "9"}
			],
			"Leaderboards": []
		},
		{
			"Title": "Sonic",
			"GameId": 1,
			"AchievementSetId": 10,
			"Type": "core",
			"Achievements": [
				{"ID": 1, "MemAddr": "0xH1=1", "Title": "Official", "Description": "D", "Points": 5, "Author": "me", "Flags": 3, "BadgeName": "123", "Type": "progression"},
				{"ID": 2, "MemAddr": "0xH2=1", "Title": "Unofficial", "Description": "D", "Points": 5, "Flags": 5, "BadgeName": "0"},
				{"ID": 3, "MemAddr": "0xH3=1", "Title": "Other", "Description": "D", "Points": 5, "Flags": 7, "BadgeName": "0"}
			],
			"Leaderboards": [
				{"ID": 4, "Mem": "STA:0xH1=1::CAN:0=1::SUB:1=1::VAL:0xH2", "Format": "TIME", "LowerIsBetter": 1, "Title": "Fast", "Description": "", "Hidden": false},
				{"ID": 5, "Mem": "STA:0xH1=1::CAN:0=1::SUB:1=1::VAL:0xH2", "Format": "SCORE", "LowerIsBetter": false, "Title": "Hidden", "Description": "", "Hidden": true}
			]
		}
	]
}`

func TestDecode(t *testing.T) {
	t.Run("MultiSet", func(t *testing.T) {
		snap, err := Decode([]byte(multiSetJSON))
		require.NoError(t, err)
		assert.True(t, snap.Success)
		assert.Len(t, snap.Sets, 2)
	})

	t.Run("Legacy", func(t *testing.T) {
		snap, err := Decode([]byte(`{"ID": 7, "Title": "Old", "Achievements": [], "Leaderboards": []}`))
		require.NoError(t, err)
		require.Len(t, snap.Sets, 1)
		assert.Equal(t, Set{Title: "Old", GameID: 7, AchievementSetID: 7, Type: CoreSetType, Achievements: []Achievement{}, Leaderboards: []Leaderboard{}}, snap.Sets[0])
	})

	t.Run("Broken", func(t *testing.T) {
		_, err := Decode([]byte(`{"Sets": [`))
		assert.ErrorContains(t, err, "failed to decode remote data")
	})
}

func TestSnapshot_SelectSet(t *testing.T) {
	snap, err := Decode([]byte(multiSetJSON))
	require.NoError(t, err)

	core, err := snap.SelectSet(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), core.AchievementSetID)

	bonus, err := snap.SelectSet(20)
	require.NoError(t, err)
	assert.Equal(t, "bonus", bonus.Type)

	_, err = snap.SelectSet(99)
	assert.EqualError(t, err, "remote data has no achievement set with id 99")

	_, err = (&Snapshot{}).SelectSet(0)
	assert.EqualError(t, err, "remote data has no core achievement set")
}

func TestSnapshot_ToSet(t *testing.T) {
	snap, err := Decode([]byte(multiSetJSON))
	require.NoError(t, err)

	t.Run("OfficialOnly", func(t *testing.T) {
		set, err := snap.ToSet(1, ConvertOptions{})
		require.NoError(t, err)

		require.Len(t, set.Achievements(), 1)
		a := set.Achievements()[0]
		assert.Equal(t, "Official", a.Title())
		assert.Equal(t, "00123", a.Badge())
		assert.Equal(t, asset.AchievementTypeProgression, a.Type())
		assert.Equal(t, "me", a.Author())

		require.Len(t, set.Leaderboards(), 1)
		lb := set.Leaderboards()[0]
		assert.Equal(t, asset.LeaderboardFrames, lb.Type())
		assert.True(t, lb.LowerIsBetter())
		assert.Equal(t, "Sonic", set.Title())
	})

	t.Run("IncludeUnofficial", func(t *testing.T) {
		set, err := snap.ToSet(1, ConvertOptions{IncludeUnofficial: true})
		require.NoError(t, err)
		assert.Len(t, set.Achievements(), 2)
		assert.Len(t, set.Leaderboards(), 2)
	})

	t.Run("SpecificSet", func(t *testing.T) {
		set, err := snap.ToSet(1, ConvertOptions{SetID: 20})
		require.NoError(t, err)
		assert.Equal(t, uint32(20), set.ID())
		assert.Len(t, set.Achievements(), 1)
	})

	t.Run("BrokenAchievement", func(t *testing.T) {
		broken := &Snapshot{Sets: []Set{{Type: CoreSetType, Achievements: []Achievement{
			{ID: 1, MemAddr: "0xH1=1", Title: "Fine", Flags: FlagOfficial},
			{ID: 2, MemAddr: "0xZ1=1", Title: "Broken", Flags: FlagOfficial},
		}}}}
		_, err := broken.ToSet(1, ConvertOptions{})
		assert.ErrorContains(t, err, "Achievements[1]: ")
	})

	t.Run("BrokenLeaderboard", func(t *testing.T) {
		broken := &Snapshot{Sets: []Set{{Type: CoreSetType, Leaderboards: []Leaderboard{
			{ID: 1, Mem: "STA:0=1", Format: "SCORE", Title: "Broken"},
		}}}}
		_, err := broken.ToSet(1, ConvertOptions{})
		assert.ErrorContains(t, err, "Leaderboards[0]: ")
	})
}
