package asset_test

import (
	"testing"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievement(t *testing.T, id uint32, title string) asset.Achievement {
	t.Helper()
	a, err := asset.NewAchievement(asset.AchievementData{
		ID:         id,
		Title:      title,
		Points:     5,
		Conditions: condition.MustParseGroupSet("0xH1=1"),
	})
	require.NoError(t, err)
	return a
}

func leaderboard(t *testing.T, id uint32, title string) asset.Leaderboard {
	t.Helper()
	l, err := asset.NewLeaderboard(asset.LeaderboardData{
		ID:    id,
		Title: title,
		Type:  asset.LeaderboardScore,
		Conditions: asset.LeaderboardConditions{
			Start:  condition.MustParseGroupSet("0xH1=1"),
			Cancel: condition.MustParseGroupSet("0=1"),
			Submit: condition.MustParseGroupSet("1=1"),
			Value:  condition.MustParseGroupSet("M:0xH2"),
		},
	})
	require.NoError(t, err)
	return l
}

func TestNewSet_RequiresGameID(t *testing.T) {
	_, err := asset.NewSet(asset.SetData{Title: "Game"})
	assert.Error(t, err)
}

func TestSet_AssignsLocalIDs(t *testing.T) {
	s, err := asset.NewSet(asset.SetData{GameID: 1234, Title: "Game"})
	require.NoError(t, err)

	first, err := s.AddAchievement(achievement(t, 0, "First"))
	require.NoError(t, err)
	assert.Equal(t, uint32(111000001), first.ID())

	second, err := s.AddAchievement(achievement(t, 0, "Second"))
	require.NoError(t, err)
	assert.Equal(t, uint32(111000002), second.ID())

	_, err = s.AddAchievement(achievement(t, 111000010, "Explicit"))
	require.NoError(t, err)

	next, err := s.AddAchievement(achievement(t, 0, "Next"))
	require.NoError(t, err)
	assert.Equal(t, uint32(111000011), next.ID())

	_, err = s.AddAchievement(achievement(t, 5, "Server"))
	require.NoError(t, err)

	after, err := s.AddAchievement(achievement(t, 0, "After"))
	require.NoError(t, err)
	assert.Equal(t, uint32(111000012), after.ID())

	lb, err := s.AddLeaderboard(leaderboard(t, 0, "Board"))
	require.NoError(t, err)
	assert.Equal(t, uint32(111000001), lb.ID())

	assert.Equal(t, 7, s.Len())
}

func TestSet_DuplicateID(t *testing.T) {
	s, err := asset.NewSet(asset.SetData{GameID: 1, Title: "Game"})
	require.NoError(t, err)

	_, err = s.AddAchievement(achievement(t, 5, "A"))
	require.NoError(t, err)
	_, err = s.AddAchievement(achievement(t, 5, "B"))
	require.Error(t, err)
	assert.Equal(t, `achievement with id 5: "A", already exists`, err.Error())

	_, err = s.AddLeaderboard(leaderboard(t, 9, "L"))
	require.NoError(t, err)
	_, err = s.Add(leaderboard(t, 9, "M"))
	require.Error(t, err)
	assert.Equal(t, `leaderboard with id 9: "L", already exists`, err.Error())
}

func TestSet_String(t *testing.T) {
	s, err := asset.NewSet(asset.SetData{GameID: 1234, Title: "Funny Game"})
	require.NoError(t, err)

	for _, a := range []asset.Asset{
		achievement(t, 0, "Ach1"),
		achievement(t, 57, "Ach2"),
		leaderboard(t, 0, "Lb1"),
		leaderboard(t, 58, "Lb2"),
	} {
		_, err := s.Add(a)
		require.NoError(t, err)
	}

	want := "1.0\n" +
		"Funny Game\n" +
		`57:"0xH1=1":Ach2:::::achievement-manager:5:::::00000` + "\n" +
		`111000001:"0xH1=1":Ach1:::::achievement-manager:5:::::00000` + "\n" +
		`L58:"0xH1=1":"0=1":"1=1":"M:0xH2":SCORE:Lb2::0` + "\n" +
		`L111000001:"0xH1=1":"0=1":"1=1":"M:0xH2":SCORE:Lb1::0` + "\n"
	assert.Equal(t, want, s.String())

	got, ok := s.Achievement(57)
	require.True(t, ok)
	assert.Equal(t, "Ach2", got.Title())
	_, ok = s.Leaderboard(57)
	assert.False(t, ok)

	assets := s.Assets()
	require.Len(t, assets, 4)
	assert.Equal(t, asset.KindAchievement, assets[1].Kind())
	assert.Equal(t, asset.KindLeaderboard, assets[2].Kind())
}

func TestBadges(t *testing.T) {
	tests := []struct {
		name    string
		badge   string
		want    string
		wantErr string
	}{
		{name: "empty", badge: "", want: "00000"},
		{name: "padded", badge: "12", want: "00012"},
		{name: "long id kept", badge: "123456", want: "123456"},
		{name: "local file", badge: `local\\sub\\a.PNG`, want: `local\\sub\\a.PNG`},
		{name: "leaves local dir", badge: `local\\..\\a.png`, wantErr: "path to badge must not leave local directory"},
		{name: "wrong root", badge: `remote\\a.png`, wantErr: `expected badge as unsigned integer or filepath starting with local\\`},
		{name: "wrong extension", badge: `local\\a.bmp`, wantErr: "expected badge filename to be *.(png|jpg|jpeg|gif)"},
		{name: "too large", badge: "99999999999", wantErr: "expected badge id to be within the range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := asset.NewAchievement(asset.AchievementData{Title: "T", Badge: tt.badge})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Badge())
		})
	}
}

func TestBadgePredicates(t *testing.T) {
	tests := []struct {
		badge    string
		set      bool
		setByID  bool
		unsetNum bool
	}{
		{"00000", false, false, true},
		{"00012", true, true, false},
		{`local\\a.png`, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.badge, func(t *testing.T) {
			assert.Equal(t, tt.set, asset.BadgeIsSet(tt.badge))
			assert.Equal(t, tt.setByID, asset.BadgeIsSetByID(tt.badge))
			assert.Equal(t, tt.unsetNum, asset.BadgeIsUnset(tt.badge))
		})
	}
}

func TestIsUniqueID(t *testing.T) {
	assert.True(t, asset.IsUniqueID(111000000))
	assert.False(t, asset.IsUniqueID(111000001))
	assert.Equal(t, "achievements", asset.KindAchievement.Plural(2))
	assert.Equal(t, "leaderboard", asset.KindLeaderboard.Plural(1))
}
