package asset_test

import (
	"testing"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAchievement_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain",
			input: `58:"0=1":My Achievement:Do something funny::::achievement-manager:5:::::00000`,
			want:  `58:"0=1":My Achievement:Do something funny::::achievement-manager:5:::::00000`,
		},
		{
			name:  "missing badge column",
			input: `58:"0=1":T:D::::someone:10::::`,
			want:  `58:"0=1":T:D::::someone:10:::::00000`,
		},
		{
			name:  "quoted title with colon",
			input: `7:"0xH1=1":"Hi: there":D:::progression:someone:3:::::00123`,
			want:  `7:"0xH1=1":"Hi: there":D:::progression:someone:3:::::00123`,
		},
		{
			name:  "escaped quote in description",
			input: `7:"0xH1=1":T:"Say \"hi\"":::missable:someone:3:::::00123`,
			want:  `7:"0xH1=1":T:"Say \"hi\"":::missable:someone:3:::::00123`,
		},
		{
			name:  "local badge is quoted",
			input: `111000001:"0xH1=1_d0xH1=0S0=1":T:D:::win_condition:someone:25:::::"local\\badges\\a.png"`,
			want:  `111000001:"0xH1=1_d0xH1=0S0=1":T:D:::win_condition:someone:25:::::"local\\badges\\a.png"`,
		},
		{
			name:  "empty author falls back",
			input: `1:"0=1":T:D:::::1:::::1`,
			want:  `1:"0=1":T:D::::achievement-manager:1:::::00001`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := asset.ParseAchievement(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())

			again, err := asset.ParseAchievement(a.String())
			require.NoError(t, err)
			assert.Equal(t, a.String(), again.String())
		})
	}
}

func TestParseAchievement_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too few columns", `58:"0=1":T:D`, "got an unexpected amount of data when parsing raw achievement string"},
		{"bad id", `abc:"0=1":T:D::::a:5:::::00000`, `expected id as unsigned integer, but got "abc"`},
		{"negative points", `1:"0=1":T:D::::a:-1:::::00000`, "expected points as unsigned integer, but got -1"},
		{"empty title", `1:"0=1"::D::::a:1:::::00000`, `expected title as non-empty string, but got ""`},
		{"bad type", `1:"0=1":T:D:::bogus:a:1:::::00000`, `expected type to be one of: [missable, progression, win_condition], but got "bogus"`},
		{"bad condition", `1:"0xH1=1_0xZ=":T:D::::a:1:::::00000`, "Core, condition 2:"},
		{"bare measured", `1:"M:0xH1":T:D::::a:1:::::00000`, "Core, condition 1: cannot have Measured condition without rvalue specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asset.ParseAchievement(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewAchievement_MeasuredMixing(t *testing.T) {
	_, err := asset.NewAchievement(asset.AchievementData{
		Title:      "Mixed",
		Conditions: condition.MustParseGroupSet("M:0xH1=1SG:0xH2=2"),
	})
	require.Error(t, err)
	assert.Equal(t,
		"Core, condition 1: Measured conflicts with Alt 1, condition 1 Measured%, make sure you exclusively use Measured or Measured%",
		err.Error(),
	)
}

func TestAchievement_With(t *testing.T) {
	a := asset.MustAchievement(asset.AchievementData{
		ID:         3,
		Title:      "Original",
		Points:     5,
		Conditions: condition.MustParseGroupSet("0xH1=1"),
	})

	changed, err := a.With(func(d *asset.AchievementData) { d.Points = 10 })
	require.NoError(t, err)
	assert.Equal(t, 10, changed.Points())
	assert.Equal(t, 5, a.Points())

	_, err = a.With(func(d *asset.AchievementData) { d.Title = " " })
	assert.Error(t, err)

	moved := a.WithID(9)
	assert.Equal(t, uint32(9), moved.ID())
	assert.Equal(t, uint32(3), a.ID())
	assert.Equal(t, asset.KindAchievement, moved.Kind())
}

func TestNewAchievement_Defaults(t *testing.T) {
	a, err := asset.NewAchievement(asset.AchievementData{Title: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, asset.DefaultAuthor, a.Author())
	assert.Equal(t, asset.DefaultBadge, a.Badge())
	assert.Equal(t, 1, a.Conditions().Len())
	assert.Equal(t, "", a.Code())
}
