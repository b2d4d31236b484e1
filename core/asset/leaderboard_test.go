package asset_test

import (
	"testing"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeaderboard_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain",
			input: `L58:"0xHcafe=102":"0=1":"1=1":"M:0xX34440*2":SCORE:Lb2:Desc2:1`,
			want:  `L58:"0xHcafe=102":"0=1":"1=1":"M:0xX34440*2":SCORE:Lb2:Desc2:1`,
		},
		{
			name:  "set id",
			input: `L5|7:"0xH1=1":"0=1":"1=1":"M:0xH2":FRAMES:Lb:Desc:0`,
			want:  `L5|7:"0xH1=1":"0=1":"1=1":"M:0xH2":FRAMES:Lb:Desc:0`,
		},
		{
			name:  "legacy value is converted",
			input: `L5:"0xH1=1":"0=1":"1=1":"0xX10*2_0xH20":VALUE:Lb:Desc:0`,
			want:  `L5:"0xH1=1":"0=1":"1=1":"A:0xX10*2_M:0xH20":VALUE:Lb:Desc:0`,
		},
		{
			name:  "value alt groups",
			input: `L5:"0xH1=1":"0=1":"1=1":"M:0xH1$M:0xH2":VALUE:Lb:Desc:0`,
			want:  `L5:"0xH1=1":"0=1":"1=1":"M:0xH1$M:0xH2":VALUE:Lb:Desc:0`,
		},
		{
			name:  "quoted title",
			input: `L111000001:"0xH1=1":"0=1":"1=1":"M:0xH2":SECS:"Time: fast":Desc:1`,
			want:  `L111000001:"0xH1=1":"0=1":"1=1":"M:0xH2":SECS:"Time: fast":Desc:1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := asset.ParseLeaderboard(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.String())

			again, err := asset.ParseLeaderboard(l.String())
			require.NoError(t, err)
			assert.Equal(t, l.String(), again.String())
		})
	}
}

func TestParseLeaderboard_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too few columns", `L1:"0=1":"0=1"`, "got an unexpected amount of data when parsing raw leaderboard string"},
		{"missing L prefix", `1:"0xH1=1":"0=1":"1=1":"M:0xH2":SCORE:Lb:Desc:0`, "expected leaderboard id to start with L"},
		{"bad set id", `L1|x:"0xH1=1":"0=1":"1=1":"M:0xH2":SCORE:Lb:Desc:0`, `set expected id as unsigned integer, but got "x"`},
		{"bad type", `L1:"0xH1=1":"0=1":"1=1":"M:0xH2":BOGUS:Lb:Desc:0`, `expected valid leaderboard type, but got "BOGUS"`},
		{"bad start", `L1:"0xH1=":"0=1":"1=1":"M:0xH2":SCORE:Lb:Desc:0`, "Start, Core, condition 1:"},
		{"measured percent in value", `L1:"0xH1=1":"0=1":"1=1":"G:0xH2=1":SCORE:Lb:Desc:0`, "Value, Core, condition 1: Measured% conditions are not allowed in leaderboards"},
		{"bare measured in cancel", `L1:"0xH1=1":"M:0xH1":"1=1":"M:0xH2":SCORE:Lb:Desc:0`, "Cancel, Core, condition 1: cannot have Measured condition without rvalue specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asset.ParseLeaderboard(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLeaderboard_InjectsMeasured(t *testing.T) {
	l, err := asset.NewLeaderboard(asset.LeaderboardData{
		Title: "Lb",
		Type:  asset.LeaderboardScore,
		Conditions: asset.LeaderboardConditions{
			Start:  condition.MustParseGroupSet("0xH1=1"),
			Cancel: condition.MustParseGroupSet("0=1"),
			Submit: condition.MustParseGroupSet("1=1"),
			Value:  condition.MustParseGroupSet("A:0xH2*2_0xH3=1"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "A:0xH2*2_M:0xH3=1", l.Conditions().Value.Join("$"))
	assert.Equal(t, asset.KindLeaderboard, l.Kind())
}

func TestParseLeaderboardConditions(t *testing.T) {
	c, err := asset.ParseLeaderboardConditions("STA:0xH1=1::CAN:0=1::SUB:0xH2=1::VAL:0xX10::PRO:ignored")
	require.NoError(t, err)
	assert.Equal(t, "STA:0xH1=1::CAN:0=1::SUB:0xH2=1::VAL:M:0xX10", c.String())

	_, err = asset.ParseLeaderboardConditions("STA:0xH1=1::CAN:0=1::VAL:0xX10")
	require.Error(t, err)
	assert.Equal(t, `expected "SUB:" section in leaderboard conditions`, err.Error())

	_, err = asset.ParseLeaderboardConditions("STA:0xH1=1::XYZ:1")
	require.Error(t, err)
	assert.Equal(t, `unexpected leaderboard section "XYZ:"`, err.Error())
}

func TestLeaderboard_With(t *testing.T) {
	l, err := asset.ParseLeaderboard(`L5:"0xH1=1":"0=1":"1=1":"M:0xH2":SCORE:Lb:Desc:0`)
	require.NoError(t, err)

	changed, err := l.With(func(d *asset.LeaderboardData) { d.LowerIsBetter = true })
	require.NoError(t, err)
	assert.True(t, changed.LowerIsBetter())
	assert.False(t, l.LowerIsBetter())

	_, err = l.With(func(d *asset.LeaderboardData) { d.Type = "" })
	assert.Error(t, err)
}
