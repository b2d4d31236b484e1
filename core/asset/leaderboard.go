package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"achievement-manager/core/condition"
)

// LeaderboardType selects how the leaderboard value is formatted.
type LeaderboardType string

const (
	LeaderboardScore      LeaderboardType = "SCORE"
	LeaderboardTime       LeaderboardType = "TIME"
	LeaderboardFrames     LeaderboardType = "FRAMES"
	LeaderboardMillisecs  LeaderboardType = "MILLISECS"
	LeaderboardSecs       LeaderboardType = "SECS"
	LeaderboardTimeSecs   LeaderboardType = "TIMESECS"
	LeaderboardMinutes    LeaderboardType = "MINUTES"
	LeaderboardSecsAsMins LeaderboardType = "SECS_AS_MINS"
	LeaderboardValue      LeaderboardType = "VALUE"
	LeaderboardUnsigned   LeaderboardType = "UNSIGNED"
	LeaderboardTens       LeaderboardType = "TENS"
	LeaderboardHundreds   LeaderboardType = "HUNDREDS"
	LeaderboardThousands  LeaderboardType = "THOUSANDS"
	LeaderboardFixed1     LeaderboardType = "FIXED1"
	LeaderboardFixed2     LeaderboardType = "FIXED2"
	LeaderboardFixed3     LeaderboardType = "FIXED3"
)

var leaderboardTypes = []LeaderboardType{
	LeaderboardScore, LeaderboardTime, LeaderboardFrames, LeaderboardMillisecs,
	LeaderboardSecs, LeaderboardTimeSecs, LeaderboardMinutes, LeaderboardSecsAsMins,
	LeaderboardValue, LeaderboardUnsigned, LeaderboardTens, LeaderboardHundreds,
	LeaderboardThousands, LeaderboardFixed1, LeaderboardFixed2, LeaderboardFixed3,
}

// Valid reports whether t is a known leaderboard format.
func (t LeaderboardType) Valid() bool {
	for _, known := range leaderboardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LeaderboardConditions holds the four group sets of a leaderboard.
type LeaderboardConditions struct {
	Start  condition.GroupSet
	Cancel condition.GroupSet
	Submit condition.GroupSet
	Value  condition.GroupSet
}

// String renders the conditions in the STA:...::CAN:...::SUB:...::VAL:... form.
func (c LeaderboardConditions) String() string {
	return "STA:" + c.Start.String() +
		"::CAN:" + c.Cancel.String() +
		"::SUB:" + c.Submit.String() +
		"::VAL:" + c.Value.Join("$")
}

// ParseLeaderboardConditions reads the STA:...::CAN:...::SUB:...::VAL:... form
// used by the server and by older definitions. A PRO: section is ignored.
func ParseLeaderboardConditions(s string) (LeaderboardConditions, error) {
	sections := map[string]string{}
	for _, part := range strings.Split(s, "::") {
		if len(part) < 4 || part[3] != ':' {
			return LeaderboardConditions{}, fmt.Errorf("expected leaderboard section like \"STA:\", but got %s", strconv.Quote(part))
		}
		key := strings.ToUpper(part[:3])
		switch key {
		case "STA", "CAN", "SUB", "VAL":
			sections[key] = part[4:]
		case "PRO":
		default:
			return LeaderboardConditions{}, fmt.Errorf("unexpected leaderboard section %s", strconv.Quote(part[:4]))
		}
	}

	for _, key := range []string{"STA", "CAN", "SUB", "VAL"} {
		if _, ok := sections[key]; !ok {
			return LeaderboardConditions{}, fmt.Errorf("expected %s section in leaderboard conditions", strconv.Quote(key+":"))
		}
	}

	return parseLeaderboardGroups(sections["STA"], sections["CAN"], sections["SUB"], sections["VAL"])
}

func parseLeaderboardGroups(start, cancel, submit, value string) (LeaderboardConditions, error) {
	var out LeaderboardConditions
	var err error
	if out.Start, err = condition.ParseGroupSet(start); err != nil {
		return out, fmt.Errorf("Start, %w", err)
	}
	if out.Cancel, err = condition.ParseGroupSet(cancel); err != nil {
		return out, fmt.Errorf("Cancel, %w", err)
	}
	if out.Submit, err = condition.ParseGroupSet(submit); err != nil {
		return out, fmt.Errorf("Submit, %w", err)
	}
	if out.Value, err = condition.ParseGroupSet(value, condition.LegacyValueFormat()); err != nil {
		return out, fmt.Errorf("Value, %w", err)
	}
	return out, nil
}

// LeaderboardData is the plain shape of a leaderboard, validated by NewLeaderboard.
type LeaderboardData struct {
	// ID is the leaderboard id. Zero lets a Set assign a local-only id.
	ID uint32
	// SetID optionally ties the leaderboard to an achievement set. Zero means none.
	SetID uint32
	Title       string
	Description string
	Type        LeaderboardType
	// LowerIsBetter inverts the ranking.
	LowerIsBetter bool
	Conditions    LeaderboardConditions
}

// Leaderboard is an immutable, validated leaderboard definition.
type Leaderboard struct {
	data LeaderboardData
}

var errLeaderboardColumns = errors.New("got an unexpected amount of data when parsing raw leaderboard string, either there's not enough data or it's not escaped/quoted correctly")

// NewLeaderboard validates d and returns the leaderboard.
func NewLeaderboard(d LeaderboardData) (Leaderboard, error) {
	if strings.TrimSpace(d.Title) == "" {
		return Leaderboard{}, fmt.Errorf("expected title as non-empty string, but got %s", strconv.Quote(d.Title))
	}
	if !d.Type.Valid() {
		return Leaderboard{}, fmt.Errorf("expected valid leaderboard type, but got %s", strconv.Quote(string(d.Type)))
	}

	c := &d.Conditions
	for _, set := range []*condition.GroupSet{&c.Start, &c.Cancel, &c.Submit, &c.Value} {
		if set.Len() == 0 {
			*set = condition.NewGroupSet(nil)
		}
	}

	value, err := injectMeasured(c.Value)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("Value, %w", err)
	}
	c.Value = value

	named := []struct {
		name string
		set  condition.GroupSet
	}{
		{"Start", c.Start},
		{"Cancel", c.Cancel},
		{"Submit", c.Submit},
	}
	for _, n := range named {
		if err := validateMeasured(n.set); err != nil {
			return Leaderboard{}, fmt.Errorf("%s, %w", n.name, err)
		}
	}
	for _, n := range append(named, struct {
		name string
		set  condition.GroupSet
	}{"Value", c.Value}) {
		if err := validateNoMeasuredPercent(n.set); err != nil {
			return Leaderboard{}, fmt.Errorf("%s, %w", n.name, err)
		}
	}

	return Leaderboard{data: d}, nil
}

// ParseLeaderboard reads a leaderboard line of the local cache file.
func ParseLeaderboard(line string) (Leaderboard, error) {
	cols := splitFields(line)
	if len(cols) != 9 {
		return Leaderboard{}, errLeaderboardColumns
	}

	head := cols[0]
	if !strings.HasPrefix(head, "L") {
		return Leaderboard{}, fmt.Errorf("expected leaderboard id to start with L, but got %s", strconv.Quote(head))
	}
	idPart, setPart, hasSet := strings.Cut(head[1:], "|")
	id, err := parseID(idPart)
	if err != nil {
		return Leaderboard{}, err
	}
	var setID uint32
	if hasSet {
		if setID, err = parseID(setPart); err != nil {
			return Leaderboard{}, fmt.Errorf("set %w", err)
		}
	}

	conditions, err := parseLeaderboardGroups(cols[1], cols[2], cols[3], cols[4])
	if err != nil {
		return Leaderboard{}, err
	}

	return NewLeaderboard(LeaderboardData{
		ID:            id,
		SetID:         setID,
		Type:          LeaderboardType(cols[5]),
		Title:         cols[6],
		Description:   cols[7],
		LowerIsBetter: cols[8] != "" && cols[8] != "0",
		Conditions:    conditions,
	})
}

// MustLeaderboard is like NewLeaderboard but panics on error.
func MustLeaderboard(d LeaderboardData) Leaderboard {
	l, err := NewLeaderboard(d)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Leaderboard) ID() uint32                        { return l.data.ID }
func (l Leaderboard) SetID() uint32                     { return l.data.SetID }
func (l Leaderboard) Title() string                     { return l.data.Title }
func (l Leaderboard) Description() string               { return l.data.Description }
func (l Leaderboard) Type() LeaderboardType             { return l.data.Type }
func (l Leaderboard) LowerIsBetter() bool               { return l.data.LowerIsBetter }
func (l Leaderboard) Conditions() LeaderboardConditions { return l.data.Conditions }
func (l Leaderboard) Kind() Kind                        { return KindLeaderboard }
func (l Leaderboard) Code() string                      { return l.data.Conditions.String() }
func (l Leaderboard) sealed()                           {}

// Data returns a copy of the leaderboard fields.
func (l Leaderboard) Data() LeaderboardData { return l.data }

// With applies patch to a copy of the fields and validates the result.
func (l Leaderboard) With(patch func(*LeaderboardData)) (Leaderboard, error) {
	d := l.data
	patch(&d)
	return NewLeaderboard(d)
}

// WithID returns a copy with a different id.
func (l Leaderboard) WithID(id uint32) Asset {
	d := l.data
	d.ID = id
	return Leaderboard{data: d}
}

// String returns the cache file line:
//
//	L<id>[|setId]:"start":"cancel":"submit":"value":type:title:description:lowerIsBetter
func (l Leaderboard) String() string {
	head := "L" + strconv.FormatUint(uint64(l.data.ID), 10)
	if l.data.SetID != 0 {
		head += "|" + strconv.FormatUint(uint64(l.data.SetID), 10)
	}
	lower := "0"
	if l.data.LowerIsBetter {
		lower = "1"
	}
	c := l.data.Conditions
	return strings.Join([]string{
		head,
		`"` + c.Start.String() + `"`,
		`"` + c.Cancel.String() + `"`,
		`"` + c.Submit.String() + `"`,
		`"` + c.Value.Join("$") + `"`,
		string(l.data.Type),
		quoteField(l.data.Title),
		quoteField(l.data.Description),
		lower,
	}, ":")
}
