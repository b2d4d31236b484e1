package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"achievement-manager/core/condition"
)

// DefaultAuthor is written when an achievement has no author.
const DefaultAuthor = "achievement-manager"

// AchievementType marks achievements that matter for set progression.
type AchievementType string

const (
	AchievementTypeNone        AchievementType = ""
	AchievementTypeMissable    AchievementType = "missable"
	AchievementTypeProgression AchievementType = "progression"
	AchievementTypeWin         AchievementType = "win_condition"
)

// Valid reports whether t is a known achievement type.
func (t AchievementType) Valid() bool {
	switch t {
	case AchievementTypeNone, AchievementTypeMissable, AchievementTypeProgression, AchievementTypeWin:
		return true
	}
	return false
}

// AchievementData is the plain shape of an achievement, validated by NewAchievement.
type AchievementData struct {
	// ID is the achievement id. Zero lets a Set assign a local-only id.
	ID uint32
	// Title must not be empty.
	Title string
	// Description may be empty.
	Description string
	// Author defaults to DefaultAuthor.
	Author string
	// Points must not be negative.
	Points int
	// Type is one of the AchievementType constants.
	Type AchievementType
	// Badge is a numeric server badge id or a local\\ file path.
	Badge string
	// Conditions holds the Core and Alt groups.
	Conditions condition.GroupSet
}

// Achievement is an immutable, validated achievement definition.
type Achievement struct {
	data AchievementData
}

var errAchievementColumns = errors.New("got an unexpected amount of data when parsing raw achievement string, either there's not enough data or it's not escaped/quoted correctly")

// NewAchievement validates d and returns the achievement.
func NewAchievement(d AchievementData) (Achievement, error) {
	if strings.TrimSpace(d.Title) == "" {
		return Achievement{}, fmt.Errorf("expected title as non-empty string, but got %s", strconv.Quote(d.Title))
	}
	if !d.Type.Valid() {
		return Achievement{}, fmt.Errorf("expected type to be one of: [missable, progression, win_condition], but got %s", strconv.Quote(string(d.Type)))
	}
	if strings.TrimSpace(d.Author) == "" {
		d.Author = DefaultAuthor
	}

	badge, err := normalizeBadge(d.Badge)
	if err != nil {
		return Achievement{}, err
	}
	d.Badge = badge

	if d.Points < 0 {
		return Achievement{}, fmt.Errorf("expected points as unsigned integer, but got %d", d.Points)
	}

	if d.Conditions.Len() == 0 {
		d.Conditions = condition.NewGroupSet(nil)
	}
	if err := validateMeasured(d.Conditions); err != nil {
		return Achievement{}, err
	}
	if err := validateMeasuredMixing(d.Conditions); err != nil {
		return Achievement{}, err
	}

	return Achievement{data: d}, nil
}

// ParseAchievement reads an achievement line of the local cache file.
func ParseAchievement(line string) (Achievement, error) {
	cols := splitFields(line)
	if len(cols) != 13 && len(cols) != 14 {
		return Achievement{}, errAchievementColumns
	}

	id, err := parseID(cols[0])
	if err != nil {
		return Achievement{}, err
	}
	conditions, err := condition.ParseGroupSet(cols[1])
	if err != nil {
		return Achievement{}, err
	}
	points, err := parsePoints(cols[8])
	if err != nil {
		return Achievement{}, err
	}

	d := AchievementData{
		ID:          id,
		Title:       cols[2],
		Description: cols[3],
		Type:        AchievementType(strings.TrimSpace(cols[6])),
		Author:      cols[7],
		Points:      points,
		Conditions:  conditions,
	}
	if len(cols) == 14 {
		d.Badge = cols[13]
	}
	return NewAchievement(d)
}

// MustAchievement is like NewAchievement but panics on error.
func MustAchievement(d AchievementData) Achievement {
	a, err := NewAchievement(d)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Achievement) ID() uint32                     { return a.data.ID }
func (a Achievement) Title() string                  { return a.data.Title }
func (a Achievement) Description() string            { return a.data.Description }
func (a Achievement) Author() string                 { return a.data.Author }
func (a Achievement) Points() int                    { return a.data.Points }
func (a Achievement) Type() AchievementType          { return a.data.Type }
func (a Achievement) Badge() string                  { return a.data.Badge }
func (a Achievement) Conditions() condition.GroupSet { return a.data.Conditions }
func (a Achievement) Kind() Kind                     { return KindAchievement }
func (a Achievement) Code() string                   { return a.data.Conditions.String() }
func (a Achievement) sealed()                        {}

// Data returns a copy of the achievement fields.
func (a Achievement) Data() AchievementData { return a.data }

// With applies patch to a copy of the fields and validates the result.
func (a Achievement) With(patch func(*AchievementData)) (Achievement, error) {
	d := a.data
	patch(&d)
	return NewAchievement(d)
}

// WithID returns a copy with a different id.
func (a Achievement) WithID(id uint32) Asset {
	d := a.data
	d.ID = id
	return Achievement{data: d}
}

// WithBadge returns a copy carrying an already normalized badge.
func (a Achievement) WithBadge(badge string) (Achievement, error) {
	return a.With(func(d *AchievementData) { d.Badge = badge })
}

// String returns the cache file line:
//
//	id:"code":title:description:::type:author:points:::::badge
func (a Achievement) String() string {
	badge := a.data.Badge
	if isLocalBadge(badge) {
		badge = `"` + badge + `"`
	}
	return strings.Join([]string{
		strconv.FormatUint(uint64(a.data.ID), 10),
		`"` + a.Code() + `"`,
		quoteField(a.data.Title),
		quoteField(a.data.Description),
		"",
		"",
		string(a.data.Type),
		quoteField(a.data.Author),
		strconv.Itoa(a.data.Points),
		"",
		"",
		"",
		"",
		badge,
	}, ":")
}
