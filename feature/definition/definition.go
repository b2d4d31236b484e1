package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"achievement-manager/core/asset"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is a decoded definition file.
type File struct {
	GameID       uint32           `yaml:"gameId"`
	SetID        uint32           `yaml:"setId"`
	Title        string           `yaml:"title"`
	Achievements []AchievementDef `yaml:"achievements"`
	Leaderboards []LeaderboardDef `yaml:"leaderboards"`
}

// AchievementDef is one achievement of a definition file.
type AchievementDef struct {
	ID          uint32     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Points      int        `yaml:"points"`
	Type        string     `yaml:"type"`
	Author      string     `yaml:"author"`
	Badge       string     `yaml:"badge"`
	Conditions  Conditions `yaml:"conditions"`
}

// LeaderboardDef is one leaderboard of a definition file.
type LeaderboardDef struct {
	ID            uint32                `yaml:"id"`
	Title         string                `yaml:"title"`
	Description   string                `yaml:"description"`
	Type          string                `yaml:"type"`
	LowerIsBetter bool                  `yaml:"lowerIsBetter"`
	Conditions    LeaderboardConditions `yaml:"conditions"`
}

// Load reads and decodes the definition file at path.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a definition. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("definition is empty")
		}
		return nil, err
	}
	if f.GameID == 0 {
		return nil, errors.New("expected gameId as positive integer")
	}
	return &f, nil
}

// ToSet builds the Input collection. Assets without an id get local-only ids
// in file order.
func (f *File) ToSet() (*asset.Set, error) {
	set, err := asset.NewSet(asset.SetData{GameID: f.GameID, ID: f.SetID, Title: f.Title})
	if err != nil {
		return nil, err
	}

	for i, def := range f.Achievements {
		a, err := asset.NewAchievement(asset.AchievementData{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Author:      def.Author,
			Points:      def.Points,
			Type:        asset.AchievementType(def.Type),
			Badge:       def.Badge,
			Conditions:  def.Conditions.Set,
		})
		if err == nil {
			_, err = set.AddAchievement(a)
		}
		if err != nil {
			return nil, fmt.Errorf("achievements[%d] %s: %w", i, strconv.Quote(def.Title), err)
		}
	}

	for i, def := range f.Leaderboards {
		l, err := asset.NewLeaderboard(asset.LeaderboardData{
			ID:            def.ID,
			Title:         def.Title,
			Description:   def.Description,
			Type:          asset.LeaderboardType(def.Type),
			LowerIsBetter: def.LowerIsBetter,
			Conditions:    def.Conditions.LeaderboardConditions,
		})
		if err == nil {
			_, err = set.AddLeaderboard(l)
		}
		if err != nil {
			return nil, fmt.Errorf("leaderboards[%d] %s: %w", i, strconv.Quote(def.Title), err)
		}
	}

	return set, nil
}

// LoadSet is Load followed by ToSet.
func LoadSet(fs afero.Fs, path string) (*asset.Set, error) {
	f, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	set, err := f.ToSet()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

