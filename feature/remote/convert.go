package remote

import (
	"encoding/json"
	"fmt"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"
	"achievement-manager/core/utils"
)

// ConvertOptions controls which remote assets end up in the converted set.
type ConvertOptions struct {
	// SetID selects a specific achievement set. Zero selects the core set.
	SetID uint32
	// IncludeUnofficial keeps unofficial achievements and hidden leaderboards.
	IncludeUnofficial bool
}

// Decode reads a snapshot in either the multi-set or the legacy shape.
// Legacy snapshots become a single core set.
func Decode(data []byte) (*Snapshot, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode remote data: %w", err)
	}

	if _, ok := probe["Sets"]; ok {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to decode remote data: %w", err)
		}
		return &snap, nil
	}

	var legacy legacySnapshot
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode remote data: %w", err)
	}
	return &Snapshot{
		Success: true,
		Title:   legacy.Title,
		Sets: []Set{{
			Title:            legacy.Title,
			GameID:           legacy.ID,
			AchievementSetID: legacy.ID,
			Type:             CoreSetType,
			Achievements:     legacy.Achievements,
			Leaderboards:     legacy.Leaderboards,
		}},
	}, nil
}

// SelectSet returns the set with the given id, or the core set when setID is zero.
func (s *Snapshot) SelectSet(setID uint32) (*Set, error) {
	for i := range s.Sets {
		set := &s.Sets[i]
		if setID != 0 && set.AchievementSetID == setID {
			return set, nil
		}
		if setID == 0 && set.Type == CoreSetType {
			return set, nil
		}
	}
	if setID != 0 {
		return nil, fmt.Errorf("remote data has no achievement set with id %d", setID)
	}
	return nil, fmt.Errorf("remote data has no %s achievement set", CoreSetType)
}

// ToSet converts the selected set of the snapshot into an asset collection.
func (s *Snapshot) ToSet(gameID uint32, opts ConvertOptions) (*asset.Set, error) {
	remote, err := s.SelectSet(opts.SetID)
	if err != nil {
		return nil, err
	}

	set, err := asset.NewSet(asset.SetData{GameID: gameID, ID: opts.SetID, Title: s.Title})
	if err != nil {
		return nil, err
	}

	for i, ach := range remote.Achievements {
		if ach.Flags != FlagOfficial && ach.Flags != FlagUnofficial {
			continue
		}
		if ach.Flags == FlagUnofficial && !opts.IncludeUnofficial {
			continue
		}
		if err := addAchievement(set, ach); err != nil {
			return nil, fmt.Errorf("Achievements[%d]: %w", i, err)
		}
	}

	for i, lb := range remote.Leaderboards {
		if lb.Hidden && !opts.IncludeUnofficial {
			continue
		}
		if err := addLeaderboard(set, lb); err != nil {
			return nil, fmt.Errorf("Leaderboards[%d]: %w", i, err)
		}
	}

	return set, nil
}

func addAchievement(set *asset.Set, ach Achievement) error {
	conditions, err := condition.ParseGroupSet(ach.MemAddr)
	if err != nil {
		return err
	}
	a, err := asset.NewAchievement(asset.AchievementData{
		ID:          ach.ID,
		Title:       ach.Title,
		Description: ach.Description,
		Author:      ach.Author,
		Points:      ach.Points,
		Type:        asset.AchievementType(ach.Type),
		Badge:       ach.BadgeName,
		Conditions:  conditions,
	})
	if err != nil {
		return err
	}
	_, err = set.AddAchievement(a)
	return err
}

func addLeaderboard(set *asset.Set, lb Leaderboard) error {
	conditions, err := asset.ParseLeaderboardConditions(lb.Mem)
	if err != nil {
		return err
	}
	format := asset.LeaderboardType(lb.Format)
	if format == asset.LeaderboardTime {
		format = asset.LeaderboardFrames
	}
	l, err := asset.NewLeaderboard(asset.LeaderboardData{
		ID:            lb.ID,
		Title:         lb.Title,
		Description:   lb.Description,
		Type:          format,
		LowerIsBetter: utils.ToBool(lb.LowerIsBetter),
		Conditions:    conditions,
	})
	if err != nil {
		return err
	}
	_, err = set.AddLeaderboard(l)
	return err
}
