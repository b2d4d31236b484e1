package api

import (
	"achievement-manager/core/asset"
	"achievement-manager/core/reconcile"
)

// AssetSummary is the JSON shape of a single asset.
type AssetSummary struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points,omitempty"`
	Type        string `json:"type,omitempty"`
}

// RemoteResponse summarizes the remote set of a game.
type RemoteResponse struct {
	GameID       uint32         `json:"gameId"`
	SetID        uint32         `json:"setId,omitempty"`
	Title        string         `json:"title"`
	Achievements []AssetSummary `json:"achievements"`
	Leaderboards []AssetSummary `json:"leaderboards"`
}

// ChangeSummary is an updated asset of a diff.
type ChangeSummary struct {
	Kind    string `json:"kind"`
	ID      uint32 `json:"id"`
	Title   string `json:"title"`
	Context string `json:"context"`
}

// DiffResponse is the classified outcome of a planned reconciliation.
type DiffResponse struct {
	GameID          uint32             `json:"gameId"`
	HasChanges      bool               `json:"hasChanges"`
	Stats           []string           `json:"stats"`
	NewAchievements []string           `json:"newAchievements"`
	NewLeaderboards []string           `json:"newLeaderboards"`
	Updated         []ChangeSummary    `json:"updated"`
	Removed         map[string]int     `json:"removed"`
	Summary         reconcile.Summary  `json:"summary"`
	Actions         []reconcile.Action `json:"actions"`
	Warnings        []string           `json:"warnings"`
	Lint            []string           `json:"lint"`
	Content         string             `json:"content"`
}

func summarize(a asset.Asset) AssetSummary {
	s := AssetSummary{ID: a.ID(), Title: a.Title(), Description: a.Description()}
	switch v := a.(type) {
	case asset.Achievement:
		s.Points = v.Points()
		s.Type = string(v.Type())
	case asset.Leaderboard:
		s.Type = string(v.Type())
	}
	return s
}

func remoteResponse(set *asset.Set) RemoteResponse {
	res := RemoteResponse{
		GameID:       set.GameID(),
		SetID:        set.ID(),
		Title:        set.Title(),
		Achievements: []AssetSummary{},
		Leaderboards: []AssetSummary{},
	}
	for _, a := range set.Achievements() {
		res.Achievements = append(res.Achievements, summarize(a))
	}
	for _, l := range set.Leaderboards() {
		res.Leaderboards = append(res.Leaderboards, summarize(l))
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
