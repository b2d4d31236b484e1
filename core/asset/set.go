package asset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SetData identifies the game an asset Set belongs to.
type SetData struct {
	GameID uint32
	// ID is the achievement set id on the server. Zero means the core set.
	ID    uint32
	Title string
}

// Set is a collection of achievements and leaderboards keyed by id.
// Assets added without an id receive local-only ids starting at LocalIDThreshold.
type Set struct {
	data SetData

	achievements map[uint32]Achievement
	leaderboards map[uint32]Leaderboard

	achievementCounter uint32
	leaderboardCounter uint32
}

// NewSet creates an empty collection for a game.
func NewSet(d SetData) (*Set, error) {
	if d.GameID == 0 {
		return nil, fmt.Errorf("expected gameId as positive integer, but got %d", d.GameID)
	}
	return &Set{
		data:               d,
		achievements:       map[uint32]Achievement{},
		leaderboards:       map[uint32]Leaderboard{},
		achievementCounter: LocalIDThreshold,
		leaderboardCounter: LocalIDThreshold,
	}, nil
}

func (s *Set) GameID() uint32 { return s.data.GameID }
func (s *Set) ID() uint32     { return s.data.ID }
func (s *Set) Title() string  { return s.data.Title }

// AddAchievement stores a, assigning the next local-only id when a has none.
func (s *Set) AddAchievement(a Achievement) (Achievement, error) {
	if a.ID() == 0 {
		a = a.WithID(s.achievementCounter).(Achievement)
	}
	if existing, ok := s.achievements[a.ID()]; ok {
		return a, fmt.Errorf("achievement with id %d: %s, already exists", a.ID(), strconv.Quote(existing.Title()))
	}
	s.achievements[a.ID()] = a
	s.achievementCounter = bump(s.achievementCounter, a.ID())
	return a, nil
}

// AddLeaderboard stores l, assigning the next local-only id when l has none.
func (s *Set) AddLeaderboard(l Leaderboard) (Leaderboard, error) {
	if l.ID() == 0 {
		l = l.WithID(s.leaderboardCounter).(Leaderboard)
	}
	if existing, ok := s.leaderboards[l.ID()]; ok {
		return l, fmt.Errorf("leaderboard with id %d: %s, already exists", l.ID(), strconv.Quote(existing.Title()))
	}
	s.leaderboards[l.ID()] = l
	s.leaderboardCounter = bump(s.leaderboardCounter, l.ID())
	return l, nil
}

// Add stores either asset variant.
func (s *Set) Add(a Asset) (Asset, error) {
	switch v := a.(type) {
	case Achievement:
		return s.AddAchievement(v)
	case Leaderboard:
		return s.AddLeaderboard(v)
	}
	return nil, fmt.Errorf("unexpected asset %T", a)
}

func bump(counter, id uint32) uint32 {
	if id < counter {
		return counter
	}
	if id == math.MaxUint32 {
		return id
	}
	return id + 1
}

// Achievement looks up an achievement by id.
func (s *Set) Achievement(id uint32) (Achievement, bool) {
	a, ok := s.achievements[id]
	return a, ok
}

// Leaderboard looks up a leaderboard by id.
func (s *Set) Leaderboard(id uint32) (Leaderboard, bool) {
	l, ok := s.leaderboards[id]
	return l, ok
}

// Achievements returns every achievement in ascending id order.
func (s *Set) Achievements() []Achievement {
	out := make([]Achievement, 0, len(s.achievements))
	for _, id := range sortedKeys(s.achievements) {
		out = append(out, s.achievements[id])
	}
	return out
}

// Leaderboards returns every leaderboard in ascending id order.
func (s *Set) Leaderboards() []Leaderboard {
	out := make([]Leaderboard, 0, len(s.leaderboards))
	for _, id := range sortedKeys(s.leaderboards) {
		out = append(out, s.leaderboards[id])
	}
	return out
}

// Assets returns achievements followed by leaderboards.
func (s *Set) Assets() []Asset {
	out := make([]Asset, 0, s.Len())
	for _, a := range s.Achievements() {
		out = append(out, a)
	}
	for _, l := range s.Leaderboards() {
		out = append(out, l)
	}
	return out
}

// Len returns the total number of assets.
func (s *Set) Len() int {
	return len(s.achievements) + len(s.leaderboards)
}

// String renders the set as a complete local cache file.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("1.0\n")
	b.WriteString(s.data.Title + "\n")
	for _, a := range s.Assets() {
		b.WriteString(a.String() + "\n")
	}
	return b.String()
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
