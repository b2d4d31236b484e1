package remote

// Achievement flags used by the server.
const (
	FlagOfficial   = 3
	FlagUnofficial = 5
)

// CoreSetType marks the main achievement set of a game.
const CoreSetType = "core"

// Achievement is an achievement as served by the achievementsets request.
type Achievement struct {
	ID          uint32 `json:"ID"`
	MemAddr     string `json:"MemAddr"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Points      int    `json:"Points"`
	Author      string `json:"Author"`
	Modified    int64  `json:"Modified"`
	Created     int64  `json:"Created"`
	BadgeName   string `json:"BadgeName"`
	Flags       int    `json:"Flags"`
	Type        string `json:"Type"`
}

// Leaderboard is a leaderboard as served by the achievementsets request.
type Leaderboard struct {
	ID     uint32 `json:"ID"`
	Mem    string `json:"Mem"`
	Format string `json:"Format"`
	// LowerIsBetter is a bool or a number depending on the server version.
	LowerIsBetter any    `json:"LowerIsBetter"`
	Title         string `json:"Title"`
	Description   string `json:"Description"`
	Hidden        bool   `json:"Hidden"`
}

// Set is one achievement set of a game.
type Set struct {
	Title            string        `json:"Title"`
	GameID           uint32        `json:"GameId"`
	AchievementSetID uint32        `json:"AchievementSetId"`
	Type             string        `json:"Type"`
	Achievements     []Achievement `json:"Achievements"`
	Leaderboards     []Leaderboard `json:"Leaderboards"`
}

// Snapshot is the remote data of a game in the multi-set shape.
type Snapshot struct {
	Success bool   `json:"Success"`
	Title   string `json:"Title"`
	Sets    []Set  `json:"Sets"`
}

// legacySnapshot is the single-set shape written by older versions.
type legacySnapshot struct {
	ID           uint32        `json:"ID"`
	Title        string        `json:"Title"`
	Achievements []Achievement `json:"Achievements"`
	Leaderboards []Leaderboard `json:"Leaderboards"`
}
