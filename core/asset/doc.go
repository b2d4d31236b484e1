// Package asset holds the validated achievement and leaderboard value objects
// and the Set collection that groups them by id.
//
// Assets are created either from a line of the local cache file
// (ParseAchievement, ParseLeaderboard) or from structured data
// (NewAchievement, NewLeaderboard). Both paths run the same validation and
// the result never changes afterwards: With returns a new, validated copy.
//
// Ids below LocalIDThreshold are assigned by the server. Ids at or above it
// only exist in the local cache file and are handed out by Set.
package asset
