// Package cachefile reads and writes the local cache file of a game,
// RACache/Data/<gameId>-User.txt.
//
// The first line is a version and the second a title, both echoed back as
// they are. Every other line is blank, a code note (N0:), an achievement or a
// leaderboard (L prefix). Lines that fail to parse are kept with their error
// so nothing the user wrote gets lost.
package cachefile
