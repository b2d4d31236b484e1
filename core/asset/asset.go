package asset

import (
	"fmt"
	"strconv"
	"strings"
)

// LocalIDThreshold is the first id that exists only in the local cache file.
// Ids below it have been assigned by the server.
const LocalIDThreshold = 111000001

// IsUniqueID reports whether id is server-confirmed.
func IsUniqueID(id uint32) bool {
	return id < LocalIDThreshold
}

// Kind tells the two asset variants apart.
type Kind int

const (
	KindAchievement Kind = iota
	KindLeaderboard
)

func (k Kind) String() string {
	if k == KindLeaderboard {
		return "leaderboard"
	}
	return "achievement"
}

// Plural returns "achievement"/"achievements" style wording for n items.
func (k Kind) Plural(n int) string {
	if n == 1 {
		return k.String()
	}
	return k.String() + "s"
}

// Asset is implemented by Achievement and Leaderboard only.
type Asset interface {
	// ID returns the asset id. Zero means it was never assigned.
	ID() uint32
	// Title returns the display title.
	Title() string
	// Description returns the display description.
	Description() string
	// Kind returns which variant the asset is.
	Kind() Kind
	// Code returns the canonical text of every condition group.
	Code() string
	// String returns the cache file line.
	String() string
	// WithID returns a copy with a different id.
	WithID(id uint32) Asset

	sealed()
}

// splitFields splits a colon separated line. Double quotes toggle quoting and
// \" inside quotes is a literal quote.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	quoted := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quoted && ch == '\\' && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case ch == '"':
			quoted = !quoted
		case ch == ':' && !quoted:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(fields, cur.String())
}

// quoteField wraps s in quotes when it contains a separator or a quote.
func quoteField(s string) string {
	if !strings.ContainsAny(s, `:"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("expected id as unsigned integer, but got %s", strconv.Quote(s))
	}
	return uint32(id), nil
}

func parsePoints(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected points as unsigned integer, but got %s", strconv.Quote(s))
	}
	return n, nil
}
