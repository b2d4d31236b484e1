package condition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GroupSet is an ordered list of condition groups. Index 0 is the Core group,
// every following index is an Alt group.
type GroupSet struct {
	groups [][]Condition
}

// NewGroupSet copies the given groups into a new set. The first group is Core.
func NewGroupSet(groups ...[]Condition) GroupSet {
	out := make([][]Condition, len(groups))
	for i, g := range groups {
		out[i] = append([]Condition(nil), g...)
	}
	return GroupSet{groups: out}
}

// Len returns the number of groups, Core included.
func (g GroupSet) Len() int { return len(g.groups) }

// Group returns a copy of the conditions in group i.
func (g GroupSet) Group(i int) []Condition {
	return append([]Condition(nil), g.groups[i]...)
}

// Groups returns a copy of every group.
func (g GroupSet) Groups() [][]Condition {
	return NewGroupSet(g.groups...).groups
}

// Each calls fn for every condition, in order, with its group index.
func (g GroupSet) Each(fn func(group, index int, c Condition)) {
	for i, group := range g.groups {
		for j, c := range group {
			fn(i, j, c)
		}
	}
}

// String joins the groups with the Alt separator "S".
func (g GroupSet) String() string {
	return g.Join("S")
}

// Join renders every group and joins them with sep. Leaderboard values use "$".
func (g GroupSet) Join(sep string) string {
	parts := make([]string, len(g.groups))
	for i, group := range g.groups {
		conds := make([]string, len(group))
		for j, c := range group {
			conds[j] = c.String()
		}
		parts[i] = strings.Join(conds, "_")
	}
	return strings.Join(parts, sep)
}

// Equal reports whether both sets have the same canonical form.
func (g GroupSet) Equal(other GroupSet) bool {
	return g.String() == other.String()
}

// GroupName returns the display name of group i: "Core", "Alt 1", "Alt 2"...
func GroupName(i int) string {
	if i == 0 {
		return "Core"
	}
	return "Alt " + strconv.Itoa(i)
}

// Location prefixes err with the group and one-based condition position.
func Location(group, index int, err error) error {
	return fmt.Errorf("%s, condition %d: %w", GroupName(group), index+1, err)
}

type parseOptions struct {
	legacyValue bool
}

// ParseOption changes how ParseGroupSet reads its input.
type ParseOption func(*parseOptions)

// LegacyValueFormat reads a leaderboard value: groups are split on "$" and,
// when no condition in the whole set has a flag, every condition becomes
// AddSource with the last one of each group turned into Measured.
func LegacyValueFormat() ParseOption {
	return func(o *parseOptions) { o.legacyValue = true }
}

// ParseGroupSet reads a full group set such as "0xH1=1_0xH2=2S0xH3=3".
func ParseGroupSet(s string, opts ...ParseOption) (GroupSet, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	var raw []string
	if o.legacyValue {
		raw = strings.Split(s, "$")
	} else {
		raw = splitAlts(s)
	}

	groups := make([][]string, len(raw))
	for i, group := range raw {
		if strings.TrimSpace(group) == "" {
			groups[i] = nil
			continue
		}
		groups[i] = strings.Split(group, "_")
	}

	if o.legacyValue && isLegacyValue(groups) {
		for _, group := range groups {
			for j := range group {
				prefix := "A:"
				if j == len(group)-1 {
					prefix = "M:"
				}
				group[j] = prefix + group[j]
			}
		}
	}

	out := make([][]Condition, len(groups))
	for i, group := range groups {
		out[i] = make([]Condition, 0, len(group))
		for j, code := range group {
			c, err := Parse(code)
			if err != nil {
				return GroupSet{}, Location(i, j, err)
			}
			out[i] = append(out[i], c)
		}
	}
	return GroupSet{groups: out}, nil
}

// MustParseGroupSet is like ParseGroupSet but panics on error.
func MustParseGroupSet(s string, opts ...ParseOption) GroupSet {
	g, err := ParseGroupSet(s, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// splitAlts splits on every "S" that is not the Bit6 size letter of a "0x" address.
func splitAlts(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != 'S' {
			continue
		}
		if i >= 2 && s[i-2:i] == "0x" {
			continue
		}
		parts = append(parts, s[start:i])
		start = i + 1
	}
	return append(parts, s[start:])
}

func isLegacyValue(groups [][]string) bool {
	for _, group := range groups {
		for _, code := range group {
			if flagPattern.MatchString(strings.TrimSpace(code)) {
				return false
			}
		}
	}
	return true
}

// OrderGroupNames validates named groups ("core", "alt1", "alt2"...) and
// returns them in positional order.
func OrderGroupNames(names []string) ([]string, error) {
	hasCore := false
	var alts []string
	for _, name := range names {
		if name == "core" {
			hasCore = true
			continue
		}
		alts = append(alts, name)
	}
	if !hasCore {
		return nil, fmt.Errorf("conditions: expected %s group", quote("core"))
	}

	sort.SliceStable(alts, func(i, j int) bool {
		ni, iok := altNumber(alts[i])
		nj, jok := altNumber(alts[j])
		if iok != jok {
			return iok
		}
		if iok {
			return ni < nj
		}
		return alts[i] < alts[j]
	})

	ordered := []string{"core"}
	for i, name := range alts {
		expected := "alt" + strconv.Itoa(i+1)
		if name != expected {
			return nil, fmt.Errorf("conditions: expected %s group, but got %s, make sure there are no gaps", quote(expected), quote(name))
		}
		ordered = append(ordered, name)
	}
	return ordered, nil
}

func altNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "alt") {
		return 0, false
	}
	n, err := strconv.Atoi(name[len("alt"):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
