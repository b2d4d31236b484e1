package reconcile

import (
	"fmt"

	"achievement-manager/core/asset"
)

// comparison holds the five attributes two assets of the same kind are
// compared by. For leaderboards "points" means lowerIsBetter.
type comparison struct {
	title       bool
	description bool
	points      bool
	kind        bool
	code        bool
}

func compare(a, b asset.Asset) comparison {
	c := comparison{
		title:       a.Title() == b.Title(),
		description: a.Description() == b.Description(),
		code:        a.Code() == b.Code(),
	}

	switch x := a.(type) {
	case asset.Achievement:
		y, ok := b.(asset.Achievement)
		if !ok {
			panic(fmt.Sprintf("reconcile: cannot compare achievement with %s", b.Kind()))
		}
		c.points = x.Points() == y.Points()
		c.kind = x.Type() == y.Type()
	case asset.Leaderboard:
		y, ok := b.(asset.Leaderboard)
		if !ok {
			panic(fmt.Sprintf("reconcile: cannot compare leaderboard with %s", b.Kind()))
		}
		c.points = x.LowerIsBetter() == y.LowerIsBetter()
		c.kind = x.Type() == y.Type()
	}
	return c
}

func (c comparison) same() bool {
	return c.title && c.description && c.points && c.kind && c.code
}

func (c comparison) similarity() int {
	n := 0
	for _, v := range []bool{c.title, c.description, c.points, c.kind, c.code} {
		if v {
			n++
		}
	}
	return n
}

func badgeOf(a asset.Asset) (string, bool) {
	ach, ok := a.(asset.Achievement)
	if !ok {
		return "", false
	}
	return ach.Badge(), true
}

// badgeOwedAgainstRemote reports whether the input badge should replace the
// remote one. A local\\ path never replaces a badge the server already has.
func badgeOwedAgainstRemote(remote, input asset.Asset) bool {
	old, ok := badgeOf(remote)
	if !ok {
		return false
	}
	next, ok := badgeOf(input)
	if !ok {
		return false
	}

	if asset.BadgeIsUnset(old) && asset.BadgeIsSet(next) {
		return true
	}
	return asset.BadgeIsSetByID(next) && next != old
}

// badgeOwedAgainstLocal reports whether the local badge differs from the input one.
func badgeOwedAgainstLocal(local, input asset.Asset) bool {
	old, ok := badgeOf(local)
	if !ok {
		return false
	}
	next, ok := badgeOf(input)
	return ok && old != next
}
