package reconcile

import (
	"sort"

	"achievement-manager/core/asset"
)

const (
	poolInput  = "input"
	poolRemote = "remote"
)

// pool is an ordered collection of assets where each asset can be taken by
// at most one match.
type pool struct {
	name   string
	assets []asset.Asset
	taken  []bool
}

func newPool(name string, assets []asset.Asset) *pool {
	return &pool{name: name, assets: assets, taken: make([]bool, len(assets))}
}

// each calls fn for every untaken asset of the given kind, in order.
func (p *pool) each(kind asset.Kind, fn func(i int, a asset.Asset)) {
	for i, a := range p.assets {
		if !p.taken[i] && a.Kind() == kind {
			fn(i, a)
		}
	}
}

func (p *pool) byID(a asset.Asset) (int, bool) {
	for i, candidate := range p.assets {
		if !p.taken[i] && candidate.Kind() == a.Kind() && candidate.ID() == a.ID() {
			return i, true
		}
	}
	return -1, false
}

func (p *pool) take(i int) asset.Asset {
	p.taken[i] = true
	return p.assets[i]
}

func (p *pool) remaining() []asset.Asset {
	var out []asset.Asset
	for i, a := range p.assets {
		if !p.taken[i] {
			out = append(out, a)
		}
	}
	return out
}

func (p *pool) pick(idxs []int) []asset.Asset {
	out := make([]asset.Asset, len(idxs))
	for i, idx := range idxs {
		out[i] = p.assets[idx]
	}
	return out
}

// match is the outcome of matching one asset.
type match struct {
	action ActionType
	// asset is the input asset to write.
	asset asset.Asset
	// old is the asset being replaced. Nil for brand-new assets.
	old asset.Asset
	// preserveBadge carries the badge of old over to the written asset.
	preserveBadge bool
	reason        string
}

type matcher struct {
	input  *pool
	remote *pool
}

func newMatcher(input, remote []asset.Asset) *matcher {
	// Assets with server ids are matched first.
	ordered := append([]asset.Asset(nil), input...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return asset.IsUniqueID(ordered[i].ID()) && !asset.IsUniqueID(ordered[j].ID())
	})
	return &matcher{
		input:  newPool(poolInput, ordered),
		remote: newPool(poolRemote, remote),
	}
}

func (m *matcher) localByID(local asset.Asset) (match, error) {
	if !asset.IsUniqueID(local.ID()) {
		return match{action: actionNext}, nil
	}
	i, ok := m.input.byID(local)
	if !ok {
		return match{action: actionNext}, nil
	}
	input := m.input.take(i)

	if compare(local, input).same() && !badgeOwedAgainstLocal(local, input) {
		return match{action: ActionKeep, reason: "identical to input"}, nil
	}

	j, ok := m.remote.byID(input)
	if !ok {
		return match{}, &IntegrityError{Asset: input, MatchedLocal: true}
	}
	remote := m.remote.take(j)

	keepBadge := !badgeOwedAgainstRemote(remote, input)
	if compare(input, remote).same() && keepBadge {
		return match{action: ActionDelete, reason: "input matches remote"}, nil
	}
	return match{
		action:        ActionWrite,
		asset:         input,
		old:           local,
		preserveBadge: keepBadge,
		reason:        "input differs from local",
	}, nil
}

// candidatesByText returns untaken assets sharing the title or the description of a.
// With titleCollision set, two candidates sharing a title is an error.
func (m *matcher) candidatesByText(p *pool, a asset.Asset, titleCollision bool) ([]int, error) {
	var idxs []int
	byTitle := map[string][]int{}
	var collision []int

	p.each(a.Kind(), func(i int, candidate asset.Asset) {
		c := compare(a, candidate)
		if !c.title && !c.description {
			return
		}
		byTitle[candidate.Title()] = append(byTitle[candidate.Title()], i)
		if collision == nil && len(byTitle[candidate.Title()]) > 1 {
			collision = byTitle[candidate.Title()]
		}
		idxs = append(idxs, i)
	})

	if titleCollision && collision != nil {
		return nil, &AmbiguousMatchError{Asset: a, Pool: p.name, By: MatchByTitle, Candidates: p.pick(collision)}
	}
	return idxs, nil
}

// minSimilarity is the number of equal attributes, out of five, a candidate
// needs to be considered by mostSimilar.
const minSimilarity = 3

// mostSimilar picks the candidate with the highest similarity to a. Ties fail.
// It returns -1 when no candidate reaches minSimilarity.
func (m *matcher) mostSimilar(p *pool, idxs []int, a asset.Asset) (int, error) {
	best := -1
	var tied []int
	for _, i := range idxs {
		score := compare(p.assets[i], a).similarity()
		switch {
		case score < minSimilarity:
		case score > best:
			best = score
			tied = []int{i}
		case score == best:
			tied = append(tied, i)
		}
	}
	switch len(tied) {
	case 0:
		return -1, nil
	case 1:
		return tied[0], nil
	}
	return -1, &AmbiguousMatchError{Asset: a, Pool: p.name, By: MatchBySimilarity, Candidates: p.pick(tied)}
}

// inputByCode is the last resort for a local asset: the one input asset with
// exactly the same code.
func (m *matcher) inputByCode(local asset.Asset) (int, error) {
	var idxs []int
	m.input.each(local.Kind(), func(i int, candidate asset.Asset) {
		if candidate.Code() == local.Code() {
			idxs = append(idxs, i)
		}
	})
	switch len(idxs) {
	case 0:
		return -1, nil
	case 1:
		return idxs[0], nil
	}
	return -1, &AmbiguousMatchError{Asset: local, Pool: poolInput, By: MatchByCode, Candidates: m.input.pick(idxs)}
}

// localToInput matches a local asset against the input pool.
func (m *matcher) localToInput(local asset.Asset) (match, error) {
	res, err := m.localByID(local)
	if err != nil || res.action != actionNext {
		return res, err
	}

	idxs, err := m.candidatesByText(m.input, local, true)
	if err != nil {
		return match{}, err
	}

	idx := -1
	switch {
	case len(idxs) > 1:
		idx, err = m.mostSimilar(m.input, idxs, local)
	case len(idxs) == 1:
		idx = idxs[0]
	}
	if err == nil && idx < 0 {
		idx, err = m.inputByCode(local)
	}
	if err != nil {
		return match{}, err
	}
	if idx < 0 {
		return match{action: ActionKeep, reason: "no input match"}, nil
	}

	input := m.input.take(idx)
	if compare(input, local).same() && !badgeOwedAgainstLocal(local, input) {
		return match{action: ActionKeep, reason: "identical to input"}, nil
	}

	_, isAchievement := input.(asset.Achievement)
	badge, _ := badgeOf(input)
	return match{
		action:        ActionWrite,
		asset:         input,
		old:           local,
		preserveBadge: asset.IsUniqueID(local.ID()) && isAchievement && !asset.BadgeIsSet(badge),
		reason:        "input differs from local",
	}, nil
}

// inputToRemote matches an input asset left over from the local pass against remote.
func (m *matcher) inputToRemote(input asset.Asset) (match, error) {
	idx := -1
	if asset.IsUniqueID(input.ID()) {
		i, ok := m.remote.byID(input)
		if !ok {
			return match{}, &IntegrityError{Asset: input}
		}
		idx = i
	} else {
		idxs, err := m.candidatesByText(m.remote, input, false)
		if err != nil {
			return match{}, err
		}
		switch {
		case len(idxs) > 1:
			if idx, err = m.mostSimilar(m.remote, idxs, input); err != nil {
				return match{}, err
			}
		case len(idxs) == 1:
			idx = idxs[0]
		}
	}

	if idx < 0 {
		return match{action: ActionWrite, asset: input, reason: "new asset"}, nil
	}

	remote := m.remote.take(idx)
	owed := badgeOwedAgainstRemote(remote, input)
	if compare(remote, input).same() && !owed {
		return match{action: ActionSkip, reason: "input matches remote"}, nil
	}
	return match{
		action:        ActionWrite,
		asset:         input,
		old:           remote,
		preserveBadge: !owed,
		reason:        "input differs from remote",
	}, nil
}
