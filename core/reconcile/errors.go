package reconcile

import (
	"fmt"
	"strings"

	"achievement-manager/core/asset"
)

// MatchBy names what ambiguous candidates had in common.
type MatchBy string

const (
	MatchByTitle      MatchBy = "title"
	MatchBySimilarity MatchBy = "similarity"
	MatchByCode       MatchBy = "code"
)

// AmbiguousMatchError is returned when an asset matches several candidates
// equally well. The engine never picks one of them on its own.
type AmbiguousMatchError struct {
	// Asset is the asset that was being matched.
	Asset asset.Asset

	// Pool is the collection the candidates came from: "input" or "remote".
	Pool string

	// By tells how the candidates tied.
	By MatchBy

	// Candidates lists every tied candidate.
	Candidates []asset.Asset
}

// Titles returns the titles of the tied candidates.
func (e *AmbiguousMatchError) Titles() []string {
	titles := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		titles[i] = c.Title()
	}
	return titles
}

func (e *AmbiguousMatchError) Error() string {
	source := "Asset"
	if e.Pool == poolInput {
		source = "Local asset"
	}

	switch e.By {
	case MatchByTitle:
		named := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			named[i] = fmt.Sprintf("%s (%d)", c.Title(), c.ID())
		}
		return fmt.Sprintf(
			"%s %s matched against several %s ones by title: %s; that's ambiguous. "+
				"If you absolutely need to deal with assets that have same title, rely on IDs instead.",
			source, e.Asset.Title(), e.Pool, strings.Join(named, ", "),
		)
	case MatchByCode:
		return fmt.Sprintf(
			"%s %s matched against several %s ones by having exact same code, "+
				"after failing to match by anything else, that's ambiguous. "+
				"Generally you must not have assets with same code.",
			source, e.Asset.Title(), e.Pool,
		)
	}
	return fmt.Sprintf(
		"%s %s matched against several similar %s ones: %s; that's ambiguous",
		source, e.Asset.Title(), e.Pool, strings.Join(e.Titles(), ", "),
	)
}

// IntegrityError is returned when an input asset claims a server id that the
// remote snapshot does not know.
type IntegrityError struct {
	// Asset is the input asset carrying the id.
	Asset asset.Asset

	// MatchedLocal is true when the id matched a local asset but not a remote one.
	MatchedLocal bool
}

func (e *IntegrityError) Error() string {
	if e.MatchedLocal {
		return fmt.Sprintf(
			"Input asset %s (%d) matched against local one by ID, "+
				"but there's no match by this ID against remote, that doesn't make sense. "+
				"You may need to refetch remote assets, if that doesn't help, "+
				"specify correct ID or remove asset with invalid ID from local.",
			e.Asset.Title(), e.Asset.ID(),
		)
	}
	return fmt.Sprintf(
		"Input asset %s (%d) didn't match against anything in local and remote by ID. "+
			"You may need to refetch remote assets, if that doesn't help, "+
			"specify correct ID or remove the ID.",
		e.Asset.Title(), e.Asset.ID(),
	)
}
