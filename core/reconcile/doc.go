// Package reconcile merges three sources of achievement and leaderboard
// definitions into a new local cache file: the Input set the user wants, the
// Remote set the server has, and the Local file written by a previous run.
//
// # Algorithm
//
// Matching runs in two passes and every asset is consumed by at most one match.
//
// 1. Local to Input, in local file order. A local asset with a server id is
// matched to the input asset with the same id. Otherwise input candidates
// sharing its title or description are considered, the most similar one wins,
// and identical code is the last resort. Depending on the outcome the local
// line is kept, deleted (input now equals remote) or rewritten.
//
// 2. Input to Remote, for input assets not consumed by the first pass. An
// input asset with a server id must exist on remote. Others are matched by
// title, description and similarity. Assets matching nothing get the next
// local-only id.
//
// Ambiguous matches and unknown server ids abort the run with
// *AmbiguousMatchError or *IntegrityError. Unparsable local lines are passed
// through and reported as warnings.
//
// # Stability
//
// Written assets keep the id of the asset they replace, and badges already
// known to the server are not replaced by local badge files. Running
// Reconcile twice over unchanged sources renders the same file.
//
// # Usage Example
//
//	local, err := cachefile.Parse(content, cachefile.ParseOptions{})
//	transcript, err := reconcile.Reconcile(input, remote, local, reconcile.Options{})
//	report := reconcile.Classify(transcript)
//	newContent := transcript.Render(local, input.Title())
package reconcile
