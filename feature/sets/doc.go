// Package sets runs a full reconciliation for one game: it loads the remote
// set and the local file concurrently, reconciles them against the Input
// collection and renders the new local file.
//
// Planning never writes. Apply writes the planned local file back into
// RACache, and only when the caller confirmed it:
//
//	plan, err := svc.Plan(ctx, input, sets.PlanOptions{StrictLocal: true})
//	if err != nil {
//		return err
//	}
//	written, err := svc.Apply(ctx, plan, sets.ApplyOptions{Confirmed: true})
package sets
