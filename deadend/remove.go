package deadend

import (
	"github.com/katalvlaran/metavuln/core"
)

// Remove prunes dead ends from n in place until nothing more can be removed.
//
// Implementation:
//   - Stage 1: Decide which reactions are protected, from the network as it
//     is before any deletion.
//   - Stage 2: Each pass deletes the current dead-end metabolites, then every
//     unprotected reaction left without reactants or without products.
//   - Stage 3: Repeat while the pass deleted anything, then recompute the
//     final dead-end map.
//
// Protection policy:
//   - DeleteBoundary, or a network with no boundary reactions: none.
//   - KeepIncomplete: reactions incomplete before the first pass.
//   - Otherwise: boundary reactions present before the first pass.
//
// Each deletion is a single atomic Network call, so cancellation (checked
// between passes) leaves a consistent, partially pruned network and the
// Report of the passes that completed.
//
// Complexity: O(P · (nnz(S) + R)) for P passes; P <= M + R + 1.
func Remove(n *core.Network, opts ...Option) (*Report, error) {
	if n == nil {
		return nil, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Stage 1: protected reactions
	protected := make(map[string]struct{})
	boundary := n.BoundaryReactions()
	if !o.DeleteBoundary && len(boundary) > 0 {
		seed := boundary
		if o.KeepIncomplete {
			seed = n.IncompleteReactions()
		}
		for _, id := range seed {
			protected[id] = struct{}{}
		}
	}

	rep := &Report{RemovedMetabolites: []string{}, RemovedReactions: []string{}}
	for {
		// Stage 2: one pass
		if err := o.Ctx.Err(); err != nil {
			rep.Final = Find(n, All)
			return rep, err
		}
		rep.Passes++

		dem := Find(n, All).Metabolites()
		if err := n.RemoveMetabolites(dem...); err != nil {
			return rep, err
		}

		var stranded []string
		for _, id := range n.IncompleteReactions() {
			if _, keep := protected[id]; !keep {
				stranded = append(stranded, id)
			}
		}
		if err := n.RemoveReactions(stranded...); err != nil {
			return rep, err
		}

		rep.RemovedMetabolites = append(rep.RemovedMetabolites, dem...)
		rep.RemovedReactions = append(rep.RemovedReactions, stranded...)
		o.Logger.Debug("dead-end pass",
			"pass", rep.Passes,
			"metabolites_removed", len(dem),
			"reactions_removed", len(stranded),
			"metabolites_left", n.MetaboliteCount())
		if o.OnPass != nil {
			o.OnPass(rep.Passes, dem, stranded)
		}

		// Stage 3: fixed point
		if len(dem) == 0 && len(stranded) == 0 {
			break
		}
	}
	rep.Final = Find(n, All)

	return rep, nil
}
