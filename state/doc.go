/*
Package state derives per-node computed state of a retained UI tree.

Overview

Two kinds of derivations are computed for every node of a tree:

   Style    self-derived: depends on the node's own attributes only
   Size     child-aggregated: depends on the node's own attributes and
            on the already computed Size of its direct children

Each derivation kind declares an AttributeMask: the attribute names it
reads, plus wether it depends on a node's text content or its tag. A
tree-maintenance collaborator (see package statetree) uses the masks to
decide which nodes need recomputation after an edit.

Evaluators are pure. They receive a read-only view of a node, the
previously stored value and, for Size, the current Sizes of the children.
They return the new value together with a flag telling wether it differs
from the previous one. The collaborator propagates recomputation to a
parent only if a child's Size changed:

   leaf edit ──▶ EvaluateSize(leaf) ──changed?──▶ EvaluateSize(parent) ──▶ …
                                    └──unchanged──▶ stop

This package never walks a tree and never decides about batching.

Bottom-up order

EvaluateSize requires that the children's Sizes are current. This is a
precondition which is not checked here; callers which are unsure may
enable ordering checks in package statetree.

Diagnostics

Evaluators do not write to the console. Informational findings (unknown
color names) and invalid values are handed to a Diagnostics sink, which
may be nil. Evaluators read only the attributes of their own mask and skip
all others; Unread tells which attributes no derivation kind reads at all.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package state

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uistate.state'.
func tracer() tracing.Trace {
	return tracing.Select("uistate.state")
}
