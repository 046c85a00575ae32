/*
Package statetree maintains a tree of styled nodes and keeps their
computed state up to date.

A Tree owns its nodes. Clients mutate nodes through the tree (attributes,
text, tag and structure); every mutation consults the attribute masks of
the derivation kinds of package state and marks the affected kinds of a
node as pending. Update then runs one update batch:

  - self-derived kinds (Style) are re-evaluated once for every pending node;
  - child-aggregated kinds (Size) are re-evaluated bottom-up, deepest nodes
    first. A parent is scheduled only if the evaluation of one of its
    children reported a change, so propagation stops at the first
    ancestor whose state did not change.

Every node is evaluated at most once per kind and batch. The ordering
precondition of state.EvaluateSize (children before parents) is guaranteed
by the scheduler; WithOrderingChecks turns on assertions which verify it at
runtime.

A Tree is not safe for concurrent use. Clients have to serialize mutations
and updates.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package statetree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uistate.statetree'.
func tracer() tracing.Trace {
	return tracing.Select("uistate.statetree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("statetree: "+msg, msgargs...)
		panic(msg)
	}
}
