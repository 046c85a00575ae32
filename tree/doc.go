/*
Package tree implements an all-purpose ordered tree type.

Nodes carry a payload of a type parameter and maintain an ordered slice of
children. Sub-types of trees (e.g. the state tree of package statetree)
embed a tree.Node and let the payload reference the embedding node
itself:

   type StyledNode struct {
       tree.Node[*StyledNode]
       …
   }
   sn := &StyledNode{}
   sn.Payload = sn

Mutations of the children slice are concurrency-safe. Traversal with
TopDown is synchronous, parents are always visited before their children.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uistate.tree'.
func tracer() tracing.Trace {
	return tracing.Select("uistate.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("tree: "+msg, msgargs...)
		panic(msg)
	}
}
