/*
Package attr converts raw node attributes into typed values.

Overview

Nodes of a UI tree carry an ordered list of attributes, each a name and
a raw string value. The derivations of package state need typed values:
sizing modes, integers, padding and colors. Type Value wraps the raw
string and offers conversions for each of the recognized grammars:

   width, height   "stretch" | "auto" | <int>% | <int>
   padding         <int>            (split evenly, halved, onto 4 sides)
   overflow        <int>
   background      red | green | blue | yellow | black | gray

Integers are signed 32-bit decimals. Conversions which fail wrap
ErrInvalidValue. Color names are different: an unknown name is not an
error but simply no match, which is why Value.Color returns a
maybe.Maybe.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package attr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uistate.attr'.
func tracer() tracing.Trace {
	return tracing.Select("uistate.attr")
}
