package state

import (
	"fmt"

	"github.com/npillmayer/uistate/attr"
)

// InvalidAttributeValue is returned if a masked attribute is present on a
// node but its value does not follow the attribute's grammar, e.g.
// width="abc". It aborts the recomputation of that node only; the node
// keeps its previous state.
type InvalidAttributeValue struct {
	Node      NodeID
	Attribute string
	Raw       string
	Err       error // underlying conversion error, wraps attr.ErrInvalidValue
}

func (e *InvalidAttributeValue) Error() string {
	return fmt.Sprintf("node #%d: invalid value %q for attribute %s", e.Node, e.Raw, e.Attribute)
}

func (e *InvalidAttributeValue) Unwrap() error {
	if e.Err == nil {
		return attr.ErrInvalidValue
	}
	return e.Err
}

// MaskContractViolation is the panic value raised when an evaluator meets
// an attribute name which its own mask admits but which it has no case
// for. This is a programming error in a mask declaration, never a
// consequence of user input.
type MaskContractViolation struct {
	Kind      Kind
	Attribute string
}

func (v MaskContractViolation) Error() string {
	return fmt.Sprintf("%s derivation: mask admits attribute %q, but evaluator cannot handle it",
		v.Kind, v.Attribute)
}

func violateMask(kind Kind, name string) {
	tracer().Errorf("mask contract violation: %s/%s", kind, name)
	panic(MaskContractViolation{Kind: kind, Attribute: name})
}
