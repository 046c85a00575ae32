package statetree

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/npillmayer/uistate/attr"
)

// FromYAML builds a tree from a YAML document of the form
//
//	tag: div
//	attributes:
//	  width: 50%
//	  background: red
//	children:
//	  - tag: p
//	    text: Hello
//	    attributes:
//	      width: 10
//
// Attributes keep their order of appearance. Node IDs are assigned in
// pre-order, starting with 1 for the root. All state of the new tree is
// pending; call Update to compute it.
func FromYAML(data []byte, opts ...Option) (*Tree, error) {
	var root fixtureNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("statetree: cannot read fixture: %w", err)
	}
	t := New(opts...)
	n, err := t.build(&root)
	if err != nil {
		return nil, err
	}
	if err = t.SetRoot(n); err != nil {
		return nil, err
	}
	return t, nil
}

type fixtureNode struct {
	Tag        string        `yaml:"tag"`
	Text       *string       `yaml:"text"`
	Attributes attrList      `yaml:"attributes"`
	Children   []fixtureNode `yaml:"children"`
}

// attrList decodes a YAML mapping into attributes, keeping their order.
type attrList []attr.Attribute

func (l *attrList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of attribute %s must be a scalar", v.Line, k.Value)
		}
		*l = append(*l, attr.A(k.Value, v.Value))
	}
	return nil
}

func (t *Tree) build(f *fixtureNode) (*StyledNode, error) {
	n := t.NewNode(f.Tag)
	if f.Text != nil {
		if err := t.SetText(n, *f.Text); err != nil {
			return nil, err
		}
	}
	if err := t.SetAttributes(n, f.Attributes); err != nil {
		return nil, err
	}
	for i := range f.Children {
		ch, err := t.build(&f.Children[i])
		if err != nil {
			return nil, err
		}
		if err = t.AppendChild(n, ch); err != nil {
			return nil, err
		}
	}
	return n, nil
}
