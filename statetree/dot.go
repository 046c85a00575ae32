package statetree

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/uistate/tree"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram of the tree in GraphViz (DOT) format.
// Every node is drawn as a record showing its raw attributes and its
// computed state.
func (t *Tree) ToGraphViz(w io.Writer) error {
	tmpl, err := template.New("statetree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("stnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"hastext":     hasText,
		}).Parse(stNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("stedge").Parse(stEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	if t.root != nil {
		if err = nodes(t.root, w, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

type dotNode struct {
	N    *StyledNode
	Name string
}

type dotEdge struct {
	N1, N2 dotNode
}

func nodeName(n *StyledNode) string {
	return fmt.Sprintf("node%05d", n.id)
}

// nodes writes n and its subtree, parents first. Every node but n is
// followed by the edge from its parent.
func nodes(n *StyledNode, w io.Writer, gparams *graphParamsType) error {
	var err error
	n.TopDown(func(node *tree.Node[*StyledNode], depth int) bool {
		if err != nil {
			return false
		}
		sn := node.Payload
		if err = gparams.NodeTmpl.Execute(w, &dotNode{sn, nodeName(sn)}); err != nil {
			return false
		}
		if depth > 0 {
			p := sn.StyledParent()
			e := dotEdge{dotNode{p, nodeName(p)}, dotNode{sn, nodeName(sn)}}
			err = gparams.EdgeTmpl.Execute(w, e)
		}
		return err == nil
	})
	return err
}

func hasText(n *StyledNode) bool {
	_, ok := n.Text()
	return ok
}

func shortText(n *StyledNode) string {
	text, _ := n.Text()
	s := shorten(text, 10)
	s = strings.Replace(s, "\n", `\n`, -1)
	s = strings.Replace(s, "\t", `\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return template.HTMLEscapeString(s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const stNodeTmpl = `{{ .Name }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ html .N.Tag }} #{{ .N.ID }}</font></td></tr>
      {{ if hastext .N }}<tr><td colspan="2"><font face="Courier">{{ shortstring .N }}</font></td></tr>{{ end }}
      {{ range .N.Attributes }}
      <tr><td align="right">{{ html .Name }}:</td><td>{{ html .Value }}</td></tr>
      {{ end }}
      <tr><td align="right">size:</td><td>{{ .N.Size }}</td></tr>
      <tr><td align="right">style:</td><td>{{ .N.Style }}</td></tr>
    </table>> ] ;
`

const stEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
