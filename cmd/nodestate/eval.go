package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/npillmayer/uistate/attr"
	"github.com/npillmayer/uistate/config"
	"github.com/npillmayer/uistate/state"
	"github.com/npillmayer/uistate/statetree"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgCyan)
	batchColor = color.New(color.FgYellow, color.Bold)
)

var errEditSyntax = errors.New("edit must be of the form ID:NAME=VALUE")

var evalCmd = &cobra.Command{
	Use:   "eval [flags] <fixture.yaml>",
	Short: "Compute the state of a fixture tree, then apply edits",
	Long: `Builds the tree of a YAML fixture and runs an initial update. Every --set
edit is then applied in a separate update batch. For each batch the nodes
evaluated and changed are listed; finally the tree is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArray("set", nil, "attribute edit ID:NAME=VALUE (repeatable)")
	evalCmd.Flags().String("format", "tree", "output format of the final tree (tree|dot)")
}

// traceKeys are the tracers of the packages nodestate uses.
var traceKeys = []string{"uistate.attr", "uistate.state", "uistate.tree", "uistate.statetree"}

func runEval(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	edits, _ := cmd.Flags().GetStringArray("set")
	format, _ := cmd.Flags().GetString("format")
	if format != "tree" && format != "dot" {
		return fmt.Errorf("unknown format %q", format)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err = cfg.ApplyTraceLevel(traceKeys...); err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	opts, err := statetree.ConfigOptions(cfg, reg)
	if err != nil {
		return err
	}
	diag := &state.Collector{}
	opts = append(opts, statetree.WithDiagnostics(state.Tee(diag, state.TracingSink{})))
	st, err := statetree.FromYAML(data, opts...)
	if err != nil {
		return err
	}
	out, log := cmd.OutOrStdout(), cmd.OutOrStdout()
	if format == "dot" {
		log = cmd.ErrOrStderr()
	}
	printReport(log, st.Update(), diag)
	for _, e := range edits {
		id, a, err := parseEdit(e)
		if err != nil {
			return err
		}
		n, ok := st.Node(id)
		if !ok {
			return fmt.Errorf("no node with ID %d", id)
		}
		fmt.Fprintf(log, "set %v %s\n", n, a)
		if err = st.SetAttribute(n, a.Name, a.Value); err != nil {
			return err
		}
		printReport(log, st.Update(), diag)
	}
	switch format {
	case "dot":
		return st.ToGraphViz(out)
	default:
		fmt.Fprintln(out, st.Print())
		printSwatches(out, st)
	}
	if cfg.Metrics.Enabled {
		return printMetrics(out, reg)
	}
	return nil
}

// parseEdit splits an edit ID:NAME=VALUE.
func parseEdit(s string) (state.NodeID, attr.Attribute, error) {
	idPart, assignment, ok := strings.Cut(s, ":")
	if !ok {
		return 0, attr.Attribute{}, fmt.Errorf("%w: %q", errEditSyntax, s)
	}
	name, value, ok := strings.Cut(assignment, "=")
	if !ok || name == "" {
		return 0, attr.Attribute{}, fmt.Errorf("%w: %q", errEditSyntax, s)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return 0, attr.Attribute{}, fmt.Errorf("%w: bad node ID in %q", errEditSyntax, s)
	}
	return state.NodeID(id), attr.A(name, value), nil
}

// printReport prints a batch report followed by the diagnostics collected
// so far, then resets diag.
func printReport(w io.Writer, r *statetree.Report, diag *state.Collector) {
	batchColor.Fprintf(w, "batch %d\n", r.Batch)
	for _, d := range state.Derivations() {
		fmt.Fprintf(w, "  %-5s evaluated %v, changed %v\n", d.Kind, r.Evaluated[d.Kind], r.Changed[d.Kind])
	}
	for _, d := range diag.Diagnostics() {
		if d.Severity == state.SeverityError {
			errorColor.Fprintf(w, "  %s\n", d)
		} else {
			infoColor.Fprintf(w, "  %s\n", d)
		}
	}
	diag.Reset()
}

// printSwatches shows the background of every node with a non-transparent
// background as a colored block.
func printSwatches(w io.Writer, st *statetree.Tree) {
	var nodes []*statetree.StyledNode
	for id := state.NodeID(1); int(id) <= st.Len(); id++ {
		if n, ok := st.Node(id); ok && !n.Style().Background.IsTransparent() {
			nodes = append(nodes, n)
		}
	}
	for _, n := range nodes {
		bg := n.Style().Background
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()[:7])).Render("    ")
		fmt.Fprintf(w, "%s %v %s\n", swatch, n, bg)
	}
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", f.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
