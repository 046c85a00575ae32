package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/npillmayer/uistate/attr"
	"github.com/npillmayer/uistate/state"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

var masksCmd = &cobra.Command{
	Use:   "masks",
	Short: "List the derivation kinds and their attribute masks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-6s %-11s %s", "KIND", "AGGREGATES", "MASK")))
		for _, d := range state.Derivations() {
			agg := "self"
			if d.ChildAggregated {
				agg = "children"
			}
			fmt.Fprintf(out, "%-6s %-11s %s\n", d.Kind, agg, d.Mask)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("PALETTE"))
		for _, name := range attr.PaletteNames() {
			c, _ := attr.LookupColor(name).Get()
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()[:7])).Render("    ")
			fmt.Fprintf(out, "%s %-7s %s\n", swatch, name, c.Hex())
		}
	},
}
