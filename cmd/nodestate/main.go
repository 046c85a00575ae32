/*
Command nodestate is a developer tool for state trees.

It reads a tree from a YAML fixture, computes the state of every node,
optionally applies attribute edits and prints what has been re-evaluated
along the way.

	nodestate eval testdata/page.yaml --set 3:width=20 --set 2:background=blue
	nodestate masks

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nodestate",
	Short: "nodestate evaluates the computed state of UI node trees",
	Long: `nodestate reads a tree of UI nodes from a YAML fixture, computes sizes and
styles bottom-up and shows which nodes are re-evaluated after edits.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(masksCmd)
	rootCmd.PersistentFlags().String("config", "uistate.yaml", "configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint(err))
		os.Exit(1)
	}
}
