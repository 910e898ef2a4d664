package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered benchmarks and their variants",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s := newSuiteFunc()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tVARIANTS")
	for _, def := range s.Definitions() {
		cfgs, err := def.Variants()
		if err != nil {
			return err
		}
		labels := make([]string, 0, len(cfgs))
		for _, cfg := range cfgs {
			if cfg.Label == "" {
				labels = append(labels, "(default)")
				continue
			}
			labels = append(labels, cfg.Label)
		}
		fmt.Fprintf(tw, "%s\t%s\n", def.Name, strings.Join(labels, ", "))
	}
	return tw.Flush()
}
