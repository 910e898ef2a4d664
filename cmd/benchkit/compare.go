package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchkit/internal/report"
	"benchkit/internal/store"
)

var compareThreshold float64

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the two most recent saved runs",
	RunE:  runCompareCmd,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 10.0, "regression threshold in percent")
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	st, err := newStoreFunc(store.Config{
		Type:             viper.GetString("store.type"),
		ConnectionString: viper.GetString("store.dsn"),
	})
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer st.Close()

	runs, err := st.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least 2 saved runs, have %d", len(runs))
	}

	threshold := thresholdFor(cmd, compareThreshold)

	prev, curr := runs[len(runs)-2], runs[len(runs)-1]
	comps := report.Compare(prev, curr)
	report.WriteComparison(cmd.OutOrStdout(), comps, threshold)

	if report.HasRegression(comps, threshold) {
		return fmt.Errorf("performance regression above %.1f%%", threshold)
	}
	return nil
}
