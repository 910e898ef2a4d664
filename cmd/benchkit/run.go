package main

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchkit/internal/config"
	"benchkit/internal/report"
	"benchkit/internal/store"
	"benchkit/internal/suite"
	"benchkit/internal/telemetry"
)

var (
	runSave      bool
	runCompare   bool
	runThreshold float64
)

// Factory variables allow mocking in tests.
var (
	newSuiteFunc = defaultSuite
	newStoreFunc = func(cfg store.Config) (store.Store, error) { return store.NewStore(cfg) }
	execCommand  = exec.Command
)

// defaultSuite builds the suite of built-in benchmarks with the configured
// stopping rule.
func defaultSuite() *suite.Suite {
	s := suite.New(config.HarnessOptions())
	registerBuiltins(s)
	return s
}

var runCmd = &cobra.Command{
	Use:   "run [pattern]",
	Short: "Run benchmarks and collect sample sequences",
	Long: `Executes every registered benchmark whose name starts with the given
pattern (all of them when no pattern is given), one variant at a time,
and prints per-benchmark sample aggregates. Results can be saved to the
run history and compared against the previous saved run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runSave, "save", false, "save results to history")
	runCmd.Flags().BoolVar(&runCompare, "compare", true, "compare with the previous saved run")
	runCmd.Flags().Float64Var(&runThreshold, "threshold", 10.0, "regression threshold in percent")
}

// thresholdFor resolves the regression threshold for a command: an
// explicitly set flag wins, then the configured value (config file or
// BENCHKIT_THRESHOLD), then the flag default.
func thresholdFor(cmd *cobra.Command, flagVal float64) float64 {
	if cmd.Flags().Changed("threshold") {
		return flagVal
	}
	if v := viper.GetFloat64("threshold"); v > 0 {
		return v
	}
	return flagVal
}

func runRun(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	s := newSuiteFunc()

	if addr := viper.GetString("metrics_addr"); addr != "" {
		metrics := telemetry.NewMetrics()
		s.WithMetrics(metrics)
		go func() {
			if err := metrics.StartMetricsServer(addr); err != nil {
				slog.Error("metrics server failed", "addr", addr, "error", err)
			}
		}()
	}

	run, err := s.Execute(cmd.Context(), pattern)
	if err != nil {
		return err
	}

	report.WriteRun(cmd.OutOrStdout(), run)

	var st store.Store
	if runCompare || runSave {
		st, err = newStoreFunc(store.Config{
			Type:             viper.GetString("store.type"),
			ConnectionString: viper.GetString("store.dsn"),
		})
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer st.Close()
	}

	threshold := thresholdFor(cmd, runThreshold)

	var regression bool
	if runCompare {
		prev, err := st.LoadLatest()
		if err != nil {
			return fmt.Errorf("failed to load previous run: %w", err)
		}
		if prev != nil {
			comps := report.Compare(*prev, run)
			fmt.Fprintln(cmd.OutOrStdout())
			report.WriteComparison(cmd.OutOrStdout(), comps, threshold)
			regression = report.HasRegression(comps, threshold)
		}
	}

	if runSave {
		if commit, err := gitCommit(); err == nil {
			run.Commit = commit
		}
		if err := st.Save(run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nResults saved to history")
	}

	if regression {
		return fmt.Errorf("performance regression above %.1f%%", threshold)
	}
	return nil
}

func gitCommit() (string, error) {
	out, err := execCommand("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
