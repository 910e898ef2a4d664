package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"benchkit/internal/config"
	"benchkit/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "benchkit",
	Short: "Adaptive-sampling micro-benchmark harness",
	Long: `benchkit runs registered micro-benchmarks through an adaptive sampling
loop: each benchmark is timed repeatedly until at least 300ms of measured
time and more than 210 samples have accumulated, producing a raw sample
sequence suitable for downstream regression analysis. Results can be
persisted and compared across runs.`,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initAppConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchkit.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("store", "", "run history backend (file, sqlite, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "history file path or database DSN")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("store.type", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store.dsn", rootCmd.PersistentFlags().Lookup("dsn"))
}

func initAppConfig() {
	config.Load(cfgFile)
	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exit(1)
	}
	telemetry.InitLogger(viper.GetBool("verbose"))
}
