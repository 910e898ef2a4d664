// Package config loads harness settings from config file, environment and
// defaults. The stopping-rule constants are deliberately configurable here;
// the shipped defaults are the harness defaults.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"benchkit/internal/harness"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchkit")
	}

	viper.SetEnvPrefix("BENCHKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Stopping rule
	viper.SetDefault("budget_ms", 300)
	viper.SetDefault("min_samples", 210)
	viper.SetDefault("max_samples", 0)

	// Reporting and persistence
	viper.SetDefault("threshold", 10.0)
	viper.SetDefault("store.type", "file")
	viper.SetDefault("store.dsn", "")

	// Telemetry
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)

	// Config file is optional.
	_ = viper.ReadInConfig()
}

// HarnessOptions builds the runner stopping rule from the loaded
// configuration.
func HarnessOptions() harness.Options {
	return harness.Options{
		TimeBudget: time.Duration(viper.GetFloat64("budget_ms") * float64(time.Millisecond)),
		MinSamples: viper.GetInt("min_samples"),
		MaxSamples: viper.GetInt("max_samples"),
	}
}
