package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig checks the loaded values for consistency. Call after Load.
func ValidateConfig() error {
	var errs []string

	if v := viper.GetFloat64("budget_ms"); v <= 0 {
		errs = append(errs, fmt.Sprintf("budget_ms must be positive, got: %v", v))
	}
	if v := viper.GetInt("min_samples"); v <= 0 {
		errs = append(errs, fmt.Sprintf("min_samples must be positive, got: %d", v))
	}
	if v := viper.GetInt("max_samples"); v < 0 {
		errs = append(errs, fmt.Sprintf("max_samples must not be negative, got: %d", v))
	}
	if v := viper.GetFloat64("threshold"); v < 0 {
		errs = append(errs, fmt.Sprintf("threshold must not be negative, got: %v", v))
	}

	switch t := strings.ToLower(viper.GetString("store.type")); t {
	case "", "file", "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		errs = append(errs, fmt.Sprintf("unsupported store.type: %s", t))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
