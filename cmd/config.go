package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/review"
	"github.com/abhisek/shiwake/internal/store"
)

// storeConfig resolves the store settings: --db and --db-driver flags
// (highest priority), then SHIWAKE_DB / SHIWAKE_DB_DRIVER, then the
// default sqlite file under the XDG data dir.
func storeConfig(cmd *cobra.Command) (store.Config, error) {
	cfg := store.ConfigFromEnv()
	if d, _ := cmd.Flags().GetString("db-driver"); d != "" {
		cfg.Driver = strings.ToLower(d)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DSN = p
	}
	if cfg.Driver != store.DriverSQLite {
		return cfg, nil
	}
	if cfg.DSN == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return cfg, err
		}
		cfg.DSN = p
		return cfg, nil
	}
	if strings.HasPrefix(cfg.DSN, "file:") || cfg.DSN == ":memory:" {
		return cfg, nil
	}
	return cfg, store.EnsureDir(cfg.DSN)
}

func bankConfig(cmd *cobra.Command) bank.Config {
	cfg := bank.ConfigFromEnv()
	if s, _ := cmd.Flags().GetString("bank"); s != "" {
		cfg.Source = s
	}
	return cfg
}

func reviewConfig(cmd *cobra.Command) review.Config {
	cfg := review.ConfigFromEnv()
	if n, _ := cmd.Flags().GetInt("review-max"); n > 0 {
		cfg.Max = n
	}
	return cfg
}

func progressKey(cmd *cobra.Command) string {
	profile, _ := cmd.Flags().GetString("profile")
	return progress.ProfileKey(profile)
}
