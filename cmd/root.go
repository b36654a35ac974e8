package cmd

import (
	"flag"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shiwake",
	Short: "Journal-entry drill in the terminal",
	Long:  "Shiwake — step-by-step multiple-choice drill for bookkeeping journal entries.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog refuses to log until the standard flag set is parsed.
		_ = flag.CommandLine.Parse(nil)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, startHome)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Database path or DSN (overrides SHIWAKE_DB env var)")
	pf.String("db-driver", "", "Database driver: sqlite, postgres or mysql (overrides SHIWAKE_DB_DRIVER)")
	pf.String("bank", "", "Question bank: file path, http(s) URL or builtin:<name> (overrides SHIWAKE_BANK)")
	pf.Int("review-max", 0, "Maximum items per review session (overrides SHIWAKE_REVIEW_MAX)")
	pf.String("profile", "", "Learner profile; progress is stored per profile")
	pf.AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}
