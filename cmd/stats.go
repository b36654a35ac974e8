package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		r := e.progress.Report(e.bank)
		fmt.Printf("Progress: %d / %d correct (XP %d/%d)\n", r.Correct, r.Total, r.XP, r.MaxXP)
		fmt.Println(strings.Repeat("─", 60))
		for _, s := range r.Steps {
			done := ""
			if s.Complete {
				done = "✓"
			}
			topic := s.Topic
			if topic == "" {
				topic = "—"
			}
			fmt.Printf("%-8s  %3d / %-3d  %-1s  %s\n", s.Label, s.Correct, s.Total, done, topic)
		}

		stats, err := e.store.EventRepo().AnswerStats(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("query answer stats: %w", err)
		}
		fmt.Println()
		fmt.Printf("Sessions:  %d\n", stats.Sessions)
		fmt.Printf("Attempts:  %d\n", stats.Attempts)
		fmt.Printf("Correct:   %d (%.0f%%)\n", stats.Correct, stats.Accuracy()*100)
		fmt.Printf("XP earned: %d\n", stats.Awarded)
		return nil
	},
}
