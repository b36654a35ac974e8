package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume the drill at the current step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, startPlay)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session over items not yet answered correctly",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, startReview)
	},
}
