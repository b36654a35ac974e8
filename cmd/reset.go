package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved progress for the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		key := progressKey(cmd)
		if !yes {
			fmt.Printf("This deletes all progress stored under %q.\n", key)
			fmt.Println("Re-run with --yes to confirm.")
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		if err := e.progress.Reset(cmdContext(cmd)); err != nil {
			return err
		}
		fmt.Printf("Progress %q reset.\n", key)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
