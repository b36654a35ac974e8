package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/shiwake/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <source>",
	Short: "Load and validate a question bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bankConfig(cmd)
		cfg.Source = args[0]

		b, err := bank.Load(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}

		fmt.Printf("OK: %s\n", b.Source)
		fmt.Printf("Shape:  %s\n", b.Shape)
		if b.Version != "" {
			fmt.Printf("Version: %s\n", b.Version)
		}
		fmt.Printf("Steps:  %d\n", b.Len())
		fmt.Printf("Items:  %d\n", b.TotalItems())
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the steps of the configured bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load(cmdContext(cmd), bankConfig(cmd))
		if err != nil {
			return err
		}

		fmt.Printf("%s  %5s  %s  %s\n", fitColumn("Step", 8), "Items", fitColumn("Title", 32), "Topic")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range b.Steps {
			fmt.Printf("%s  %5d  %s  %s\n", fitColumn(s.Label, 8), s.Len(), fitColumn(s.Title, 32), s.Topic)
		}
		fmt.Printf("\n%d steps, %d items\n", b.Len(), b.TotalItems())

		builtins := bank.Builtins()
		if len(builtins) > 0 {
			fmt.Printf("Built-in banks: %s%s\n", bank.BuiltinPrefix, strings.Join(builtins, ", "+bank.BuiltinPrefix))
		}
		return nil
	},
}

// fitColumn truncates s to width terminal cells, ending in "...", and
// pads it with spaces to exactly width cells. Wide runes count as two.
func fitColumn(s string, width int) string {
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "..."
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankListCmd)
}
