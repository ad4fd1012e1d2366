package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) leetcodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leetcode <username>",
		Short: "Show solved problem counts for a LeetCode user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			stats, err := a.client().LeetCodeStats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d solved (easy %d, medium %d, hard %d)\n",
				args[0], stats.TotalSolved, stats.Easy, stats.Medium, stats.Hard)
			return nil
		},
	}
}
