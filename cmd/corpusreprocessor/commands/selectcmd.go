package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	selectCount   int
	selectBalance bool
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Build a budgeted, category-balanced working set",
	Long: `Score every artifact against one corpus snapshot, rank by composite
quality, and print the selected working set. With --balance each impact
category gets an even share of the budget before slots fill by score.`,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().IntVar(&selectCount, "count", 100, "target number of artifacts")
	selectCmd.Flags().BoolVar(&selectBalance, "balance", true, "balance selection across categories")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	application, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	ranked, err := application.SelectCorpus(ctx, selectCount, selectBalance)
	if err != nil {
		return err
	}

	for _, r := range ranked {
		fmt.Printf("%.4f  %-12s  %s  %s\n",
			r.Score, r.Artifact.PrimaryCategory(), r.Artifact.ID, r.Artifact.Title)
	}
	fmt.Printf("selected %d artifacts\n", len(ranked))
	return nil
}
