package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/usecase"
)

var (
	runQuality       bool
	runCategorize    bool
	runMulticategory bool
	runWisdom        bool
	runEnhance       bool
	runStandardize   bool
	runAll           bool
	runForce         bool
	runLimit         int
	runJSON          bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a reprocessing run over the corpus",
	Long: `Execute the selected pipeline stages over every artifact that still
needs them. Use --force to redo completed stages and --limit to cap the
batch size. The run report is the sole output.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runQuality, "quality", false, "recompute quality scores")
	runCmd.Flags().BoolVar(&runCategorize, "categorize", false, "assign the primary impact category")
	runCmd.Flags().BoolVar(&runMulticategory, "multicategory", false, "assign the full category map")
	runCmd.Flags().BoolVar(&runWisdom, "wisdom", false, "extract key insights via the language model")
	runCmd.Flags().BoolVar(&runEnhance, "enhance", false, "recover readable content for thin artifacts")
	runCmd.Flags().BoolVar(&runStandardize, "standardize", false, "normalize shared metadata")
	runCmd.Flags().BoolVar(&runAll, "all", false, "enable every stage")
	runCmd.Flags().BoolVar(&runForce, "force", false, "redo stages that are already complete")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "max artifacts to process (0 = no limit)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	stages := usecase.StageSet{
		Quality:       runQuality,
		Categorize:    runCategorize,
		Multicategory: runMulticategory,
		Wisdom:        runWisdom,
		Enhance:       runEnhance,
		Standardize:   runStandardize,
	}
	if runAll {
		stages = usecase.AllStages()
	}
	if !stages.Any() {
		return fmt.Errorf("no stages selected; pass stage flags or --all")
	}

	application, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.Run(ctx, usecase.RunRequest{
		Stages: stages,
		Force:  runForce,
		Limit:  runLimit,
	})
	if err != nil {
		return err
	}

	if runJSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}
	printReport(report)
	return nil
}

func printReport(report domain.Report) {
	bold := color.New(color.Bold)
	bold.Printf("Reprocessing run %s (%s)\n",
		report.StartedAt.Format("2006-01-02 15:04:05"),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	fmt.Printf("  processed:     %d\n", report.TotalProcessed)
	fmt.Printf("  quality:       %d\n", report.QualityUpdated)
	fmt.Printf("  categories:    %d\n", report.CategoriesUpdated)
	fmt.Printf("  multicategory: %d\n", report.MulticategoryUpdated)
	fmt.Printf("  wisdom:        %d\n", report.WisdomUpdated)
	fmt.Printf("  enhanced:      %d\n", report.ContentEnhanced)
	fmt.Printf("  standardized:  %d\n", report.MetadataStandardized)
	fmt.Printf("  skipped:       %d\n", report.Skipped)

	if report.Errors > 0 {
		color.Red("  errors:        %d", report.Errors)
	} else {
		color.Green("  errors:        0")
	}
}
