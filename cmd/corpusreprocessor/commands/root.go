package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"CorpusReprocessor/internal/app"
	"CorpusReprocessor/internal/config"
	"CorpusReprocessor/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "corpusreprocessor",
	Short: "Score, categorize and reprocess the research corpus",
	Long: `corpusreprocessor runs the document pipeline over the collected corpus:
quality scoring, workforce-impact categorization, wisdom extraction,
content enhancement and metadata standardization. Stages are idempotent;
non-forced runs only touch artifacts missing a completion marker.`,
	SilenceUsage: true,
}

// Execute runs the CLI. The context cancels in-flight runs between
// artifacts when the process is interrupted.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newApplication(ctx context.Context) (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		return nil, err
	}
	return application, nil
}
