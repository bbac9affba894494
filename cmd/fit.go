package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the model on every stored internship and save the snapshot",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()

		e := setup(ctx)
		defer e.close()

		report, err := e.service.Refresh(ctx)
		if err != nil {
			e.logger.Fatal("fitting the model", zap.Error(err))
		}

		e.logger.Info("model fitted",
			zap.Int("initial", report.Initial),
			zap.Int("skipped", report.Skipped),
			zap.Int("fitted", report.Fitted),
			zap.Int("vocabulary", report.Vocabulary),
			zap.String("snapshot", e.config.Snapshot),
		)
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
}
