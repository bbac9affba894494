package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load internships and students from CSV files and refit the model",
	Run: func(cmd *cobra.Command, _ []string) {
		runImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("internships", "", "internships CSV file (default data/internships.csv)")
	importCmd.Flags().String("students", "", "students CSV file (default data/students.csv)")
	importCmd.Flags().BoolP("force", "f", false, "import even if the database already has internships")

	viper.BindPFlag("import.internships", importCmd.Flags().Lookup("internships"))
	viper.BindPFlag("import.students", importCmd.Flags().Lookup("students"))
}

func runImport(cmd *cobra.Command) {
	ctx := context.Background()

	e := setup(ctx)
	defer e.close()

	count, err := e.db.CountInternships(ctx)
	if err != nil {
		e.logger.Fatal("counting internships", zap.Error(err))
	}

	force, _ := cmd.Flags().GetBool("force")
	if count > 0 && !force {
		e.logger.Info("skipping import",
			zap.String("reason", "database already has internships"),
			zap.Int("internships", count),
			zap.String("hint", "use --force to import anyway"),
		)
	} else {
		report, err := importer.Run(ctx, e.db, importer.Source{
			Internships: e.config.Import.Internships,
			Students:    e.config.Import.Students,
		}, e.logger)
		if err != nil {
			e.logger.Fatal("importing csv files", zap.Error(err))
		}
		e.logger.Info("import completed",
			zap.Int("internships", report.Internships),
			zap.Int("students", report.Students),
		)
	}

	report, err := e.service.Refresh(ctx)
	if err != nil {
		e.logger.Fatal("refitting the model", zap.Error(err))
	}
	e.logger.Info("model ready", zap.Int("internships", report.Fitted), zap.Int("skipped", report.Skipped))
}
