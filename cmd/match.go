package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/records"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match candidate students for an internship",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int64P("internship-id", "i", 0, "internship id. Choose interactively when unset.")
	matchCmd.Flags().IntP("top", "n", 0, "number of students to return (default top-n from config)")
	matchCmd.Flags().Bool("dump", false, "dump the result to a temporary file instead of stdout")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	e := setup(ctx)
	defer e.close()

	internshipID, _ := cmd.Flags().GetInt64("internship-id")
	top, _ := cmd.Flags().GetInt("top")
	dump, _ := cmd.Flags().GetBool("dump")

	if internshipID == 0 {
		internships, err := e.service.Internships(ctx)
		if err != nil {
			e.logger.Fatal("listing internships", zap.Error(err))
		}
		internshipID, err = chooseInternship(internships)
		if err != nil {
			e.logger.Fatal("choosing an internship", zap.Error(err))
		}
	}

	if err := e.service.Load(ctx); err != nil {
		e.logger.Fatal("loading the model", zap.Error(err))
	}

	matched, err := e.service.MatchCandidates(ctx, internshipID, top)
	if err != nil {
		e.logger.Fatal("matching candidates", zap.Int64("internship_id", internshipID), zap.Error(err))
	}

	e.logger.Info("candidates matched",
		zap.Int64("internship_id", internshipID),
		zap.Int("count", len(matched)),
	)

	result := &records.Students{Items: matched}
	if dump {
		filename, err := result.DumpToTmpFile()
		if err != nil {
			e.logger.Fatal("dumping result to file", zap.Error(err))
		}
		e.logger.Info("dumping result to file", zap.String("filename", filename))
		return
	}

	if err := printJSON(result.Items); err != nil {
		e.logger.Fatal("printing result", zap.Error(err))
	}
}

func chooseInternship(internships []records.Internship) (int64, error) {
	if len(internships) == 0 {
		return 0, fmt.Errorf("there are no internships in the database")
	}

	items := make([]string, 0, len(internships))
	for _, in := range internships {
		items = append(items, fmt.Sprintf("%d %s / %s / %s", in.InternshipID, in.Role, in.CompanyName, in.Location))
	}

	prompt := promptui.Select{
		Label: "Choose an internship and press ENTER",
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return internships[idx].InternshipID, nil
}
