package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/records"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend internships for a student",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().Int64P("student-id", "s", 0, "student id. Choose interactively when unset.")
	recommendCmd.Flags().IntP("top", "n", 0, "number of internships to return (default top-n from config)")
	recommendCmd.Flags().Bool("dump", false, "dump the result to a temporary file instead of stdout")
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	e := setup(ctx)
	defer e.close()

	studentID, _ := cmd.Flags().GetInt64("student-id")
	top, _ := cmd.Flags().GetInt("top")
	dump, _ := cmd.Flags().GetBool("dump")

	if studentID == 0 {
		students, err := e.service.Students(ctx)
		if err != nil {
			e.logger.Fatal("listing students", zap.Error(err))
		}
		studentID, err = chooseStudent(students)
		if err != nil {
			e.logger.Fatal("choosing a student", zap.Error(err))
		}
	}

	if err := e.service.Load(ctx); err != nil {
		e.logger.Fatal("loading the model", zap.Error(err))
	}

	recommended, err := e.service.RecommendInternships(ctx, studentID, top)
	if err != nil {
		e.logger.Fatal("recommending internships", zap.Int64("student_id", studentID), zap.Error(err))
	}

	e.logger.Info("internships recommended",
		zap.Int64("student_id", studentID),
		zap.Int("count", len(recommended)),
	)

	result := &records.Internships{Items: recommended}
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

func chooseStudent(students []records.Student) (int64, error) {
	if len(students) == 0 {
		return 0, fmt.Errorf("there are no students in the database")
	}

	items := make([]string, 0, len(students))
	for _, s := range students {
		items = append(items, fmt.Sprintf("%d %s / %s / %s", s.StudentID, s.Name, s.Location, s.PreferredInternshipType))
	}

	prompt := promptui.Select{
		Label: "Choose a student and press ENTER",
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return students[idx].StudentID, nil
}
