package matching

import (
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/records"
)

// Scored pairs a ranked record with its adjusted score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Ranker ranks records against a query using a fitted Model. Rankings are
// always anchored to the internship vocabulary, in both directions.
type Ranker struct {
	model  *Model
	logger *zap.Logger
}

func NewRanker(model *Model, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{model: model, logger: logger}
}

// RankInternshipsForStudent returns at most topN fitted internships ordered by
// adjusted score. Equal scores keep corpus order.
func (r *Ranker) RankInternshipsForStudent(student records.Student, topN int) ([]records.Internship, error) {
	scored, err := r.ScoreInternshipsForStudent(student)
	if err != nil {
		return nil, err
	}
	return items(truncate(scored, topN)), nil
}

// ScoreInternshipsForStudent scores every fitted internship and sorts the result.
func (r *Ranker) ScoreInternshipsForStudent(student records.Student) ([]Scored[records.Internship], error) {
	st, err := r.model.load()
	if err != nil {
		return nil, err
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}

	query, err := st.transform(student.QueryText())
	if err != nil {
		return nil, err
	}

	attrs := Attributes{Location: student.Location, Type: student.PreferredInternshipType}
	scored := make([]Scored[records.Internship], len(st.internships))
	for i, in := range st.internships {
		score := Similarity(query, st.vectors[i])
		score += Bonus(attrs, Attributes{Location: in.Location, Type: in.InternType})
		scored[i] = Scored[records.Internship]{Item: in, Score: score}
	}

	sortScored(scored)

	r.logger.Debug("ranked internships for student",
		zap.Int64("student_id", student.StudentID),
		zap.Int("candidates", len(scored)),
	)
	return scored, nil
}

// RankStudentsForInternship returns at most topN students from pool ordered by
// adjusted score. Equal scores keep pool order.
func (r *Ranker) RankStudentsForInternship(internship records.Internship, pool []records.Student, topN int) ([]records.Student, error) {
	scored, err := r.ScoreStudentsForInternship(internship, pool)
	if err != nil {
		return nil, err
	}
	return items(truncate(scored, topN)), nil
}

// ScoreStudentsForInternship transforms each pool student on demand and scores
// it against the internship query. Students with missing required fields are
// skipped.
func (r *Ranker) ScoreStudentsForInternship(internship records.Internship, pool []records.Student) ([]Scored[records.Student], error) {
	st, err := r.model.load()
	if err != nil {
		return nil, err
	}
	if err := internship.Validate(); err != nil {
		return nil, err
	}

	query, err := st.transform(internship.QueryText())
	if err != nil {
		return nil, err
	}

	attrs := Attributes{Location: internship.Location, Type: internship.InternType}
	scored := make([]Scored[records.Student], 0, len(pool))
	for _, student := range pool {
		if err := student.Validate(); err != nil {
			r.logger.Warn("skipping student with missing field",
				zap.Int64("student_id", student.StudentID),
				zap.Error(err),
			)
			continue
		}

		vec, err := st.transform(student.QueryText())
		if err != nil {
			return nil, err
		}

		score := Similarity(query, vec)
		score += Bonus(Attributes{Location: student.Location, Type: student.PreferredInternshipType}, attrs)
		scored = append(scored, Scored[records.Student]{Item: student, Score: score})
	}

	sortScored(scored)

	r.logger.Debug("ranked students for internship",
		zap.Int64("internship_id", internship.InternshipID),
		zap.Int("candidates", len(scored)),
	)
	return scored, nil
}

func sortScored[T any](scored []Scored[T]) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func truncate[T any](scored []Scored[T], topN int) []Scored[T] {
	if topN <= 0 {
		return nil
	}
	if topN < len(scored) {
		return scored[:topN]
	}
	return scored
}

func items[T any](scored []Scored[T]) []T {
	out := make([]T, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Item)
	}
	return out
}
