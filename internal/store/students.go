package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spigell/intern-matcher/internal/records"
)

const studentColumns = `student_id, name, location, skills, degree, branch, year, resume_text,
  preferred_internship_type, availability_duration`

// UpsertStudent inserts or replaces a student by id.
func (d *DB) UpsertStudent(ctx context.Context, s records.Student) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO students (`+studentColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		s.StudentID, s.Name, s.Location, records.JoinList(s.Skills), s.Education.Degree, s.Education.Branch,
		s.Education.Year, s.ResumeText, s.PreferredInternshipType, s.AvailabilityDuration,
	)
	if err != nil {
		return fmt.Errorf("upsert student %d: %w", s.StudentID, err)
	}
	return nil
}

// ListStudents returns every student ordered by id.
func (d *DB) ListStudents(ctx context.Context) ([]records.Student, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY student_id;`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	out := make([]records.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) GetStudent(ctx context.Context, id int64) (records.Student, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE student_id = ?;`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Student{}, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return records.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return s, nil
}

func scanStudent(sc scanner) (records.Student, error) {
	var (
		s      records.Student
		skills string
	)
	err := sc.Scan(
		&s.StudentID, &s.Name, &s.Location, &skills, &s.Education.Degree, &s.Education.Branch,
		&s.Education.Year, &s.ResumeText, &s.PreferredInternshipType, &s.AvailabilityDuration,
	)
	if err != nil {
		return records.Student{}, err
	}
	s.Skills = records.SplitList(skills)
	return s, nil
}
