package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spigell/intern-matcher/internal/records"
)

const internshipColumns = `internship_id, role, company_name, location, duration, stipend, intern_type,
  skills_required, hiring_since, opportunity_date, openings, hired_candidate, number_of_applications`

// UpsertInternship inserts or replaces an internship by id.
func (d *DB) UpsertInternship(ctx context.Context, in records.Internship) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO internships (`+internshipColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		in.InternshipID, in.Role, in.CompanyName, in.Location, in.Duration, nullString(in.Stipend), in.InternType,
		records.JoinList(in.SkillsRequired), nullString(in.HiringSince), nullString(in.OpportunityDate),
		in.Openings, in.HiredCandidate, in.NumberOfApplications,
	)
	if err != nil {
		return fmt.Errorf("upsert internship %d: %w", in.InternshipID, err)
	}
	return nil
}

// ListInternships returns every internship ordered by id.
func (d *DB) ListInternships(ctx context.Context) ([]records.Internship, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT `+internshipColumns+` FROM internships ORDER BY internship_id;`)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()

	out := make([]records.Internship, 0)
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internship: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (d *DB) GetInternship(ctx context.Context, id int64) (records.Internship, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT `+internshipColumns+` FROM internships WHERE internship_id = ?;`, id)
	in, err := scanInternship(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Internship{}, fmt.Errorf("internship %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return records.Internship{}, fmt.Errorf("get internship %d: %w", id, err)
	}
	return in, nil
}

func (d *DB) CountInternships(ctx context.Context) (int, error) {
	var n int
	if err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM internships;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count internships: %w", err)
	}
	return n, nil
}

func scanInternship(s scanner) (records.Internship, error) {
	var (
		in                                   records.Internship
		skills                               string
		stipend, hiringSince, opportunityDay sql.NullString
	)
	err := s.Scan(
		&in.InternshipID, &in.Role, &in.CompanyName, &in.Location, &in.Duration, &stipend, &in.InternType,
		&skills, &hiringSince, &opportunityDay, &in.Openings, &in.HiredCandidate, &in.NumberOfApplications,
	)
	if err != nil {
		return records.Internship{}, err
	}
	in.SkillsRequired = records.SplitList(skills)
	in.Stipend = stipend.String
	in.HiringSince = hiringSince.String
	in.OpportunityDate = opportunityDay.String
	return in, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
