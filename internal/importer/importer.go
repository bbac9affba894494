package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/intern-matcher/internal/records"
)

var internshipHeaders = map[string]string{
	"Internship Id":          "internship_id",
	"Role":                   "role",
	"Company Name":           "company_name",
	"Location":               "location",
	"Duration":               "duration",
	"Stipend":                "stipend",
	"Intern Type":            "intern_type",
	"Skills":                 "skills_required",
	"Hiring Since":           "hiring_since",
	"Opportunity Date":       "opportunity_date",
	"Opening":                "openings",
	"Hired Candidate":        "hired_candidate",
	"Number of Applications": "number_of_applications",
}

var studentHeaders = map[string]string{
	"Student Id":                "student_id",
	"Name":                      "name",
	"Location":                  "location",
	"Skills":                    "skills",
	"Degree":                    "degree",
	"Branch":                    "branch",
	"Year":                      "year",
	"Resume Text":               "resume_text",
	"Preferred Internship Type": "preferred_internship_type",
	"Availability Duration":     "availability_duration",
}

// Writer is the subset of the store the importer needs.
type Writer interface {
	UpsertInternship(ctx context.Context, in records.Internship) error
	UpsertStudent(ctx context.Context, s records.Student) error
}

// Source names the CSV files to import. Empty paths are skipped.
type Source struct {
	Internships string
	Students    string
}

type Report struct {
	Internships int
	Students    int
}

// Run imports both files concurrently.
func Run(ctx context.Context, w Writer, src Source, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var report Report
	g, ctx := errgroup.WithContext(ctx)

	if src.Internships != "" {
		g.Go(func() error {
			n, err := importFile(src.Internships, func(r io.Reader) (int, error) {
				return ImportInternships(ctx, r, w)
			})
			if err != nil {
				return fmt.Errorf("import internships from %s: %w", src.Internships, err)
			}
			report.Internships = n
			logger.Info("internships imported", zap.String("path", src.Internships), zap.Int("count", n))
			return nil
		})
	}

	if src.Students != "" {
		g.Go(func() error {
			n, err := importFile(src.Students, func(r io.Reader) (int, error) {
				return ImportStudents(ctx, r, w)
			})
			if err != nil {
				return fmt.Errorf("import students from %s: %w", src.Students, err)
			}
			report.Students = n
			logger.Info("students imported", zap.String("path", src.Students), zap.Int("count", n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func importFile(path string, fn func(io.Reader) (int, error)) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return fn(file)
}

// ImportInternships reads internship rows and upserts them in file order.
func ImportInternships(ctx context.Context, r io.Reader, w Writer) (int, error) {
	return eachRow(r, internshipHeaders, func(line int, row map[string]any) error {
		row["skills_required"] = splitSkills(row["skills_required"])

		var in records.Internship
		if err := decode(row, &in); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		return w.UpsertInternship(ctx, in)
	})
}

// ImportStudents reads student rows and upserts them in file order.
func ImportStudents(ctx context.Context, r io.Reader, w Writer) (int, error) {
	return eachRow(r, studentHeaders, func(line int, row map[string]any) error {
		row["skills"] = splitSkills(row["skills"])
		row["education"] = map[string]any{
			"degree": row["degree"],
			"branch": row["branch"],
			"year":   row["year"],
		}
		delete(row, "degree")
		delete(row, "branch")
		delete(row, "year")

		var s records.Student
		if err := decode(row, &s); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		return w.UpsertStudent(ctx, s)
	})
}

func eachRow(r io.Reader, headers map[string]string, fn func(line int, row map[string]any) error) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// ragged rows are allowed; missing columns read as empty, extra ones are dropped
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if mapped, ok := headers[h]; ok {
			h = mapped
		}
		keys[i] = h
	}

	count := 0
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}

		row := make(map[string]any, len(keys))
		for i, key := range keys {
			value := ""
			if i < len(fields) {
				value = strings.TrimSpace(fields[i])
			}
			row[key] = value
		}

		if err := fn(line, row); err != nil {
			return count, err
		}
		count++
	}
}

// splitSkills accepts both ";" and "," separated lists.
func splitSkills(v any) []string {
	s, _ := v.(string)
	return records.SplitList(strings.ReplaceAll(s, ";", ","))
}

func decode(row map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(row)
}
