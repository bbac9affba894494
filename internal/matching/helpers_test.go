package matching

import (
	"testing"

	"github.com/spigell/intern-matcher/internal/records"
)

func internship(id int64, role string, skills ...string) records.Internship {
	return records.Internship{
		InternshipID:   id,
		Role:           role,
		Location:       "Pune",
		InternType:     "Remote",
		SkillsRequired: skills,
	}
}

func student(id int64, resume string, skills ...string) records.Student {
	return records.Student{
		StudentID:               id,
		Location:                "Pune",
		Skills:                  skills,
		ResumeText:              resume,
		PreferredInternshipType: "Remote",
	}
}

func fittedModel(t testing.TB, corpus ...records.Internship) *Model {
	t.Helper()
	m := NewModel()
	if _, err := m.Fit(corpus); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return m
}

func ids(in []records.Internship) []int64 {
	return (&records.Internships{Items: in}).IDs()
}
