package records

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestInternshipText(t *testing.T) {
	in := Internship{Role: "Data Analyst", CompanyName: "Acme", SkillsRequired: []string{"Python", "SQL"}}

	if got := in.CorpusText(); got != "data analyst acme python sql" {
		t.Fatalf("unexpected corpus text: %q", got)
	}
	if got := in.QueryText(); got != "data analyst python sql" {
		t.Fatalf("unexpected query text: %q", got)
	}
	if got := (Internship{}).CorpusText(); got != "" {
		t.Fatalf("expected empty corpus text, got %q", got)
	}
}

func TestStudentQueryText(t *testing.T) {
	s := Student{Skills: []string{"Python", "Pandas"}, ResumeText: "Built ETL"}
	if got := s.QueryText(); got != "python pandas built etl" {
		t.Fatalf("unexpected query text: %q", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		field string
	}{
		{name: "internship ok", err: Internship{InternshipID: 1, Location: "Pune", InternType: "Remote"}.Validate()},
		{name: "internship id", err: Internship{Location: "Pune", InternType: "Remote"}.Validate(), field: InternshipIDField},
		{name: "internship location", err: Internship{InternshipID: 1, InternType: "Remote"}.Validate(), field: InternLocationField},
		{name: "internship type", err: Internship{InternshipID: 1, Location: "Pune", InternType: " "}.Validate(), field: InternTypeField},
		{name: "student ok", err: Student{StudentID: 1, Location: "Pune", PreferredInternshipType: "Hybrid"}.Validate()},
		{name: "student id", err: Student{Location: "Pune", PreferredInternshipType: "Hybrid"}.Validate(), field: StudentIDField},
		{name: "student location", err: Student{StudentID: 1, PreferredInternshipType: "Hybrid"}.Validate(), field: StudentLocationField},
		{name: "student type", err: Student{StudentID: 1, Location: "Pune"}.Validate(), field: PreferredTypeFieldName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.field == "" {
				if tc.err != nil {
					t.Fatalf("unexpected error: %v", tc.err)
				}
				return
			}

			if !errors.Is(tc.err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", tc.err)
			}
			var missing *MissingFieldError
			if !errors.As(tc.err, &missing) || missing.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, tc.err)
			}
		})
	}
}

func TestMissingFieldErrorMessage(t *testing.T) {
	err := &MissingFieldError{Record: "student", ID: 4, Field: StudentLocationField}
	if got := err.Error(); got != "student 4: missing required field: location" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" python, sql ,, figma ")
	if len(got) != 3 || got[0] != "python" || got[1] != "sql" || got[2] != "figma" {
		t.Fatalf("unexpected list: %v", got)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if got := JoinList([]string{"a", "b"}); got != "a,b" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestCollections(t *testing.T) {
	internships := &Internships{Items: []Internship{{InternshipID: 3}, {InternshipID: 1}}}
	if internships.Len() != 2 || internships.FindByID(1) == nil || internships.FindByID(2) != nil {
		t.Fatalf("unexpected internships lookup")
	}

	students := &Students{Items: []Student{{StudentID: 5, Name: "Asha"}}}
	if ids := students.IDs(); len(ids) != 1 || ids[0] != 5 {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if students.FindByID(5).Name != "Asha" {
		t.Fatalf("expected to find student 5")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	internships := &Internships{Items: []Internship{{InternshipID: 1, Role: "Data Analyst"}}}

	name, err := internships.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded []Internship
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Role != "Data Analyst" {
		t.Fatalf("unexpected dump: %s", data)
	}
}
