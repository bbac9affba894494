package records

import (
	"encoding/json"
	"os"
	"strings"
)

const (
	StudentIDField         = "student_id"
	StudentLocationField   = "location"
	PreferredTypeFieldName = "preferred_internship_type"
)

type Students struct {
	Items []Student
}

type Education struct {
	Degree string `json:"degree" mapstructure:"degree"`
	Branch string `json:"branch" mapstructure:"branch"`
	Year   int    `json:"year" mapstructure:"year"`
}

type Student struct {
	StudentID               int64     `json:"student_id" mapstructure:"student_id"`
	Name                    string    `json:"name" mapstructure:"name"`
	Location                string    `json:"location" mapstructure:"location"`
	Skills                  []string  `json:"skills" mapstructure:"skills"`
	Education               Education `json:"education" mapstructure:"education"`
	ResumeText              string    `json:"resume_text" mapstructure:"resume_text"`
	PreferredInternshipType string    `json:"preferred_internship_type" mapstructure:"preferred_internship_type"`
	AvailabilityDuration    string    `json:"availability_duration" mapstructure:"availability_duration"`
}

// Validate reports the first required field the matcher consumes that is absent.
// Skills and resume text may legitimately be empty.
func (s Student) Validate() error {
	switch {
	case s.StudentID <= 0:
		return &MissingFieldError{Record: "student", ID: s.StudentID, Field: StudentIDField}
	case strings.TrimSpace(s.Location) == "":
		return &MissingFieldError{Record: "student", ID: s.StudentID, Field: StudentLocationField}
	case strings.TrimSpace(s.PreferredInternshipType) == "":
		return &MissingFieldError{Record: "student", ID: s.StudentID, Field: PreferredTypeFieldName}
	}
	return nil
}

// QueryText joins skills and resume into the text projected into the internship vocabulary.
func (s Student) QueryText() string {
	return strings.ToLower(strings.Join(s.Skills, " ") + " " + s.ResumeText)
}

func (s *Students) Len() int {
	return len(s.Items)
}

func (s *Students) IDs() []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, st := range s.Items {
		ids = append(ids, st.StudentID)
	}
	return ids
}

func (s *Students) FindByID(id int64) *Student {
	for i := range s.Items {
		if s.Items[i].StudentID == id {
			return &s.Items[i]
		}
	}
	return nil
}

func (s *Students) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "students_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
