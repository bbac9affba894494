package records

import (
	"encoding/json"
	"os"
	"strings"
)

const (
	InternshipIDField   = "internship_id"
	InternLocationField = "location"
	InternTypeField     = "intern_type"
)

type Internships struct {
	Items []Internship
}

type Internship struct {
	InternshipID         int64    `json:"internship_id" mapstructure:"internship_id"`
	Role                 string   `json:"role" mapstructure:"role"`
	CompanyName          string   `json:"company_name" mapstructure:"company_name"`
	Location             string   `json:"location" mapstructure:"location"`
	Duration             string   `json:"duration" mapstructure:"duration"`
	Stipend              string   `json:"stipend,omitempty" mapstructure:"stipend"`
	InternType           string   `json:"intern_type" mapstructure:"intern_type"`
	SkillsRequired       []string `json:"skills_required" mapstructure:"skills_required"`
	HiringSince          string   `json:"hiring_since,omitempty" mapstructure:"hiring_since"`
	OpportunityDate      string   `json:"opportunity_date,omitempty" mapstructure:"opportunity_date"`
	Openings             int      `json:"openings" mapstructure:"openings"`
	HiredCandidate       int      `json:"hired_candidate" mapstructure:"hired_candidate"`
	NumberOfApplications int      `json:"number_of_applications" mapstructure:"number_of_applications"`
}

// Validate reports the first required field the matcher consumes that is absent.
func (in Internship) Validate() error {
	switch {
	case in.InternshipID <= 0:
		return &MissingFieldError{Record: "internship", ID: in.InternshipID, Field: InternshipIDField}
	case strings.TrimSpace(in.Location) == "":
		return &MissingFieldError{Record: "internship", ID: in.InternshipID, Field: InternLocationField}
	case strings.TrimSpace(in.InternType) == "":
		return &MissingFieldError{Record: "internship", ID: in.InternshipID, Field: InternTypeField}
	}
	return nil
}

// CorpusText is the document an internship contributes to the fitted corpus.
func (in Internship) CorpusText() string {
	text := in.Role + " " + in.CompanyName + " " + strings.Join(in.SkillsRequired, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// QueryText is the text used when an internship looks for candidates.
func (in Internship) QueryText() string {
	return strings.ToLower(in.Role + " " + strings.Join(in.SkillsRequired, " "))
}

func (v *Internships) Len() int {
	return len(v.Items)
}

func (v *Internships) IDs() []int64 {
	ids := make([]int64, 0, len(v.Items))
	for _, in := range v.Items {
		ids = append(ids, in.InternshipID)
	}
	return ids
}

func (v *Internships) FindByID(id int64) *Internship {
	for i := range v.Items {
		if v.Items[i].InternshipID == id {
			return &v.Items[i]
		}
	}
	return nil
}

func (v *Internships) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "internships_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
