package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Education levels accepted on the intake form.
type EducationLevel string

const (
	LevelFSC       EducationLevel = "fsc"
	LevelALevel    EducationLevel = "alevel"
	LevelBachelors EducationLevel = "bachelors"
	LevelMasters   EducationLevel = "masters"
	LevelPhD       EducationLevel = "phd"
)

// GradeType distinguishes the two supported grading scales.
type GradeType string

const (
	GradeTypeCGPA       GradeType = "cgpa"
	GradeTypePercentage GradeType = "percentage"
)

// TargetCountries is the fixed list of supported destinations.
var TargetCountries = []string{"UK", "USA", "Turkey", "Canada", "Australia"}

// PersonalInfo is the applicant identity section of the form.
type PersonalInfo struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	DateOfBirth string `json:"dateOfBirth"`
}

// PreviousEducation captures the applicant's last completed degree.
type PreviousEducation struct {
	Degree         string    `json:"degree"`
	University     string    `json:"university"`
	GraduationYear string    `json:"graduationYear"`
	GradeType      GradeType `json:"gradeType"`
	Grade          float64   `json:"grade"`
}

// Preferences holds the applicant's destination choices.
type Preferences struct {
	TargetCountries []string `json:"targetCountries"`
}

// WorkExperience is optional unless the applicant targets a masters degree.
type WorkExperience struct {
	HasExperience bool    `json:"hasExperience"`
	Years         float64 `json:"years,omitempty"`
	Details       string  `json:"details,omitempty"`
}

// FormData is the full multi-section intake form.
type FormData struct {
	PersonalInfo           PersonalInfo      `json:"personalInfo"`
	PreviousEducationLevel EducationLevel    `json:"previousEducationLevel"`
	FutureEducationLevel   EducationLevel    `json:"futureEducationLevel"`
	PreviousEducation      PreviousEducation `json:"previousEducation"`
	Preferences            Preferences       `json:"preferences"`
	WorkExperience         *WorkExperience   `json:"workExperience,omitempty"`
}

// EligibilityResult is the verdict computed at submission time and stored
// verbatim; it is never re-evaluated on read.
type EligibilityResult struct {
	Eligible  bool     `json:"eligible"`
	Type      string   `json:"type,omitempty"`
	Chance    string   `json:"chance,omitempty"`
	Countries []string `json:"countries,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Application is one submitted form plus its computed verdict.
type Application struct {
	ID                string            `db:"id" json:"id"`
	ApplicationCode   string            `db:"application_code" json:"applicationCode"`
	Timestamp         int64             `db:"timestamp" json:"timestamp"`
	FormData          FormData          `db:"form_data" json:"formData"`
	EligibilityResult EligibilityResult `db:"eligibility_result" json:"eligibilityResult"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
}

// BulkDeleteFilter scopes a bulk deletion. Nil fields mean no bound; with
// every field nil the whole table is cleared.
type BulkDeleteFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Eligible  *bool
}

// Value implements driver.Valuer so the form persists as JSONB.
func (f FormData) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB columns.
func (f *FormData) Scan(src interface{}) error {
	return scanJSON(src, f)
}

// Value implements driver.Valuer so the verdict persists as JSONB.
func (r EligibilityResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB columns.
func (r *EligibilityResult) Scan(src interface{}) error {
	return scanJSON(src, r)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
