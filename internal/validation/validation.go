// Package validation checks intake form sections for completeness. Each
// validator returns a list of field-level errors; an empty list means the
// section is valid. Validators are total: they never fail, they only report.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/scholarpath/intake-api/internal/models"
)

// FieldError pins a message to the offending form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Deliberately permissive: local@domain.tld, nothing more.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PersonalInfo validates the identity section.
func PersonalInfo(data models.PersonalInfo) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(data.FullName) == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "Full name is required"})
	}

	if strings.TrimSpace(data.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(data.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}

	if strings.TrimSpace(data.Phone) == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number is required"})
	}

	if strings.TrimSpace(data.Country) == "" {
		errs = append(errs, FieldError{Field: "country", Message: "Country is required"})
	}

	if strings.TrimSpace(data.City) == "" {
		errs = append(errs, FieldError{Field: "city", Message: "City is required"})
	}

	return errs
}

// Education validates the prior-education section against the current year.
func Education(data models.PreviousEducation) []FieldError {
	return EducationAt(data, time.Now().Year())
}

// EducationAt is Education with an explicit current year for deterministic tests.
func EducationAt(data models.PreviousEducation, currentYear int) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(data.Degree) == "" {
		errs = append(errs, FieldError{Field: "degree", Message: "Degree is required"})
	}

	if strings.TrimSpace(data.University) == "" {
		errs = append(errs, FieldError{Field: "university", Message: "University is required"})
	}

	if data.GraduationYear == "" {
		errs = append(errs, FieldError{Field: "graduationYear", Message: "Graduation year is required"})
	} else if year, err := strconv.Atoi(data.GraduationYear); err != nil {
		errs = append(errs, FieldError{Field: "graduationYear", Message: "Graduation year must be a number"})
	} else if year > currentYear {
		errs = append(errs, FieldError{Field: "graduationYear", Message: "Graduation year cannot be in the future"})
	}

	// Zero means missing, even where the scale would admit it.
	if data.Grade == 0 {
		errs = append(errs, FieldError{Field: "grade", Message: "Grade is required"})
	} else if data.GradeType == models.GradeTypeCGPA && (data.Grade < 0 || data.Grade > 4.0) {
		errs = append(errs, FieldError{Field: "grade", Message: "CGPA must be between 0 and 4.0"})
	} else if data.GradeType == models.GradeTypePercentage && (data.Grade < 0 || data.Grade > 100) {
		errs = append(errs, FieldError{Field: "grade", Message: "Percentage must be between 0 and 100"})
	}

	return errs
}

// Preferences validates the destination section.
func Preferences(data models.Preferences) []FieldError {
	var errs []FieldError

	if len(data.TargetCountries) == 0 {
		errs = append(errs, FieldError{Field: "targetCountries", Message: "Please select at least one country"})
	}

	return errs
}

// WorkExperience validates the experience section. Callers only invoke it
// when the target education level requires experience disclosure.
func WorkExperience(data *models.WorkExperience) []FieldError {
	var errs []FieldError

	if data == nil || !data.HasExperience {
		return errs
	}

	if data.Years <= 0 {
		errs = append(errs, FieldError{Field: "years", Message: "Please enter valid years of experience"})
	}
	if strings.TrimSpace(data.Details) == "" {
		errs = append(errs, FieldError{Field: "details", Message: "Please provide experience details"})
	}

	return errs
}

// Form runs every section validator; work experience participates only for
// masters applicants. An empty result means the form is submittable.
func Form(form models.FormData) []FieldError {
	return FormAt(form, time.Now().Year())
}

// FormAt is Form with an explicit current year.
func FormAt(form models.FormData, currentYear int) []FieldError {
	errs := PersonalInfo(form.PersonalInfo)
	errs = append(errs, EducationAt(form.PreviousEducation, currentYear)...)
	errs = append(errs, Preferences(form.Preferences)...)
	if form.FutureEducationLevel == models.LevelMasters {
		errs = append(errs, WorkExperience(form.WorkExperience)...)
	}
	return errs
}
