// Package eligibility holds the pure decision function mapping a submitted
// form to a scholarship verdict. It performs no I/O and never fails; every
// input yields a result.
package eligibility

import (
	"strconv"
	"time"

	"github.com/scholarpath/intake-api/internal/models"
)

// Funding categories produced by the rule tables.
const (
	TypeFullyFunded       = "Fully Funded"
	TypePartialFunded     = "Partial Funded"
	TypePartialSelfFunded = "Partial/Self-Funded"
	TypeSelfFunded        = "Self-Funded"
)

// Success-likelihood labels attached to some tiers.
const (
	ChanceHigh = "High"
	ChanceFair = "Fair"
	ChanceLow  = "Low"
)

// Rejection messages, verbatim across clients.
const (
	MsgGapYears          = "Not eligible due to gap years exceeding 2 years"
	MsgGapNoExperience   = "Not eligible due to gap years without work experience"
	MsgLowGrades         = "Not eligible due to low grades"
	MsgLowCGPA           = "Not eligible due to low CGPA"
	MsgUndetermined      = "Unable to determine eligibility"
	maxGapYearsWithoutXP = 2
)

// rule is one row of an ordered decision table: the first row whose
// inclusive minimum the grade meets wins.
type rule struct {
	minGrade  float64
	fundType  string
	chance    string
	countries []string
}

type tableKey struct {
	level     models.EducationLevel
	gradeType models.GradeType
}

// rejection per table when no row matches.
var rejections = map[tableKey]string{
	{models.LevelBachelors, models.GradeTypePercentage}: MsgLowGrades,
	{models.LevelMasters, models.GradeTypeCGPA}:         MsgLowCGPA,
	{models.LevelPhD, models.GradeTypeCGPA}:             MsgLowCGPA,
}

// tables covers only the (level, gradeType) pairs the original rule set
// defines. Any other combination deliberately falls through to the
// undetermined verdict; do not add rows for them.
var tables = map[tableKey][]rule{
	{models.LevelBachelors, models.GradeTypePercentage}: {
		{minGrade: 95, fundType: TypeFullyFunded, countries: models.TargetCountries},
		{minGrade: 65, fundType: TypePartialSelfFunded, countries: models.TargetCountries},
		{minGrade: 55, fundType: TypePartialSelfFunded, countries: []string{"Turkey"}},
	},
	{models.LevelMasters, models.GradeTypeCGPA}: {
		{minGrade: 3.8, fundType: TypeFullyFunded, chance: ChanceHigh, countries: models.TargetCountries},
		{minGrade: 3.5, fundType: TypePartialFunded, chance: ChanceFair, countries: models.TargetCountries},
		{minGrade: 2.7, fundType: TypePartialSelfFunded, chance: ChanceLow, countries: models.TargetCountries},
		{minGrade: 2.3, fundType: TypeSelfFunded, countries: []string{"Turkey"}},
	},
	{models.LevelPhD, models.GradeTypeCGPA}: {
		{minGrade: 3.5, fundType: TypeFullyFunded, chance: ChanceHigh, countries: models.TargetCountries},
		{minGrade: 3.0, fundType: TypePartialFunded, chance: ChanceFair, countries: models.TargetCountries},
	},
}

// Calculate evaluates the form against the current calendar year.
func Calculate(form models.FormData) models.EligibilityResult {
	return CalculateAt(form, time.Now().Year())
}

// CalculateAt evaluates the form against an explicit current year, which
// pins gap-year arithmetic in tests.
func CalculateAt(form models.FormData, currentYear int) models.EligibilityResult {
	gradYear, _ := strconv.Atoi(form.PreviousEducation.GraduationYear)
	gapYears := currentYear - gradYear

	switch form.FutureEducationLevel {
	case models.LevelBachelors:
		if gapYears > maxGapYearsWithoutXP {
			return rejected(MsgGapYears)
		}
	case models.LevelMasters:
		if gapYears > maxGapYearsWithoutXP && !hasExperience(form.WorkExperience) {
			return rejected(MsgGapNoExperience)
		}
	}

	key := tableKey{form.FutureEducationLevel, form.PreviousEducation.GradeType}
	rows, ok := tables[key]
	if !ok {
		return rejected(MsgUndetermined)
	}

	for _, row := range rows {
		if form.PreviousEducation.Grade >= row.minGrade {
			return models.EligibilityResult{
				Eligible:  true,
				Type:      row.fundType,
				Chance:    row.chance,
				Countries: row.countries,
			}
		}
	}

	return rejected(rejections[key])
}

func hasExperience(xp *models.WorkExperience) bool {
	return xp != nil && xp.HasExperience
}

func rejected(message string) models.EligibilityResult {
	return models.EligibilityResult{Eligible: false, Message: message}
}
