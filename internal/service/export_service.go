package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scholarpath/intake-api/internal/models"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
	"github.com/scholarpath/intake-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// exportColumns is the full application sheet, one column per form field
// plus the verdict breakdown.
var exportColumns = []string{
	"Application Code",
	"Submission Date",
	"Full Name",
	"Date of Birth",
	"Email",
	"Phone",
	"Country",
	"City",
	"Previous Education Level",
	"Future Education Level",
	"Degree Title / Major",
	"University",
	"Graduation Year",
	"Grade Type",
	"Grade",
	"Target Countries",
	"Has Work Experience",
	"Years of Experience",
	"Experience Details",
	"Eligibility Status",
	"Scholarship Type",
	"Success Chance",
	"Eligible Countries",
}

type exportApplicationRepository interface {
	List(ctx context.Context) ([]models.Application, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService flattens stored applications into downloadable sheets.
type ExportService struct {
	repo         exportApplicationRepository
	csv          csvRenderer
	pdf          pdfRenderer
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewExportService constructs an ExportService.
func NewExportService(repo exportApplicationRepository, csv csvRenderer, pdf pdfRenderer, queryTimeout time.Duration, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger, queryTimeout: queryTimeout}
}

// Generate renders the full application table in the requested format.
func (s *ExportService) Generate(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load applications for export")
	}

	dataset := export.Dataset{Headers: exportColumns, Rows: make([]map[string]string, 0, len(apps))}
	for _, app := range apps {
		dataset.Rows = append(dataset.Rows, flattenApplication(app))
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("scholarship-applications-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Scholarship Applications")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("scholarship-applications-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func flattenApplication(app models.Application) map[string]string {
	form := app.FormData
	verdict := app.EligibilityResult

	hasExperience := "No"
	years := "N/A"
	details := "N/A"
	if form.WorkExperience != nil && form.WorkExperience.HasExperience {
		hasExperience = "Yes"
		years = strconv.FormatFloat(form.WorkExperience.Years, 'f', -1, 64)
		details = form.WorkExperience.Details
	}

	status := "Not Eligible"
	if verdict.Eligible {
		status = "Eligible"
	}

	return map[string]string{
		"Application Code":         app.ApplicationCode,
		"Submission Date":          time.UnixMilli(app.Timestamp).UTC().Format("2006-01-02 15:04:05"),
		"Full Name":                form.PersonalInfo.FullName,
		"Date of Birth":            form.PersonalInfo.DateOfBirth,
		"Email":                    form.PersonalInfo.Email,
		"Phone":                    form.PersonalInfo.Phone,
		"Country":                  form.PersonalInfo.Country,
		"City":                     form.PersonalInfo.City,
		"Previous Education Level": string(form.PreviousEducationLevel),
		"Future Education Level":   string(form.FutureEducationLevel),
		"Degree Title / Major":     form.PreviousEducation.Degree,
		"University":               form.PreviousEducation.University,
		"Graduation Year":          form.PreviousEducation.GraduationYear,
		"Grade Type":               string(form.PreviousEducation.GradeType),
		"Grade":                    strconv.FormatFloat(form.PreviousEducation.Grade, 'f', -1, 64),
		"Target Countries":         strings.Join(form.Preferences.TargetCountries, ", "),
		"Has Work Experience":      hasExperience,
		"Years of Experience":      years,
		"Experience Details":       details,
		"Eligibility Status":       status,
		"Scholarship Type":         orNA(verdict.Type),
		"Success Chance":           orNA(verdict.Chance),
		"Eligible Countries":       orNA(strings.Join(verdict.Countries, ", ")),
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
