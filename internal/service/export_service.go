package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
	"github.com/sampark-ngo/placement-tracker/pkg/export"
)

// Export formats supported by the reporting endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// exportHeaders define the column order of generated reports.
var exportHeaders = []string{
	"ID", "Name", "Email", "Region", "Center", "Course", "Gender", "Phone",
	"Reporting Month", "Placement Month", "Company", "Designation", "Sector",
	"Pre-Training Income", "Post-Training Income",
}

type recordLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

// ExportFile bundles rendered bytes with download metadata.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders placement records into downloadable reports.
type ExportService struct {
	students recordLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(students recordLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Export renders all records in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	dataset := buildExportDataset(students)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: "placement-records.csv"}, nil
	default:
		content, err := s.pdf.Render(dataset, "Placement Records")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: "placement-records.pdf"}, nil
	}
}

func buildExportDataset(students []models.Student) export.Dataset {
	rows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, map[string]string{
			"ID":                   strconv.FormatInt(student.ID, 10),
			"Name":                 student.Name,
			"Email":                student.Email,
			"Region":               deref(student.Region),
			"Center":               deref(student.CenterName),
			"Course":               deref(student.Course),
			"Gender":               deref(student.Gender),
			"Phone":                deref(student.Phone),
			"Reporting Month":      deref(student.ReportingMonth),
			"Placement Month":      deref(student.PlacementMonth),
			"Company":              deref(student.CompanyName),
			"Designation":          deref(student.Designation),
			"Sector":               deref(student.Sector),
			"Pre-Training Income":  deref(student.PreTrainingIncome),
			"Post-Training Income": deref(student.PostTrainingIncome),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
