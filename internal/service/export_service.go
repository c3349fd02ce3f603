package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/export"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/storage"
)

// ExportFormat values accepted by the export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders a day's reports to CSV or PDF and hands out signed
// download tokens.
type ExportService struct {
	reports summaryReportRepository
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	store   *storage.LocalStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(reports summaryReportRepository, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports: reports,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		store:   store,
		signer:  signer,
		logger:  logger,
	}
}

// ExportReports renders the visible reports of one date and returns a signed
// download token for the stored file.
func (s *ExportService) ExportReports(ctx context.Context, scope models.AccessScope, date, groupID, format string) (*dto.ExportResponse, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if date == "" {
		date = time.Now().Format(models.ReportDateLayout)
	}
	if _, err := time.Parse(models.ReportDateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date")
	}

	reports, err := s.reports.ListForDate(ctx, date, groupID, "", scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports for export")
	}

	dataset := buildReportDataset(reports)
	exportID := uuid.NewString()
	filename := fmt.Sprintf("reports_%s_%s.%s", date, exportID, format)

	var data []byte
	switch format {
	case ExportFormatCSV:
		data, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		data, err = s.pdf.Render(dataset, "Daily Reports", date)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	relPath, err := s.store.Save(filename, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}

	s.logger.Info("export rendered",
		zap.String("export_id", exportID),
		zap.String("format", format),
		zap.Int("rows", len(dataset.Rows)))

	return &dto.ExportResponse{
		ExportID:  exportID,
		Date:      date,
		Format:    format,
		RowCount:  len(dataset.Rows),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// OpenDownload validates a signed token and opens the underlying file. The
// caller owns the returned handle.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	return file, relPath, nil
}

func buildReportDataset(reports []models.DailyReportDetail) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Date", "Student", "Group", "Mood", "Lunch", "Nap", "Behavior", "Medication", "Achievements", "Notes", "Complete"},
	}
	for _, report := range reports {
		behavior := ""
		if report.Behavior != nil {
			behavior = *report.Behavior
		}
		medication := ""
		if report.MedicationGiven {
			medication = report.MedicationName
			if medication == "" {
				medication = "yes"
			}
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":         report.ReportDate,
			"Student":      report.StudentName,
			"Group":        report.GroupName,
			"Mood":         report.Mood,
			"Lunch":        report.LunchIntake,
			"Nap":          yesNo(report.HadNap),
			"Behavior":     behavior,
			"Medication":   medication,
			"Achievements": report.Achievements,
			"Notes":        report.GeneralNotes,
			"Complete":     yesNo(report.Complete(false)),
		})
	}
	return dataset
}
