package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tuncerburak97/reservation-http-api/internal/dto"
	appErrors "github.com/tuncerburak97/reservation-http-api/pkg/errors"
	"github.com/tuncerburak97/reservation-http-api/pkg/export"
)

type availabilityResolver interface {
	GetAvailabilityForRange(ctx context.Context, businessID string, startDate, endDate time.Time) ([]dto.DayAvailabilityResponse, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult bundles rendered bytes with response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders availability ranges as downloadable CSV or PDF.
type ExportService struct {
	availability availabilityResolver
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(availability availabilityResolver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		availability: availability,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

// ExportAvailability resolves the range and renders one row per slot.
func (s *ExportService) ExportAvailability(ctx context.Context, businessID string, startDate, endDate time.Time, format ExportFormat) (*ExportResult, error) {
	days, err := s.availability.GetAvailabilityForRange(ctx, businessID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	dataset := availabilityDataset(days)
	base := fmt.Sprintf("availability_%s_%s_%s", businessID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case FormatPDF:
		title := fmt.Sprintf("Availability %s - %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func availabilityDataset(days []dto.DayAvailabilityResponse) export.Dataset {
	headers := []string{"Date", "Slot", "Status", "Reason", "Bookable", "Available Employees"}
	rows := make([]map[string]string, 0)
	for _, day := range days {
		for _, slot := range day.Slots {
			bookable := "no"
			if slot.IsBookable {
				bookable = "yes"
			}
			rows = append(rows, map[string]string{
				"Date":                day.Date,
				"Slot":                slot.TimeSlot.String(),
				"Status":              string(slot.Status),
				"Reason":              slot.Reason,
				"Bookable":            bookable,
				"Available Employees": strings.Join(slot.AvailableEmployeeUserIDs, " "),
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
