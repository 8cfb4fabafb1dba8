package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/campus-track/attendance-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportService struct {
	reports ReportService
	logger  utils.Logger
}

func NewExportService(reports ReportService, logger utils.Logger) ExportService {
	return &exportService{reports: reports, logger: logger}
}

// SummaryXLSX renders the department summary into a single-sheet workbook.
func (s *exportService) SummaryXLSX(ctx context.Context, department string) (*ExportFile, error) {
	report, err := s.reports.Summary(ctx, department)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Roll No", "Name", "Presents", "Absents", "Total Days", "Percentage", "Category"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, entry := range report.Entries {
		values := []interface{}{
			entry.RollNo,
			entry.Name,
			entry.Presents,
			entry.Absents,
			entry.TotalDays,
			entry.Percentage,
			entry.Category,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_summary_%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("summary exported", "department", department, "rows", len(report.Entries))

	return &ExportFile{
		Filename:    filename,
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	}, nil
}
