package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Kết quả"
	statsSheet   = "Thống kê"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"

	// vi-VN style timestamp, time first
	exportTimeLayout = "15:04:05 2/1/2006"
)

var resultHeaders = []string{
	"Học sinh", "Lớp", "Điểm", "Số câu đúng", "Tổng câu", "Thời gian (phút)", "Ngày nộp",
}

// ExportLocation is the zone submission times are rendered in (UTC+7).
var ExportLocation = time.FixedZone("ICT", 7*60*60)

type exportService struct {
	results ResultService
	log     *ServiceLogger
	now     func() time.Time
}

func NewExportService(results ResultService, logger *ServiceLogger) ExportService {
	return &exportService{
		results: results,
		log:     logger,
		now:     time.Now,
	}
}

// ExportResultsExcel writes the filtered results plus a statistics sheet.
func (s *exportService) ExportResultsExcel(ctx context.Context, query ResultQuery) (*ExportFile, error) {
	op := s.log.start(ctx, "export_results_excel", "result")

	overview, err := s.results.Overview(ctx, query)
	if err != nil {
		op.done(query.QuizID, err)
		return nil, err
	}

	data, err := renderResultsWorkbook(overview)
	if err != nil {
		op.done(query.QuizID, err)
		return nil, err
	}

	op.done(query.QuizID, nil)
	return &ExportFile{
		Filename:    s.filename("xlsx"),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExportResultsCSV writes the same columns as the workbook. The UTF-8 byte
// order mark keeps spreadsheet programs from garbling Vietnamese text.
func (s *exportService) ExportResultsCSV(ctx context.Context, query ResultQuery) (*ExportFile, error) {
	op := s.log.start(ctx, "export_results_csv", "result")

	results, err := s.results.List(ctx, query)
	if err != nil {
		op.done(query.QuizID, err)
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	writer := csv.NewWriter(&buf)
	if err := writer.Write(resultHeaders); err != nil {
		op.done(query.QuizID, err)
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		row := resultRow(r)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := writer.Write(record); err != nil {
			op.done(query.QuizID, err)
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		op.done(query.QuizID, err)
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	op.done(query.QuizID, nil)
	return &ExportFile{
		Filename:    s.filename("csv"),
		ContentType: csvContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) filename(ext string) string {
	return fmt.Sprintf("ket-qua-%s.%s", s.now().In(ExportLocation).Format("2006-01-02"), ext)
}

func resultRow(r *models.StudentResult) []interface{} {
	return []interface{}{
		r.StudentName,
		r.StudentClass,
		r.Score,
		r.CorrectCount,
		r.TotalQuestions,
		r.TimeTaken,
		r.SubmittedAt.In(ExportLocation).Format(exportTimeLayout),
	}
}

func renderResultsWorkbook(overview *ResultsOverview) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := writeRow(f, resultsSheet, 1, toRow(resultHeaders)); err != nil {
		return nil, err
	}
	for i, r := range overview.Results {
		if err := writeRow(f, resultsSheet, i+2, resultRow(r)); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(resultHeaders), 1)
	if err := f.SetCellStyle(resultsSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(resultsSheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(resultsSheet, "G", "G", 20); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	stats := overview.Stats
	rows := [][]interface{}{
		{"Tổng số bài", stats.Total},
		{"Điểm trung bình", stats.Average},
		{"Điểm cao nhất", stats.Highest},
		{"Điểm thấp nhất", stats.Lowest},
		{"Số bài đạt", stats.PassCount},
		{"Tỉ lệ đạt (%)", stats.PassRate},
		{},
		{"Khoảng điểm", "Số học sinh"},
	}
	for _, bucket := range overview.Distribution {
		rows = append(rows, []interface{}{bucket.Range, bucket.Count})
	}
	for i, row := range rows {
		if err := writeRow(f, statsSheet, i+1, row); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
