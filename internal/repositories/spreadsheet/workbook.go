// Package spreadsheet keeps quizzes, questions, results and teachers in one
// xlsx workbook, one sheet per record kind. Sheets are read by header name,
// so columns may be reordered or extended by hand.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const (
	SheetQuizzes   = "Quizzes"
	SheetQuestions = "Questions"
	SheetResults   = "Results"
	SheetTeachers  = "Teachers"

	defaultSheet = "Sheet1"
)

var sheetColumns = map[string][]string{
	SheetQuizzes: {colID, colTitle, colClassLevel, colCategory, colTimeLimit, colCreatedAt, colAccessCode, colRequireCode},
	SheetQuestions: {colID, colQuizID, colType, colQuestion, colOptions, colCorrectAnswer, colItems, colText, colBlanks,
		colDistractors, colData},
	SheetResults: {colID, colQuizID, colStudentName, colClass, colQuizTitle, colScore, colCorrectCount, colTotalQuestions,
		colTimeTaken, colSubmittedAt, colAnswers, colVerdicts},
	SheetTeachers: {colUsername, colPassword, colFullName, colRole, colTeacherClass},
}

// sheetOrder fixes the tab order of a new workbook
var sheetOrder = []string{SheetQuizzes, SheetQuestions, SheetResults, SheetTeachers}

// Workbook is a repositories.Repository over an excelize file. Every
// operation holds the workbook lock, and writes are saved to disk before
// they return.
type Workbook struct {
	mu     sync.Mutex
	file   *excelize.File
	path   string
	logger *slog.Logger
}

// Open loads the workbook at path, creating it when it does not exist.
// Missing sheets and columns are added.
func Open(path string, logger *slog.Logger) (*Workbook, error) {
	var f *excelize.File
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		logger.Info("Creating quiz workbook", "path", path)
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
	}

	w := &Workbook{file: f, path: path, logger: logger}
	if err := w.init(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// NewInMemory returns a workbook that is never written to disk
func NewInMemory(logger *slog.Logger) (*Workbook, error) {
	w := &Workbook{file: excelize.NewFile(), logger: logger}
	if err := w.init(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workbook) init() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, name := range sheetOrder {
		if err := w.ensureSheet(name, sheetColumns[name]); err != nil {
			return err
		}
	}

	if idx, _ := w.file.GetSheetIndex(defaultSheet); idx >= 0 {
		if err := w.file.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	if idx, _ := w.file.GetSheetIndex(SheetQuizzes); idx >= 0 {
		w.file.SetActiveSheet(idx)
	}
	return w.saveLocked()
}

func (w *Workbook) Quiz() repositories.QuizRepository {
	return &quizSheet{w: w}
}

func (w *Workbook) Result() repositories.ResultRepository {
	return &resultSheet{w: w}
}

func (w *Workbook) Teacher() repositories.TeacherRepository {
	return &teacherSheet{w: w}
}

func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// WriteTo writes the current workbook as xlsx
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.WriteTo(out)
}

// ===== SHEET HELPERS (callers hold w.mu) =====

// record is one data row keyed by header name
type record map[string]string

// row is one data row to write, keyed by header name
type row map[string]interface{}

func (w *Workbook) saveLocked() error {
	if w.path == "" {
		return nil
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

// ensureSheet creates the sheet with a header row, or appends any of columns
// missing from an existing header.
func (w *Workbook) ensureSheet(name string, columns []string) error {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", name, err)
	}
	if idx < 0 {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		return w.setHeader(name, columns)
	}

	header, err := w.header(name)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	changed := false
	for _, col := range columns {
		if !present[col] {
			header = append(header, col)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	w.logger.Info("Adding missing columns to sheet", "sheet", name, "columns", len(header))
	return w.setHeader(name, header)
}

func (w *Workbook) setHeader(name string, columns []string) error {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := w.file.SetSheetRow(name, "A1", &values); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}
	return nil
}

func (w *Workbook) header(name string) ([]string, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// readRecords returns the data rows of a sheet in order, skipping blank rows.
// It also returns the 1-based sheet row number of every record.
func (w *Workbook) readRecords(name string) ([]record, []int, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}

	header := rows[0]
	records := make([]record, 0, len(rows)-1)
	lines := make([]int, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		rec := make(record, len(header))
		empty := true
		for col, h := range header {
			if col < len(cells) && cells[col] != "" {
				rec[h] = validator.UnsanitizeSheetCell(cells[col])
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, rec)
		lines = append(lines, i+2)
	}
	return records, lines, nil
}

// appendRows writes rows after the last used row. String values pass through
// the formula guard.
func (w *Workbook) appendRows(name string, rows []row) error {
	existing, err := w.file.GetRows(name)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(existing) == 0 {
		return fmt.Errorf("sheet %s has no header row", name)
	}
	header := existing[0]
	next := len(existing) + 1

	for _, r := range rows {
		values := make([]interface{}, len(header))
		for col, h := range header {
			v, ok := r[h]
			if !ok {
				values[col] = ""
				continue
			}
			if s, isString := v.(string); isString {
				v = validator.SanitizeSheetCell(s)
			}
			values[col] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, next)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to append row to %s: %w", name, err)
		}
		next++
	}
	return nil
}

// deleteWhere removes every data row whose column equals value and reports
// how many were removed.
func (w *Workbook) deleteWhere(name, column, value string) (int, error) {
	records, lines, err := w.readRecords(name)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := len(records) - 1; i >= 0; i-- {
		if records[i][column] != value {
			continue
		}
		if err := w.file.RemoveRow(name, lines[i]); err != nil {
			return removed, fmt.Errorf("failed to delete row %d of %s: %w", lines[i], name, err)
		}
		removed++
	}
	return removed, nil
}
