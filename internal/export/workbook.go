// Package export renders employee and attendance listings as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/xuri/excelize/v2"

	"github.com/example/hrms-lite/internal/application"
)

// ContentType is the media type of the rendered workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	employeesSheet  = "Employees"
	attendanceSheet = "Attendance"

	dateFormat      = "yyyy-mm-dd"
	timestampFormat = "yyyy-mm-dd hh:mm:ss"
)

var (
	employeeHeaders   = []interface{}{"Employee ID", "Full Name", "Email", "Department", "Created At"}
	attendanceHeaders = []interface{}{"Employee ID", "Full Name", "Email", "Department", "Date", "Status", "Marked At"}
)

// WriteEmployees writes the employee listing as a single-sheet workbook.
func WriteEmployees(w io.Writer, employees []application.Employee) error {
	book, err := newBook(employeesSheet, employeeHeaders)
	if err != nil {
		return err
	}
	defer book.close()

	for i, employee := range employees {
		row := i + 2
		values := []interface{}{
			employee.EmployeeID,
			employee.FullName,
			employee.Email,
			employee.Department,
			employee.CreatedAt.UTC(),
		}
		if err := book.setRow(row, values); err != nil {
			return err
		}
		if err := book.style(5, row, book.timestampStyle); err != nil {
			return err
		}
	}

	if err := book.finish([]float64{14, 28, 32, 20, 22}, len(employees)); err != nil {
		return err
	}
	return book.write(w)
}

// WriteAttendance writes the attendance entries of one listing. Dates that
// are not real calendar days are written as text.
func WriteAttendance(w io.Writer, entries []application.AttendanceEntry) error {
	book, err := newBook(attendanceSheet, attendanceHeaders)
	if err != nil {
		return err
	}
	defer book.close()

	for i, entry := range entries {
		row := i + 2
		var day interface{} = entry.Date
		calendarDay, parseErr := date.ParseDate(entry.Date)
		if parseErr == nil {
			day = calendarDay.ToTime()
		}

		values := []interface{}{
			entry.EmployeeID,
			entry.FullName,
			entry.Email,
			entry.Department,
			day,
			entry.Status,
			entry.CreatedAt.UTC(),
		}
		if err := book.setRow(row, values); err != nil {
			return err
		}
		if parseErr == nil {
			if err := book.style(5, row, book.dateStyle); err != nil {
				return err
			}
		}
		if err := book.style(7, row, book.timestampStyle); err != nil {
			return err
		}
	}

	if err := book.finish([]float64{14, 28, 32, 20, 12, 10, 22}, len(entries)); err != nil {
		return err
	}
	return book.write(w)
}

type workbook struct {
	file    *excelize.File
	sheet   string
	columns int

	dateStyle      int
	timestampStyle int
}

func newBook(sheet string, headers []interface{}) (*workbook, error) {
	file := excelize.NewFile()
	book := &workbook{file: file, sheet: sheet, columns: len(headers)}

	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		book.close()
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		book.close()
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	dateFmt, timestampFmt := dateFormat, timestampFormat
	if book.dateStyle, err = file.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		book.close()
		return nil, fmt.Errorf("export: date style: %w", err)
	}
	if book.timestampStyle, err = file.NewStyle(&excelize.Style{CustomNumFmt: &timestampFmt}); err != nil {
		book.close()
		return nil, fmt.Errorf("export: timestamp style: %w", err)
	}

	if err := book.setRow(1, headers); err != nil {
		book.close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		book.close()
		return nil, fmt.Errorf("export: style header: %w", err)
	}
	return book, nil
}

func (b *workbook) setRow(row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	if err := b.file.SetSheetRow(b.sheet, cell, &values); err != nil {
		return fmt.Errorf("export: write row %d: %w", row, err)
	}
	return nil
}

func (b *workbook) style(col, row, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("export: cell (%d,%d): %w", col, row, err)
	}
	if err := b.file.SetCellStyle(b.sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("export: style %s: %w", cell, err)
	}
	return nil
}

// finish freezes the header row, sizes the columns and adds a filter over the data.
func (b *workbook) finish(widths []float64, rows int) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("export: column %d: %w", i+1, err)
		}
		if err := b.file.SetColWidth(b.sheet, col, col, width); err != nil {
			return fmt.Errorf("export: width %s: %w", col, err)
		}
	}

	if err := b.file.SetPanes(b.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(b.columns, rows+1)
	if err != nil {
		return fmt.Errorf("export: filter range: %w", err)
	}
	if err := b.file.AutoFilter(b.sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("export: filter: %w", err)
	}

	return b.file.SetDocProps(&excelize.DocProperties{
		Creator: "HRMS Lite",
		Title:   b.sheet,
		Created: time.Now().UTC().Format(time.RFC3339),
	})
}

func (b *workbook) write(w io.Writer) error {
	if err := b.file.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func (b *workbook) close() {
	_ = b.file.Close()
}
