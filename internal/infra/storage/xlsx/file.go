package xlsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lynx/internal/domain/workbook"
)

var ErrWorkbookNotFound = errors.New("xlsx: workbook file not found")

// Read loads the three tracker sheets. Cells are read raw so date columns come
// back as serial numbers, which are turned into ISO dates here.
func Read(path string) (workbook.RawWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return workbook.RawWorkbook{}, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return workbook.RawWorkbook{}, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	var raw workbook.RawWorkbook
	if sheets[workbook.SheetBookings] {
		if raw.Bookings, err = readTable(f, workbook.SheetBookings, bookingDates); err != nil {
			return workbook.RawWorkbook{}, err
		}
	}
	if sheets[workbook.SheetMonthlyCosts] {
		if raw.MonthlyCosts, err = readTable(f, workbook.SheetMonthlyCosts, nil); err != nil {
			return workbook.RawWorkbook{}, err
		}
	}
	for _, name := range []string{workbook.SheetConsumables, workbook.SheetConsumablesAlt} {
		if !sheets[name] {
			continue
		}
		if raw.Consumables, err = readTable(f, name, nil); err != nil {
			return workbook.RawWorkbook{}, err
		}
		break
	}
	return raw, nil
}

var bookingDates = map[string]bool{workbook.ColCheckIn: true, workbook.ColCheckOut: true}

func readTable(f *excelize.File, sheet string, dates map[string]bool) (*workbook.RawTable, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %s: %w", sheet, err)
	}
	t := &workbook.RawTable{Name: sheet}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}
	for _, r := range rows[1:] {
		cells := make([]string, len(t.Header))
		for i := 0; i < len(r) && i < len(cells); i++ {
			cells[i] = r[i]
			if dates[t.Header[i]] {
				cells[i] = serialToDate(r[i])
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// serialToDate turns an Excel date serial into YYYY-MM-DD and leaves anything
// else, such as a date typed as text, untouched.
func serialToDate(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return raw
	}
	t, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return raw
	}
	return t.Format(time.DateOnly)
}

// Write replaces the tracker sheets in the file at path and keeps every other
// sheet. A missing file is created. The file is written to a sibling and
// renamed into place.
func Write(path string, raw workbook.RawWorkbook) error {
	f, err := excelize.OpenFile(path)
	created := false
	switch {
	case errors.Is(err, os.ErrNotExist):
		f, created = excelize.NewFile(), true
	case err != nil:
		return fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close()

	var stale []string
	// excelize.NewFile starts with Sheet1; it is dropped once real sheets exist.
	if created {
		stale = append(stale, f.GetSheetName(0))
	}
	for _, t := range []*workbook.RawTable{raw.Bookings, raw.MonthlyCosts, raw.Consumables} {
		if t == nil {
			continue
		}
		old, err := replaceSheet(f, t.Name)
		if err != nil {
			return err
		}
		if old != "" {
			stale = append(stale, old)
		}
		if t.Name == workbook.SheetConsumables {
			if idx, _ := f.GetSheetIndex(workbook.SheetConsumablesAlt); idx >= 0 {
				stale = append(stale, workbook.SheetConsumablesAlt)
			}
		}
		if err := writeTable(f, t); err != nil {
			return err
		}
	}
	for _, name := range stale {
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("xlsx: drop sheet %s: %w", name, err)
		}
	}
	if idx, err := f.GetSheetIndex(workbook.SheetBookings); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	tmp := filepath.Join(filepath.Dir(path), ".~"+filepath.Base(path))
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("xlsx: replace %s: %w", path, err)
	}
	return nil
}

// replaceSheet parks an existing sheet under a temporary name and creates an
// empty one in its place. It returns the parked name, if any.
func replaceSheet(f *excelize.File, name string) (string, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("xlsx: look up sheet %s: %w", name, err)
	}
	parked := ""
	if idx >= 0 {
		parked = name + "~old"
		if err := f.SetSheetName(name, parked); err != nil {
			return "", fmt.Errorf("xlsx: park sheet %s: %w", name, err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return "", fmt.Errorf("xlsx: create sheet %s: %w", name, err)
	}
	return parked, nil
}

func writeTable(f *excelize.File, t *workbook.RawTable) error {
	header := make([]any, len(t.Header))
	dateCols := make(map[int]bool)
	for i, h := range t.Header {
		header[i] = h
		if t.Name == workbook.SheetBookings && bookingDates[h] {
			dateCols[i] = true
		}
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header of %s: %w", t.Name, err)
	}
	for r, cells := range t.Rows {
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = cellValue(c, dateCols[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write row %d of %s: %w", r+2, t.Name, err)
		}
	}
	return nil
}

// cellValue stores numbers as numbers and ISO dates as dates so the sheet stays
// usable in a spreadsheet program.
func cellValue(raw string, date bool) any {
	if raw == "" {
		return nil
	}
	if date {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			return t
		}
		return raw
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
