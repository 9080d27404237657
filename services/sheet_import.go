package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Structural column headers. Every other header is a profile column.
const (
	IndexColumn   = "Unnamed: 0"
	ItemColumn    = "ITEM"
	ServiceColumn = "SERVICIOS"
)

var structuralColumns = map[string]bool{
	IndexColumn:   true,
	ItemColumn:    true,
	ServiceColumn: true,
}

var (
	ErrUnsupportedFormat    = errors.New("unsupported file format: must be .xlsx, .xls or .csv")
	ErrEmptySheet           = errors.New("file must contain a header row")
	ErrNoWorksheet          = errors.New("no worksheet found")
	ErrMissingServiceColumn = fmt.Errorf("missing required column: %s", ServiceColumn)
)

// IngestionError reports that an uploaded file could not be read as a table.
// It aborts the whole run.
type IngestionError struct {
	FileName string
	Err      error
}

func (e *IngestionError) Error() string {
	if e.FileName == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.FileName, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// Table is a spreadsheet read fully into memory. Every row has exactly
// len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// Column is a profile column and its position in the header row.
type Column struct {
	Index int
	Name  string
}

// ProfileColumns returns every non-structural header in column order. Blank
// headers are named after their position, so only a blank first column is
// the index column.
func ProfileColumns(headers []string) []Column {
	var cols []Column
	for i, h := range headers {
		name := columnName(i, h)
		if structuralColumns[name] {
			continue
		}
		cols = append(cols, Column{Index: i, Name: name})
	}
	return cols
}

// columnName returns h, or "Unnamed: <i>" when h is empty.
func columnName(i int, h string) string {
	if h == "" {
		return fmt.Sprintf("Unnamed: %d", i)
	}
	return h
}

// ReadTable reads the first sheet of an .xlsx, .xls or .csv file. The format
// is chosen from the file name extension. Failures come back as
// *IngestionError.
func ReadTable(r io.Reader, fileName string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Err: fmt.Errorf("read upload: %w", err)}
	}

	var headers []string
	var rows [][]Cell

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		headers, rows, err = parseExcel(bytes.NewReader(data))
	case ".xls":
		headers, rows, err = parseXLS(bytes.NewReader(data))
	case ".csv":
		headers, rows, err = parseCSV(bytes.NewReader(data))
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Err: err}
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// parseCSV reads a CSV file and returns headers + inferred data rows.
func parseCSV(file io.Reader) ([]string, [][]Cell, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, nil, ErrEmptySheet
	}

	headers := normalizeHeaders(allRows[0])
	rows := make([][]Cell, 0, len(allRows)-1)
	for _, raw := range allRows[1:] {
		rows = append(rows, inferRow(raw, len(headers)))
	}
	return headers, rows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first
// sheet. Text cells stay strings even when they look numeric.
func parseExcel(file io.Reader) ([]string, [][]Cell, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, ErrNoWorksheet
	}
	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rawRows) == 0 {
		return nil, nil, ErrEmptySheet
	}

	headers := normalizeHeaders(rawRows[0])
	rows := make([][]Cell, 0, len(rawRows)-1)
	for r, raw := range rawRows[1:] {
		row := make([]Cell, len(headers))
		for c := range headers {
			if c >= len(raw) || raw[c] == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, nil, fmt.Errorf("cell at row %d col %d: %w", r+2, c+1, err)
			}
			typ, err := f.GetCellType(sheetName, axis)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %s: %w", axis, err)
			}
			cell := excelCell(raw[c], typ)

			// Dates are numbers with a date format; they never count as hours.
			if _, ok := cell.(float64); ok {
				isDate, err := isDateCell(f, sheetName, axis)
				if err != nil {
					return nil, nil, fmt.Errorf("cell %s style: %w", axis, err)
				}
				if isDate {
					cell = excelDate(raw[c])
				}
			}
			row[c] = cell
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func excelCell(raw string, typ excelize.CellType) Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeDate:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeError:
		return nil
	default:
		return inferCell(raw)
	}
}

// builtinDateFormats are the built-in number format ids that display a date
// or a time.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func isDateCell(f *excelize.File, sheet, axis string) (bool, error) {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil || styleID == 0 {
		return false, err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt), nil
	}
	return builtinDateFormats[style.NumFmt], nil
}

// isDateFormat reports whether a custom number format code shows any date or
// time part. Quoted literals, escaped characters and bracketed colors or
// conditions are ignored; elapsed-time brackets such as [h] count.
func isDateFormat(code string) bool {
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			inner := strings.ToLower(code[i+1 : i+end])
			if inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i += end
		default:
			switch ch | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// excelDate converts a raw date serial into a time.Time cell.
func excelDate(raw string) Cell {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t
}

// parseXLS reads the first sheet of a legacy BIFF workbook. The decoder
// panics on some malformed files, so panics are turned into errors.
func parseXLS(file io.ReadSeeker) (headers []string, rows [][]Cell, err error) {
	defer func() {
		if p := recover(); p != nil {
			headers, rows, err = nil, nil, fmt.Errorf("failed to read XLS file: %v", p)
		}
	}()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLS file: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, nil, ErrNoWorksheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil, ErrNoWorksheet
	}

	var rawRows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rawRows = append(rawRows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rawRows = append(rawRows, cells)
	}
	if len(rawRows) == 0 || len(rawRows[0]) == 0 {
		return nil, nil, ErrEmptySheet
	}

	headers = normalizeHeaders(rawRows[0])
	rows = make([][]Cell, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		rows = append(rows, inferRow(raw, len(headers)))
	}
	return headers, rows, nil
}

// normalizeHeaders strips a UTF-8 BOM and names blank headers by position.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = columnName(i, h)
	}
	return headers
}

// inferRow pads or truncates raw to width cells.
func inferRow(raw []string, width int) []Cell {
	row := make([]Cell, width)
	for c := 0; c < width && c < len(raw); c++ {
		row[c] = inferCell(raw[c])
	}
	return row
}

// inferCell types an untyped cell: empty is nil, numeric text is float64,
// anything else stays a string.
func inferCell(raw string) Cell {
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n
	}
	return raw
}

// cellValue returns the cell at idx, or nil when the row is too short.
func cellValue(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}
