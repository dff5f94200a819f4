package importer

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FileFormat identifies how an uploaded file is parsed
type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

// DetectFormat decides how to parse an upload from its declared content
// type and file name. Anything that is neither CSV nor a spreadsheet is
// rejected before parsing begins.
func DetectFormat(filename, contentType string) (FileFormat, error) {
	name := strings.ToLower(filename)

	isCSV := contentType == "text/csv" ||
		contentType == "application/vnd.ms-excel" ||
		strings.HasSuffix(name, ".csv")
	isSpreadsheet := contentType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" ||
		strings.HasSuffix(name, ".xlsx") ||
		strings.HasSuffix(name, ".xls")

	// text/csv wins when both match (browsers send vnd.ms-excel for .csv)
	if isCSV {
		return FormatCSV, nil
	}
	if isSpreadsheet {
		return FormatXLSX, nil
	}
	return "", parseErrorf("unsupported file type: please upload a CSV or Excel file")
}

// RawRow is one data row keyed by header, every header present,
// values trimmed. Produced identically by both parse paths.
type RawRow map[string]string

// ParsedFile is the format-independent output of parsing: the header
// vocabulary in source order plus the data rows in source order.
type ParsedFile struct {
	Headers []string
	Rows    []RawRow
}

// Parse converts an uploaded file into rows using the detected format
func Parse(data []byte, format FileFormat) (*ParsedFile, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(string(data))
	case FormatXLSX:
		return ParseXLSX(data)
	}
	return nil, parseErrorf("unsupported file type: please upload a CSV or Excel file")
}

// ParseCSV parses CSV text. Line 1 is the header; each header cell is
// trimmed and stripped of one pair of surrounding quotes. Data lines are
// tokenized by a quote-aware scan: a double quote toggles the in-quotes
// flag, commas split only outside quotes. Blank lines are skipped.
func ParseCSV(text string) (*ParsedFile, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, parseErrorf("CSV file must have at least a header row and one data row")
	}

	headers := make([]string, 0)
	for _, h := range strings.Split(lines[0], ",") {
		h = strings.TrimSpace(h)
		h = stripSurroundingQuotes(h)
		headers = append(headers, h)
	}

	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := tokenizeCSVLine(line)

		row := make(RawRow, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = values[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &ParsedFile{Headers: headers, Rows: rows}, nil
}

// tokenizeCSVLine splits one line on commas outside double quotes.
// Quote characters themselves are dropped, tokens are trimmed.
func tokenizeCSVLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}

// ParseXLSX reads the first worksheet of a workbook. Row 1 is the
// header; later rows become data rows only when at least one cell is
// non-empty after trimming. Missing cells map to empty strings so every
// row carries every header key.
func ParseXLSX(data []byte) (*ParsedFile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, parseErrorf("failed to read spreadsheet: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseErrorf("spreadsheet has no worksheet")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, parseErrorf("failed to read worksheet: %v", err)
	}
	if len(cells) == 0 {
		return nil, parseErrorf("spreadsheet is empty")
	}

	headers := make([]string, 0, len(cells[0]))
	for _, h := range cells[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]RawRow, 0, len(cells)-1)
	for _, source := range cells[1:] {
		row := make(RawRow, len(headers))
		hasData := false
		for i, header := range headers {
			value := ""
			if i < len(source) {
				value = strings.TrimSpace(source[i])
			}
			row[header] = value
			if value != "" {
				hasData = true
			}
		}
		if hasData {
			rows = append(rows, row)
		}
	}

	return &ParsedFile{Headers: headers, Rows: rows}, nil
}

func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
