package excel

// RawRow represents one spreadsheet row as header -> cell text.
type RawRow map[string]string

// SheetData is the raw content of one indicator sheet.
type SheetData struct {
	Name    string   // resolved sheet name
	Headers []string // trimmed column headers
	Rows    []RawRow // data rows in source order
}
