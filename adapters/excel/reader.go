package excel

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"goeval/domain/core"
	"goeval/domain/indicator"

	"github.com/xuri/excelize/v2"
)

// IndicatorReader loads indicator definitions from an Excel workbook. One
// sheet per tier level; the level key may be an exact sheet name, a
// substring of one, or a known level alias. Reading has no side effects and
// no caching of its own; callers share results through a TableCache.
type IndicatorReader struct {
	filePath string
}

// NewIndicatorReader creates a reader over the given workbook path.
func NewIndicatorReader(filePath string) *IndicatorReader {
	return &IndicatorReader{filePath: filePath}
}

// FilePath returns the workbook path the reader was created over.
func (r *IndicatorReader) FilePath() string {
	return r.filePath
}

// levelAliases lets English level keys resolve against Chinese sheet names.
var levelAliases = map[string][]string{
	"beginner":     {"初级"},
	"intermediate": {"中级"},
	"advanced":     {"高级"},
	"junior":       {"初级"},
	"senior":       {"高级"},
	"municipal":    {"市级"},
	"provincial":   {"省级"},
	"national":     {"国家级"},
}

// Load reads and normalizes the indicator sheet for one level key. A missing
// sheet is the only fatal condition; malformed individual rows are skipped
// with a logged warning, and an unresolvable leaf-text column degrades to an
// empty list rather than an error.
func (r *IndicatorReader) Load(levelKey string) ([]indicator.Definition, error) {
	start := time.Now()
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: workbook %s does not exist", core.ErrResourceMissing, r.filePath)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: workbook %s unreadable: %w", core.ErrResourceMissing, r.filePath, err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f.GetSheetList(), levelKey)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, core.NewSheetMissingError(levelKey, f.GetSheetList())
	}

	data := normalizeRows(sheetName, rows)
	defs := ParseDefinitions(data)
	log.Printf("[IndicatorReader] loaded %d indicators from sheet %q in %.2fms",
		len(defs), sheetName, float64(time.Since(start).Nanoseconds())/1e6)
	return defs, nil
}

// resolveSheet matches a level key against the workbook's sheet list: exact
// name, substring in either direction, then level aliases.
func resolveSheet(sheets []string, levelKey string) (string, error) {
	key := strings.TrimSpace(levelKey)
	for _, s := range sheets {
		if strings.EqualFold(strings.TrimSpace(s), key) {
			return s, nil
		}
	}
	if key != "" {
		for _, s := range sheets {
			if strings.Contains(s, key) || strings.Contains(key, strings.TrimSpace(s)) {
				return s, nil
			}
		}
		for _, alias := range levelAliases[strings.ToLower(key)] {
			for _, s := range sheets {
				if strings.Contains(s, alias) {
					return s, nil
				}
			}
		}
	}
	return "", core.NewSheetMissingError(levelKey, sheets)
}

// normalizeRows converts raw cell rows into header-keyed rows, trimming
// whitespace the way the sheets pad merged cells.
func normalizeRows(sheetName string, rows [][]string) SheetData {
	data := SheetData{Name: sheetName}
	if len(rows) == 0 {
		return data
	}

	data.Headers = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		data.Headers[i] = strings.TrimSpace(h)
	}

	for _, row := range rows[1:] {
		rowData := make(RawRow, len(data.Headers))
		for j, cell := range row {
			if j < len(data.Headers) {
				rowData[data.Headers[j]] = strings.TrimSpace(cell)
			}
		}
		data.Rows = append(data.Rows, rowData)
	}
	return data
}

// ParseDefinitions normalizes sheet rows into indicator definitions: column
// synonym resolution, carry-forward of blank major/minor labels (merged-cell
// semantics), blank-leaf rows skipped, score defaulting to "1".
func ParseDefinitions(data SheetData) []indicator.Definition {
	cols := resolveColumns(data.Headers)
	leafCol, ok := cols[fieldLeaf]
	if !ok {
		log.Printf("[IndicatorReader] sheet %q: no leaf-text column among %v, returning empty set", data.Name, data.Headers)
		return []indicator.Definition{}
	}

	defs := make([]indicator.Definition, 0, len(data.Rows))
	var lastMajor, lastMinor string
	for i, row := range data.Rows {
		// Section-header rows carry a new major or minor label with no leaf
		// text; record the labels before deciding whether to keep the row.
		major := row[cols[fieldMajor]]
		if major == "" {
			major = lastMajor
		} else {
			lastMajor = major
		}
		minor := row[cols[fieldMinor]]
		if minor == "" {
			minor = lastMinor
		} else {
			lastMinor = minor
		}

		leaf := row[leafCol]
		if leaf == "" {
			continue
		}

		seq := len(defs) + 1
		if raw := row[cols[fieldSequence]]; raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				seq = n
			} else {
				log.Printf("[IndicatorReader] sheet %q row %d: unparseable sequence %q, using %d", data.Name, i+2, raw, seq)
			}
		}

		score := row[cols[fieldScore]]
		if score == "" {
			score = "1"
		}

		defs = append(defs, indicator.Definition{
			Sequence:   seq,
			Major:      major,
			Minor:      minor,
			LeafText:   leaf,
			Kind:       row[cols[fieldKind]],
			ScoreValue: score,
			RuleText:   row[cols[fieldRule]],
			Scope:      row[cols[fieldScope]],
		})
	}
	return defs
}
