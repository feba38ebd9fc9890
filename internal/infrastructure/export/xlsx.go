// Package export renders tabular reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"garage/internal/shared/biztime"
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindMoney
	KindDate
	KindDateTime
)

type Column struct {
	Header string
	Width  float64
	Kind   ColumnKind
}

// Table is one worksheet. Each row holds one value per column; nil and nil
// pointers render as empty cells.
type Table struct {
	Sheet       string
	Title       string
	GeneratedAt time.Time
	Columns     []Column
	Rows        [][]any
}

const (
	titleRow  = 1
	headerRow = 3
	moneyFmt  = "#,##0.00"
)

// WriteXLSX writes t as a single sheet workbook to w.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	title := t.Title
	if !t.GeneratedAt.IsZero() {
		title = fmt.Sprintf("%s (%s)", t.Title, biztime.Format(t.GeneratedAt, "2006-01-02 15:04"))
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)
	_ = f.SetRowHeight(sheet, titleRow, 24)

	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		_ = f.SetCellStyle(sheet, cell, cell, styles.header)

		width := col.Width
		if width <= 0 {
			width = 18
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}

	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, expected %d", r+1, len(row), len(t.Columns))
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			value, ok := cellValue(t.Columns[c].Kind, v)
			if !ok {
				continue
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if t.Columns[c].Kind == KindMoney {
				_ = f.SetCellStyle(sheet, cell, cell, styles.money)
			}
		}
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow+len(t.Rows))
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		_ = f.AutoFilter(sheet, first+":"+last, nil)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type styleSet struct {
	title, header, money int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, fmt.Errorf("failed to create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := moneyFmt
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}
	return s, nil
}

// cellValue converts v for the column kind. ok is false for empty cells.
func cellValue(kind ColumnKind, v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *time.Time:
		if x == nil {
			return nil, false
		}
		return cellValue(kind, *x)
	case time.Time:
		if x.IsZero() {
			return nil, false
		}
		if kind == KindDate {
			return biztime.Format(x, biztime.DateLayout), true
		}
		return biztime.Format(x, "2006-01-02 15:04"), true
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case *string:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *int:
		if x == nil {
			return nil, false
		}
		return *x, true
	default:
		return v, true
	}
}
