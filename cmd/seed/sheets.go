package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm/schema"
)

// timeLayouts 날짜 셀에 허용하는 형식
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// sheetRows 시트 하나 = 테이블 하나
type sheetRows struct {
	Table string
	Rows  []map[string]interface{}
}

// readSheets reads every sheet of f. The sheet name is the table and the first
// row holds column names. Empty cells are left out so column defaults apply.
func readSheets(f *excelize.File, tables map[string]db.Table) ([]sheetRows, error) {
	var out []sheetRows
	for _, name := range f.GetSheetList() {
		table, ok := tables[name]
		if !ok {
			return nil, fmt.Errorf("sheet %q is not a catalog table", name)
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}

		header := make([]*schema.Field, len(rows[0]))
		for i, col := range rows[0] {
			field, ok := table.Columns[strings.TrimSpace(col)]
			if !ok {
				return nil, fmt.Errorf("sheet %q: unknown column %q", name, col)
			}
			header[i] = field
		}

		s := sheetRows{Table: name}
		for i, row := range rows[1:] {
			rec := make(map[string]interface{}, len(header))
			for j, cell := range row {
				if j >= len(header) {
					break
				}
				cell = strings.TrimSpace(cell)
				if cell == "" {
					continue
				}
				v, err := convertCell(header[j], cell)
				if err != nil {
					// 헤더가 1행이므로 데이터는 2행부터
					return nil, fmt.Errorf("sheet %q row %d column %q: %w", name, i+2, header[j].DBName, err)
				}
				rec[header[j].DBName] = v
			}
			if len(rec) > 0 {
				s.Rows = append(s.Rows, rec)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// convertCell parses a cell into the Go type of its column.
func convertCell(field *schema.Field, cell string) (interface{}, error) {
	switch field.DataType {
	case schema.Int:
		return strconv.ParseInt(cell, 10, 64)
	case schema.Uint:
		return strconv.ParseUint(cell, 10, 64)
	case schema.Float:
		return strconv.ParseFloat(cell, 64)
	case schema.Bool:
		return strconv.ParseBool(cell)
	case schema.Time:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unsupported time %q", cell)
	default:
		return cell, nil
	}
}
