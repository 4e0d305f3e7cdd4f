package pipeline

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoiceflow/internal"
	"invoiceflow/internal/util"
)

// LoadMasterLookup reads the master reference workbook (first sheet,
// column A = external code, column B = item number, header row skipped)
// into an item-number keyed map. Duplicate item numbers keep the first
// occurrence.
func LoadMasterLookup(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open master workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read master sheet %q: %w", sheet, err)
	}

	lookup := map[string]string{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		code := strings.TrimSpace(pickCell(row, 0))
		item := strings.TrimSpace(pickCell(row, 1))
		if item == "" {
			continue
		}
		if _, exists := lookup[item]; exists {
			continue
		}
		lookup[item] = code
	}
	return lookup, nil
}

// ApplyMasterCodes back-fills the external code column on every output
// row. Mapped codes are zero-padded to padWidth and wrapped in an Excel
// text-forcing formula so numeric-looking codes survive reformatting;
// unmapped item numbers get the literal "NA".
func ApplyMasterCodes(rows [][]string, lookup map[string]string, schema internal.TemplateSchema, padWidth int) {
	for _, row := range rows {
		item := strings.TrimSpace(row[schema.ItemNumberIdx])
		if item == "" {
			continue
		}
		code, ok := lookup[item]
		if !ok || code == "" {
			row[schema.UPCIdx] = "NA"
			continue
		}
		row[schema.UPCIdx] = fmt.Sprintf("=%q", util.Zfill(code, padWidth))
	}
}
