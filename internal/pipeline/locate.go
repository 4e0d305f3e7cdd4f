package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoiceflow/internal"
	"invoiceflow/internal/config"
	"invoiceflow/internal/util"
)

// ErrHeaderNotFound means no header row containing the three required
// columns was found within the bounded skip search.
var ErrHeaderNotFound = errors.New("required columns not found")

type lineItemColumns struct {
	groupKey int
	netAmt   int
	material int
}

// LocateLineItems scans the first sheet of the input workbook, trying
// skip offsets 0..HeaderScanLimit until a row containing all required
// column names is found, then parses the rows below it. Rows with an
// empty group key are dropped. The result is sorted by group key
// ascending, original row order preserved within equal keys.
func LocateLineItems(path string, cfg config.Config) ([]internal.LineItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	skip, cols, found := findHeaderRow(rows, cfg)
	if !found {
		return nil, fmt.Errorf("%w after %d skip attempts in %s", ErrHeaderNotFound, cfg.HeaderScanLimit+1, path)
	}

	items := make([]internal.LineItem, 0, len(rows))
	for _, row := range rows[skip+1:] {
		key := strings.TrimSpace(pickCell(row, cols.groupKey))
		if key == "" {
			continue
		}
		amt, _ := util.ParseAmount(pickCell(row, cols.netAmt))
		items = append(items, internal.LineItem{
			GroupKey: key,
			NetAmt:   amt,
			Material: strings.TrimSpace(pickCell(row, cols.material)),
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].GroupKey < items[j].GroupKey })
	return items, nil
}

func findHeaderRow(rows [][]string, cfg config.Config) (int, lineItemColumns, bool) {
	limit := cfg.HeaderScanLimit
	if limit >= len(rows) {
		limit = len(rows) - 1
	}
	for skip := 0; skip <= limit; skip++ {
		header := rows[skip]
		cols := lineItemColumns{
			groupKey: indexOfHeader(header, cfg.GroupKeyColumn),
			netAmt:   indexOfHeader(header, cfg.NetAmtColumn),
			material: indexOfHeader(header, cfg.MaterialColumn),
		}
		if cols.groupKey >= 0 && cols.netAmt >= 0 && cols.material >= 0 {
			return skip, cols, true
		}
	}
	return 0, lineItemColumns{}, false
}

func indexOfHeader(row []string, name string) int {
	for i, cell := range row {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}

func pickCell(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}
