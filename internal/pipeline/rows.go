package pipeline

import (
	"invoiceflow/internal"
	"invoiceflow/internal/util"
)

// BuildRows turns allocation groups into output rows laid out per the
// template schema. Groups without a representative material are skipped.
// Row order follows group order, which the allocator keeps ascending by
// group key.
func BuildRows(groups []internal.AllocationGroup, schema internal.TemplateSchema) [][]string {
	out := make([][]string, 0, len(groups))
	for _, group := range groups {
		material := util.MaterialNumber(group.Material)
		if material == "" {
			continue
		}
		row := blankRow(schema.ColumnCount())
		row[schema.ItemNumberIdx] = material
		row[schema.AmountIdx] = group.Allocated.StringFixed(2)
		out = append(out, row)
	}
	return out
}

// FillQuantities sets the quantity cell to 1 on every row whose item
// number cell is populated and mapped.
func FillQuantities(rows [][]string, schema internal.TemplateSchema) {
	for _, row := range rows {
		item := row[schema.ItemNumberIdx]
		if item != "" && item != "NA" {
			row[schema.QuantityIdx] = "1"
		} else {
			row[schema.QuantityIdx] = ""
		}
	}
}

// PadRows appends fully blank rows until at least min rows exist. The
// downstream template consumer expects a fixed-size upload.
func PadRows(rows [][]string, columns, min int) [][]string {
	for len(rows) < min {
		rows = append(rows, blankRow(columns))
	}
	return rows
}

func blankRow(columns int) []string {
	return make([]string, columns)
}
