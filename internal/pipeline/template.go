package pipeline

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoiceflow/internal"
	"invoiceflow/internal/config"
)

// BindTemplate reads the header row of the template sheet and resolves
// the positions of the four required output columns. A missing required
// column is a configuration error and aborts the run.
func BindTemplate(cfg config.Config) (internal.TemplateSchema, error) {
	f, err := excelize.OpenFile(cfg.TemplatePath)
	if err != nil {
		return internal.TemplateSchema{}, fmt.Errorf("open template workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.TemplateSheet)
	if err != nil {
		return internal.TemplateSchema{}, fmt.Errorf("read template sheet %q: %w", cfg.TemplateSheet, err)
	}
	if len(rows) == 0 {
		return internal.TemplateSchema{}, fmt.Errorf("template sheet %q has no header row", cfg.TemplateSheet)
	}

	headers := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		headers = append(headers, strings.TrimSpace(cell))
	}

	schema := internal.TemplateSchema{
		Headers:       headers,
		ItemNumberIdx: indexOfHeader(headers, cfg.ItemNumberHeader),
		AmountIdx:     indexOfHeader(headers, cfg.AmountHeader),
		UPCIdx:        indexOfHeader(headers, cfg.UPCHeader),
		QuantityIdx:   indexOfHeader(headers, cfg.QuantityHeader),
	}

	missing := make([]string, 0, 4)
	for _, col := range []struct {
		name string
		idx  int
	}{
		{cfg.ItemNumberHeader, schema.ItemNumberIdx},
		{cfg.AmountHeader, schema.AmountIdx},
		{cfg.UPCHeader, schema.UPCIdx},
		{cfg.QuantityHeader, schema.QuantityIdx},
	} {
		if col.idx < 0 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return internal.TemplateSchema{}, fmt.Errorf("template is missing required columns: %s", strings.Join(missing, ", "))
	}

	return schema, nil
}
