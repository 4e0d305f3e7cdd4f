package internal

import "github.com/shopspring/decimal"

// LineItem is one validated row from the input spreadsheet.
type LineItem struct {
	GroupKey string
	NetAmt   decimal.Decimal
	Material string
}

// AllocationGroup holds the per-group aggregation and its share of the
// invoice total. Material is the material of the highest-net-amount row
// in the group; on equal amounts the earlier row wins.
type AllocationGroup struct {
	GroupKey  string
	NetTotal  decimal.Decimal
	Share     decimal.Decimal
	Allocated decimal.Decimal
	Material  string
}

// TemplateSchema is the output column layout read from the template
// workbook: header names in order plus the resolved positions of the
// four required columns.
type TemplateSchema struct {
	Headers       []string
	ItemNumberIdx int
	AmountIdx     int
	UPCIdx        int
	QuantityIdx   int
}

func (s TemplateSchema) ColumnCount() int {
	return len(s.Headers)
}

type JobRecord struct {
	ID         int
	TraceID    string
	InputFile  string
	PDFFile    string
	OutputFile string
	TotalDue   string
	Groups     int
	Rows       int
	Status     string
	Error      string
	CreatedAt  string
}
