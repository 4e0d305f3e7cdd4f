package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invoiceflow/internal"
	"invoiceflow/internal/config"
	"invoiceflow/internal/storage"
	"invoiceflow/internal/util"
)

// ProcessingService runs the whole allocation pipeline for one input
// spreadsheet and records the outcome in the job store. The store is
// best-effort audit: a nil db or a failed insert never fails the job.
type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type JobResult struct {
	OutputPath string
	TotalDue   decimal.Decimal
	Groups     int
	Rows       int
}

// ProcessInvoice reads the spreadsheet at inputPath, extracts the total
// due from the invoice PDF, allocates it across material groups and
// writes the template-conformant CSV into the output dir. An empty
// pdfPath falls back to the companion convention: same directory, same
// stem, ".pdf" extension.
func (s *ProcessingService) ProcessInvoice(inputPath, pdfPath string) (JobResult, error) {
	fmt.Printf("started processing: %s\n", inputPath)

	if pdfPath == "" {
		pdfPath = util.ReplaceExt(inputPath, ".pdf")
	}
	result, err := s.run(inputPath, pdfPath)

	record := internal.JobRecord{
		TraceID:    uuid.NewString(),
		InputFile:  inputPath,
		PDFFile:    pdfPath,
		OutputFile: result.OutputPath,
		Groups:     result.Groups,
		Rows:       result.Rows,
		Status:     "done",
	}
	if !result.TotalDue.IsZero() || err == nil {
		record.TotalDue = result.TotalDue.StringFixed(2)
	}
	if err != nil {
		record.Status = "failed"
		record.Error = err.Error()
	}
	if s.db != nil {
		if insertErr := s.db.InsertJob(record); insertErr != nil {
			fmt.Printf("job record insert failed: %v\n", insertErr)
		}
	}

	return result, err
}

func (s *ProcessingService) run(inputPath, pdfPath string) (JobResult, error) {
	items, err := LocateLineItems(inputPath, s.cfg)
	if err != nil {
		return JobResult{}, err
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return JobResult{}, fmt.Errorf("companion pdf not found for %s: %w", inputPath, err)
	}
	totalDue, err := ExtractInvoiceAmount(pdfPath)
	if err != nil {
		return JobResult{}, err
	}
	fmt.Printf("extracted total due from pdf: %s\n", totalDue.StringFixed(2))

	groups := Allocate(items, totalDue)

	schema, err := BindTemplate(s.cfg)
	if err != nil {
		return JobResult{TotalDue: totalDue}, err
	}

	rows := BuildRows(groups, schema)

	lookup, err := LoadMasterLookup(s.cfg.MasterPath)
	if err != nil {
		fmt.Printf("master lookup unavailable, codes fall back to NA: %v\n", err)
		lookup = map[string]string{}
	}
	ApplyMasterCodes(rows, lookup, schema, s.cfg.CodePadWidth)
	FillQuantities(rows, schema)
	populated := len(rows)
	rows = PadRows(rows, schema.ColumnCount(), s.cfg.MinOutputRows)

	outputPath := filepath.Join(s.cfg.OutputDir, util.ReplaceExt(filepath.Base(inputPath), ".csv"))
	if err := WriteCSV(outputPath, schema.Headers, rows); err != nil {
		return JobResult{TotalDue: totalDue, Groups: len(groups)}, err
	}
	fmt.Printf("csv output saved: %s\n", outputPath)

	return JobResult{
		OutputPath: outputPath,
		TotalDue:   totalDue,
		Groups:     len(groups),
		Rows:       populated,
	}, nil
}

// WriteCSV serializes the header row plus all data rows to path as
// UTF-8 CSV. A partially written file is removed on error.
func WriteCSV(path string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(headers)
	if writeErr == nil {
		writeErr = w.WriteAll(rows)
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write csv %s: %w", path, writeErr)
	}
	return nil
}
