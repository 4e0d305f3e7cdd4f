package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"invoiceflow/internal/config"
	"invoiceflow/internal/pipeline"
	"invoiceflow/internal/server"
	"invoiceflow/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		must(cfg.Require("MASTER_FILE_PATH", cfg.MasterPath))
		must(cfg.Require("TEMPLATE_PATH", cfg.TemplatePath))
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		srv := server.New(db, cfg)
		fmt.Printf("listening on %s\n", cfg.ListenAddr)
		must(http.ListenAndServe(cfg.ListenAddr, srv.Router()))
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input xlsx path")
		pdfPath := fs.String("pdf", "", "invoice pdf path (default: input with .pdf extension)")
		out := fs.String("out", "", "output directory override")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		if strings.TrimSpace(*out) != "" {
			cfg.OutputDir = *out
		}
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		processor := pipeline.NewProcessingService(db, cfg)
		result, err := processor.ProcessInvoice(*input, *pdfPath)
		must(err)
		fmt.Printf("process done totalDue=%s groups=%d rows=%d output=%s\n",
			result.TotalDue.StringFixed(2), result.Groups, result.Rows, result.OutputPath)
	case "jobs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max jobs to list")
		_ = fs.Parse(os.Args[2:])
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		jobs, err := db.ListJobs(*limit)
		must(err)
		for _, job := range jobs {
			fmt.Printf("%d %s %s status=%s totalDue=%s rows=%d %s\n",
				job.ID, job.CreatedAt, job.InputFile, job.Status, job.TotalDue, job.Rows, job.Error)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: invoiceflow <command>")
	fmt.Println("commands:")
	fmt.Println("  serve")
	fmt.Println("  process --input=./invoice.xlsx [--pdf=./invoice.pdf] [--out=./output]")
	fmt.Println("  jobs:list [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
