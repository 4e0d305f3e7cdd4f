package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"invoiceflow/internal"
	"invoiceflow/internal/config"
	"invoiceflow/internal/pipeline"
	"invoiceflow/internal/storage"
	"invoiceflow/internal/util"
)

const maxUploadBytes = 32 << 20

// Server exposes the pipeline over HTTP: synchronous invoice processing,
// download of produced CSVs, a liveness endpoint and the job history.
type Server struct {
	db  *storage.DB
	cfg config.Config
}

func New(db *storage.DB, cfg config.Config) *Server {
	return &Server{db: db, cfg: cfg}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/process-invoice", s.handleProcessInvoice).Methods("POST")
	router.HandleFunc("/download/{filename}", s.handleDownload).Methods("GET")
	router.HandleFunc("/jobs", s.handleJobs).Methods("GET")
	router.HandleFunc("/jobs/{traceId}", s.handleJobByTraceID).Methods("GET")
	router.HandleFunc("/", s.handleHealth).Methods("GET")
	return router
}

func (s *Server) handleProcessInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	excelFile, excelHeader, excelErr := r.FormFile("excel")
	pdfFile, pdfHeader, pdfErr := r.FormFile("pdf")
	if excelErr != nil || pdfErr != nil {
		jsonError(w, http.StatusBadRequest, "excel and pdf files are required")
		return
	}
	defer excelFile.Close()
	defer pdfFile.Close()

	if !hasExtension(excelHeader.Filename, ".xlsx") || !hasExtension(pdfHeader.Filename, ".pdf") {
		jsonError(w, http.StatusBadRequest, "only .xlsx and .pdf uploads are allowed")
		return
	}

	excelPath, err := s.saveUpload(excelFile, excelHeader.Filename)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store upload: %v", err))
		return
	}
	if _, err := s.saveUpload(pdfFile, pdfHeader.Filename); err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store upload: %v", err))
		return
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	result, err := processor.ProcessInvoice(excelPath, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("error processing files: %v", err))
		return
	}

	jsonOK(w, map[string]any{
		"message": "files processed successfully",
		"output":  filepath.Base(result.OutputPath),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := util.SanitizeFilename(mux.Vars(r)["filename"])
	path := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		jsonError(w, http.StatusNotFound, "file not found")
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	jobs := []internal.JobRecord{}
	if s.db != nil {
		listed, err := s.db.ListJobs(limit)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list jobs: %v", err))
			return
		}
		if listed != nil {
			jobs = listed
		}
	}
	jsonOK(w, map[string]any{"jobs": jobs})
}

func (s *Server) handleJobByTraceID(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	job, err := s.db.GetJobByTraceID(mux.Vars(r)["traceId"])
	if err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load job: %v", err))
		return
	}
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	jsonOK(w, job)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("invoiceflow is up"))
}

func (s *Server) saveUpload(file multipart.File, name string) (string, error) {
	if err := os.MkdirAll(s.cfg.InputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.InputDir, util.SanitizeFilename(name))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	_, copyErr := io.Copy(out, file)
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(path)
		return "", copyErr
	}
	return path, nil
}

func hasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

func jsonOK(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, payload)
}

func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
