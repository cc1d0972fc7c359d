// Package handler provides the HTTP surface of the converter: upload
// submission, status polling, and document download.
package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"pdf-ocr-converter/internal/domain"
	apperrors "pdf-ocr-converter/pkg/errors"
)

// pdfMagic is the signature every readable PDF starts with.
var pdfMagic = []byte("%PDF")

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ConvertHandler handles the conversion task lifecycle over HTTP.
type ConvertHandler struct {
	registry domain.TaskRegistry
	runner   domain.TaskRunner
	config   domain.Config
	logger   domain.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(registry domain.TaskRegistry, runner domain.TaskRunner, config domain.Config, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		registry: registry,
		runner:   runner,
		config:   config,
		logger:   logger,
	}
}

// Convert accepts a multipart PDF upload, creates a task, and starts the
// conversion in the background. It responds with the task id immediately;
// it never blocks on OCR work.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.GetMaxFileSize()+1<<20)

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		// MaxBytesReader aborts the multipart parse before the size
		// check below can run; report the real cause.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, apperrors.NewValidationError(sizeLimitMessage(h.config.GetMaxFileSize())))
			return
		}
		respondError(w, apperrors.NewValidationError("No PDF file uploaded", err.Error()))
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "document.pdf"
	}

	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		respondError(w, apperrors.NewValidationError("Invalid file type. Only PDF files are supported.", filename))
		return
	}
	if header.Size == 0 {
		respondError(w, apperrors.NewValidationError("Uploaded file is empty", filename))
		return
	}
	if header.Size > h.config.GetMaxFileSize() {
		respondError(w, apperrors.NewValidationError(sizeLimitMessage(h.config.GetMaxFileSize()), filename))
		return
	}
	if err := checkPDFMagic(file); err != nil {
		respondError(w, apperrors.NewValidationError("File does not look like a PDF", filename))
		return
	}

	lang := r.FormValue("ocr_lang")
	if lang == "" {
		lang = h.config.GetDefaultLang()
	}
	dpi := parseDPI(r.FormValue("dpi"))
	if dpi == 0 {
		dpi = h.config.GetDefaultDPI()
	}
	params := domain.NormalizeParams(domain.ConversionParams{Lang: lang, DPI: dpi})

	task := h.registry.Create(filename, params)

	inputPath := filepath.Join(h.config.GetUploadPath(), task.ID+"_"+filename)
	outputPath := filepath.Join(h.config.GetDownloadPath(), task.ID+"_"+task.OutputFilename())

	if err := saveUpload(file, inputPath); err != nil {
		h.logger.Error("Failed to persist upload", err, "task_id", task.ID, "file", filename)
		h.failTask(task.ID, "could not store uploaded file")
		respondError(w, apperrors.NewInternalError("Failed to store uploaded file", err))
		return
	}

	if _, err := h.registry.Update(task.ID, func(t *domain.Task) {
		t.InputPath = inputPath
		t.OutputPath = outputPath
	}); err != nil {
		h.logger.Error("Failed to record task paths", err, "task_id", task.ID)
		respondError(w, apperrors.NewInternalError("Failed to start conversion", err))
		return
	}

	h.runner.Start(task.ID)

	h.logger.Info("Conversion accepted", "task_id", task.ID, "file", filename, "lang", params.Lang, "dpi", params.DPI)
	writeJSON(w, http.StatusAccepted, map[string]string{
		"task_id": task.ID,
		"status":  string(domain.TaskStatusQueued),
	})
}

// statusResponse is the wire shape of GET /api/status.
type statusResponse struct {
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	DownloadURL string `json:"download_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Status reports the current state of a task. It is a short, non-blocking
// read; clients poll it while the conversion runs.
func (h *ConvertHandler) Status(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		respondError(w, apperrors.NewValidationError("task_id is required"))
		return
	}

	task, err := h.registry.Get(taskID)
	if err != nil {
		respondError(w, apperrors.NewNotFoundError("task not found"))
		return
	}

	resp := statusResponse{
		Status:   string(task.Status),
		Progress: task.Progress,
	}
	switch task.Status {
	case domain.TaskStatusCompleted:
		resp.DownloadURL = "/download/" + task.ID
		resp.Filename = task.OutputFilename()
	case domain.TaskStatusFailed:
		resp.Error = task.Error
	}

	writeJSON(w, http.StatusOK, resp)
}

// Download streams the produced document. Only completed tasks are
// servable; anything else is a 404 so probing ids leaks nothing.
func (h *ConvertHandler) Download(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["task_id"]

	task, err := h.registry.Get(taskID)
	if err != nil {
		respondError(w, apperrors.NewNotFoundError("task not found"))
		return
	}
	if task.Status != domain.TaskStatusCompleted || task.OutputPath == "" {
		respondError(w, apperrors.NewNotFoundError("document not available"))
		return
	}

	if _, err := os.Stat(task.OutputPath); err != nil {
		h.logger.Error("Output file missing for completed task", err, "task_id", task.ID, "path", task.OutputPath)
		respondError(w, apperrors.NewNotFoundError("document not available"))
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+task.OutputFilename()+`"`)
	http.ServeFile(w, r, task.OutputPath)
}

// Health is the liveness endpoint.
func (h *ConvertHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "pdf-ocr-converter",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ConvertHandler) failTask(id, reason string) {
	now := time.Now()
	_, _ = h.registry.Update(id, func(t *domain.Task) {
		t.Status = domain.TaskStatusFailed
		t.Error = reason
		t.CompletedAt = &now
	})
}

// checkPDFMagic verifies the upload starts with the %PDF signature and
// rewinds the reader for the subsequent copy.
func checkPDFMagic(file io.ReadSeeker) error {
	buf := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if !bytes.HasPrefix(buf[:n], pdfMagic) {
		return domain.ErrUnsupportedFileType
	}
	return nil
}

func saveUpload(src io.Reader, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func sizeLimitMessage(limit int64) string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", limit>>20)
}

func parseDPI(raw string) int {
	if raw == "" {
		return 0
	}
	dpi, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return dpi
}
