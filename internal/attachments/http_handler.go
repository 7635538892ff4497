package attachments

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type HTTPHandler struct {
	Service *AttachmentService
}

func NewHTTPHandler(service *AttachmentService) *HTTPHandler {
	return &HTTPHandler{Service: service}
}

// Upload handles POST /api/processes/{processID}/attachments with a
// multipart form carrying "file" and "candidate_email".
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	processID, err := uuid.Parse(r.PathValue("processID"))
	if err != nil {
		http.Error(w, `{"error": "invalid process id"}`, http.StatusBadRequest)
		return
	}

	// Max memory 32MB
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, `{"error": "failed to parse form"}`, http.StatusBadRequest)
		return
	}

	candidateEmail := r.FormValue("candidate_email")
	if candidateEmail == "" {
		http.Error(w, `{"error": "candidate_email is required"}`, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `{"error": "file is required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	attachment, err := h.Service.Upload(r.Context(), processID, candidateEmail, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedFileType) {
			http.Error(w, `{"error": "unsupported file type"}`, http.StatusBadRequest)
			return
		}
		slog.ErrorContext(r.Context(), "Upload failed", "error", err)
		http.Error(w, `{"error": "upload failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(attachment)
}

// Download handles GET /api/attachments/{attachmentID}.
func (h *HTTPHandler) Download(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := uuid.Parse(r.PathValue("attachmentID"))
	if err != nil {
		http.Error(w, `{"error": "invalid attachment id"}`, http.StatusBadRequest)
		return
	}

	reader, attachment, err := h.Service.Download(r.Context(), attachmentID)
	if err != nil {
		if errors.Is(err, ErrAttachmentNotFound) {
			http.Error(w, `{"error": "attachment not found"}`, http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Download failed", "error", err)
		http.Error(w, `{"error": "download failed"}`, http.StatusInternalServerError)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	io.Copy(w, reader)
}

// List handles GET /api/processes/{processID}/attachments?candidate_email=...
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	processID, err := uuid.Parse(r.PathValue("processID"))
	if err != nil {
		http.Error(w, `{"error": "invalid process id"}`, http.StatusBadRequest)
		return
	}

	candidateEmail := r.URL.Query().Get("candidate_email")
	if candidateEmail == "" {
		http.Error(w, `{"error": "candidate_email is required"}`, http.StatusBadRequest)
		return
	}

	list, err := h.Service.ListByCandidate(r.Context(), processID, candidateEmail)
	if err != nil {
		slog.ErrorContext(r.Context(), "List attachments failed", "error", err)
		http.Error(w, `{"error": "failed to list attachments"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
