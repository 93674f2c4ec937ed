package api

import (
	"errors"
	"io"
	"net/http"

	"log/slog"

	"github.com/garnizeh/leaddesk/internal/storage"
)

// maxUploadBytes is the resume size limit.
const maxUploadBytes = 10 << 20 // 10 MB

// multipartOverhead leaves room for the multipart framing around the file so
// a file exactly at the limit still parses.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	store storage.Storage
}

func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadResponse struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
}

// Upload accepts a multipart form with a single `file` field holding a PDF
// resume. Size and type violations get distinct statuses (413 vs 415) so the
// form can show the right message. The file is stored before any lead row
// references it; a failure here never creates a lead.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, "file exceeds 10 MB limit", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		writeError(w, "file exceeds 10 MB limit", http.StatusRequestEntityTooLarge)
		return
	}
	if header.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, "only PDF files are accepted", http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload", slog.Any("err", err))
		writeError(w, "upload failed", http.StatusInternalServerError)
		return
	}

	path, err := h.store.Save(r.Context(), data, header.Filename)
	if err != nil {
		logger.Error("store upload", slog.Any("err", err))
		writeError(w, "upload failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, uploadResponse{Path: path, OriginalName: header.Filename}, http.StatusOK)
}
