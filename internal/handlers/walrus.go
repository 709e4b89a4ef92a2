package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/verakita/verakita-api/internal/walrus"
)

const blobCacheControl = "public, max-age=31536000, immutable"

// multipartMemory is how much of a multipart upload is buffered in memory before spilling to disk.
const multipartMemory = 8 << 20

// WalrusHandler serves /api/walrus.
type WalrusHandler struct {
	Store BlobGateway
	Log   *slog.Logger
}

// ==========================
// Upload
// ==========================

// Upload accepts multipart/form-data with a "file" field, or JSON {data, epochs}.
func (h *WalrusHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.uploadFile(w, r)
		return
	}
	h.uploadJSON(w, r)
}

func (h *WalrusHandler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, "Upload exceeds size limit", http.StatusBadRequest)
			return
		}
		JSONError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		JSONError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	epochs := walrus.DefaultEpochs
	if v, err := strconv.Atoi(r.FormValue("epochs")); err == nil && v > 0 {
		epochs = v
	}
	h.store(w, r, file, epochs)
}

func (h *WalrusHandler) uploadJSON(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Data   json.RawMessage `json:"data"`
		Epochs int             `json:"epochs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, "Upload exceeds size limit", http.StatusBadRequest)
			return
		}
		JSONError(w, ErrMessageInvalidJSON, http.StatusBadRequest)
		return
	}
	if isFalsy(input.Data) {
		JSONError(w, "No data provided", http.StatusBadRequest)
		return
	}

	var body bytes.Buffer
	if err := json.Compact(&body, input.Data); err != nil {
		JSONError(w, ErrMessageInvalidJSON, http.StatusBadRequest)
		return
	}
	epochs := input.Epochs
	if epochs <= 0 {
		epochs = walrus.DefaultEpochs
	}
	h.store(w, r, &body, epochs)
}

func (h *WalrusHandler) store(w http.ResponseWriter, r *http.Request, body io.Reader, epochs int) {
	res, err := h.Store.Upload(r.Context(), body, epochs)
	if err != nil {
		loggerOr(h.Log).ErrorContext(r.Context(), "walrus upload failed", slog.String("error", err.Error()))
		JSONError(w, "Failed to upload to Walrus", http.StatusInternalServerError)
		return
	}
	JSONSuccess(w, res)
}

// ==========================
// Fetch
// ==========================

// Fetch streams a blob from the aggregator with immutable caching headers.
func (h *WalrusHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	blobID := chi.URLParam(r, "blobId")
	if blobID == "" {
		JSONError(w, "Blob ID is required", http.StatusBadRequest)
		return
	}

	blob, err := h.Store.Fetch(r.Context(), blobID)
	if err != nil {
		loggerOr(h.Log).ErrorContext(r.Context(), "walrus fetch failed",
			slog.String("blob_id", blobID),
			slog.String("error", err.Error()))
		JSONError(w, "Failed to fetch from Walrus", http.StatusInternalServerError)
		return
	}
	defer blob.Close()

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", blobCacheControl)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, blob.Body); err != nil {
		loggerOr(h.Log).WarnContext(r.Context(), "walrus stream interrupted",
			slog.String("blob_id", blobID),
			slog.String("error", err.Error()))
	}
}
