package adaptor

import (
	"io"
	"mime/multipart"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

type MediaHandler struct {
	service usecase.MediaService
	log     *zap.Logger
}

func NewMediaHandler(service usecase.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		log:     log.With(zap.String("handler", "media")),
	}
}

func (h *MediaHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.log.Warn("Invalid multipart upload", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid multipart form", map[string]string{"error": "validation"})
		return false
	}
	return true
}

// UploadSingle handles POST /api/media/upload-single with a "file" part.
func (h *MediaHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "File is not exist", map[string]string{"file": "This field is required"})
		return
	}
	defer file.Close()

	stored, err := h.service.UploadSingle(r.Context(), file)
	if err != nil {
		writeError(w, h.log, err, "upload file")
		return
	}

	utils.ResponseSuccess(w, "Success upload a file", stored)
}

// UploadMultiple handles POST /api/media/upload-multiple with "files" parts.
func (h *MediaHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		utils.ResponseBadRequest(w, "Files are not exist", map[string]string{"files": "This field is required"})
		return
	}

	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	readers := make([]io.Reader, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			writeError(w, h.log, err, "open upload")
			return
		}
		opened = append(opened, f)
		readers = append(readers, f)
	}

	stored, err := h.service.UploadMultiple(r.Context(), readers)
	if err != nil {
		writeError(w, h.log, err, "upload files")
		return
	}

	utils.ResponseSuccess(w, "Success upload files", stored)
}

// Remove handles DELETE /api/media/remove with a JSON {"fileUrl": ...} body.
func (h *MediaHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req request.RemoveMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Remove(r.Context(), &req); err != nil {
		writeError(w, h.log, err, "remove file")
		return
	}

	utils.ResponseSuccess(w, "Success remove file", nil)
}
