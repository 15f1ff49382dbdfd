package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/storage"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// multipartOverhead covers boundaries and part headers on top of the file bytes.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploads UploadServiceInterface
	logger  *zap.Logger
}

func NewUploadHandler(uploads UploadServiceInterface, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: logger.Named("upload")}
}

func (h *UploadHandler) fail(c *drift.Context, code int, message string, err error) {
	resp := dto.UploadErrorResponse{Error: message}
	if err != nil {
		var serr *storage.StorageError
		if errors.As(err, &serr) {
			resp.Details = serr.Message
		} else {
			resp.Details = err.Error()
		}
	}
	_ = c.JSON(code, resp)
}

// Upload streams the multipart field "file" to the object store.
func (h *UploadHandler) Upload(c *drift.Context) {
	c.Request.Body = http.MaxBytesReader(nil, c.Request.Body, h.uploads.MaxSize()+multipartOverhead)

	reader, err := c.Request.MultipartReader()
	if err != nil {
		h.fail(c, 400, "invalid multipart body", err)
		return
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			h.fail(c, 400, "no file uploaded", nil)
			return
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.fail(c, 400, "file too large", services.ErrFileTooLarge)
				return
			}
			h.fail(c, 400, "invalid multipart body", err)
			return
		}
		if part.FormName() != "file" {
			continue
		}

		result, err := h.uploads.Store(c.Request.Context(), part.FileName(), part.Header.Get("Content-Type"), part)
		_ = part.Close()
		if err != nil {
			h.uploadError(c, err)
			return
		}

		_ = c.JSON(200, dto.UploadResponse{
			URL:      result.URL,
			Key:      result.Key,
			Size:     result.Size,
			Mimetype: result.Mimetype,
		})
		return
	}
}

func (h *UploadHandler) uploadError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		h.fail(c, 400, "file too large", err)
	case errors.Is(err, services.ErrNoFile), errors.Is(err, services.ErrEmptyFile), errors.Is(err, services.ErrEmptyFileName):
		h.fail(c, 400, err.Error(), nil)
	default:
		h.logger.Error("upload failed", zap.Error(err))
		h.fail(c, 500, "upload failed", err)
	}
}

// UploadURL issues a signed URL the client PUTs the file to directly.
func (h *UploadHandler) UploadURL(c *drift.Context) {
	var req dto.UploadURLRequest
	if err := c.BindJSON(&req); err != nil {
		h.fail(c, 400, "invalid request body", nil)
		return
	}

	signed, err := h.uploads.SignUpload(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, services.ErrEmptyFileName) {
			h.fail(c, 400, "fileName is required", nil)
			return
		}
		h.logger.Error("failed to sign upload", zap.String("file_name", req.FileName), zap.Error(err))
		h.fail(c, 500, "failed to create upload url", err)
		return
	}

	_ = c.JSON(200, dto.UploadURLResponse{
		Key:       signed.Key,
		UploadURL: signed.UploadURL,
		PublicURL: signed.PublicURL,
		ExpiresIn: signed.ExpiresIn,
	})
}
