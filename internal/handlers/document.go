package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/metrics"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/tir"
)

// multipartOverhead is the slack allowed above the file limit for form
// boundaries and the other fields.
const multipartOverhead = 1 << 20

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedMimeTypes = map[string]struct{}{
	"application/pdf":   {},
	"application/x-pdf": {},
	"image/jpeg":        {},
	"image/jpg":         {},
	"image/pjpeg":       {},
	"image/png":         {},
}

// UploadDocument attaches a scanned paper to a truck.
// @Summary Upload document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Truck id"
// @Param file formData file true "PDF, JPG, JPEG or PNG"
// @Param fileType formData string false "T1, CMR, Invoice, Doctor, TurkishInvoice or Other"
// @Success 201 {object} models.Document
// @Failure 400 {object} xerr.Response
// @Failure 404 {object} xerr.Response
// @Failure 500 {object} xerr.Response
// @Router /api/tirs/{id}/documents [post]
func UploadDocument(svc tir.TirService, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes+multipartOverhead {
			rejectUpload(c, xerr.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				rejectUpload(c, xerr.ErrFileTooLarge)
				return
			}
			rejectUpload(c, xerr.ErrFileRequired)
			return
		}
		if fh.Size > maxBytes {
			rejectUpload(c, xerr.ErrFileTooLarge)
			return
		}

		f, err := fh.Open()
		if err != nil {
			fail(c, err, xerr.MsgUploadDocumentFailed)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			fail(c, err, xerr.MsgUploadDocumentFailed)
			return
		}

		contentType := detectContentType(fh.Header.Get("Content-Type"), data)
		if !allowedFile(fh.Filename, contentType) {
			rejectUpload(c, xerr.ErrFileTypeNotAllowed)
			return
		}

		doc, err := svc.UploadDocument(c.Request.Context(), c.Param("id"), &tir.UploadFile{
			Data:        data,
			FileName:    fh.Filename,
			ContentType: contentType,
			FileType:    models.ParseFileType(c.PostForm("fileType")),
		})
		if err != nil {
			fail(c, err, xerr.MsgUploadDocumentFailed)
			return
		}
		xerr.Success(c, http.StatusCreated, doc)
	}
}

// DeleteDocument
// @Summary Delete document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document id"
// @Success 200 {object} xerr.MessageResponse
// @Failure 404 {object} xerr.Response
// @Router /api/documents/{id} [delete]
func DeleteDocument(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err, xerr.MsgDeleteDocumentFailed)
			return
		}
		xerr.Message(c, http.StatusOK, xerr.MsgDocumentDeleted)
	}
}

func rejectUpload(c *gin.Context, err error) {
	metrics.DocumentUploadsTotal.WithLabelValues(metrics.UploadRejected).Inc()
	xerr.Error(c, http.StatusBadRequest, err.Error())
}

// detectContentType trusts the declared type unless it is missing or generic.
func detectContentType(declared string, data []byte) string {
	mediaType, _, _ := strings.Cut(declared, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = strings.Cut(mimetype.Detect(data).String(), ";")
	}
	return mediaType
}

func allowedFile(name, contentType string) bool {
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return false
	}
	_, ok := allowedMimeTypes[contentType]
	return ok
}
