package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docsift/src/core/insight"
	"docsift/src/log"
)

// UploadResponse reports the outcome of a document batch upload.
type UploadResponse struct {
	AnalysisID              string                  `json:"analysis_id"`
	TotalDocumentsProcessed int                     `json:"total_documents_processed"`
	Results                 []insight.IngestOutcome `json:"results"`
}

// UploadDocuments godoc
// @Summary Upload and index a batch of PDF documents
// @Tags documents
// @Accept multipart/form-data
// @Param files formData file true "PDF files"
// @Produce json
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /documents [post]
func (h *Handler) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("multipart form required: %w", err))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		sendError(c, http.StatusBadRequest, fmt.Errorf("at least one file is required"))
		return
	}

	analysisID := uuid.New().String()
	outcomes := make([]insight.IngestOutcome, 0, len(files))

	for _, header := range files {
		if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
			log.Info("skipping non-pdf upload", "filename", header.Filename)
			continue
		}

		file, err := header.Open()
		if err != nil {
			log.Error(err, "failed to open uploaded file", "filename", header.Filename)
			continue
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Error(err, "failed to read uploaded file", "filename", header.Filename)
			continue
		}

		h.archiveDocument(c, analysisID, header.Filename, data)

		outcome, err := h.service.IngestDocument(c.Request.Context(), header.Filename, data)
		if err != nil {
			log.Error(err, "failed to ingest document", "filename", header.Filename)
			continue
		}
		outcomes = append(outcomes, *outcome)
	}

	if len(outcomes) == 0 {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("no documents could be processed"))
		return
	}

	sendJSON(c, http.StatusCreated, UploadResponse{
		AnalysisID:              analysisID,
		TotalDocumentsProcessed: len(outcomes),
		Results:                 outcomes,
	})
}

// DownloadDocument godoc
// @Summary Retrieve the archived raw bytes of an uploaded document
// @Tags documents
// @Param analysisId path string true "Analysis ID of the upload batch"
// @Param filename path string true "Document filename"
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /documents/{analysisId}/{filename} [get]
func (h *Handler) DownloadDocument(c *gin.Context) {
	if h.archive == nil {
		sendError(c, http.StatusNotFound, fmt.Errorf("document archive is not configured"))
		return
	}

	objectName := fmt.Sprintf("%s/%s", c.Param("analysisId"), c.Param("filename"))
	data, err := h.archive.GetObject(c.Request.Context(), h.bucket, objectName)
	if err != nil {
		sendError(c, http.StatusNotFound, fmt.Errorf("document not found: %w", err))
		return
	}

	c.Data(http.StatusOK, "application/pdf", data)
}

// archiveDocument stores the raw upload for later retrieval. Archival failures
// do not block ingestion.
func (h *Handler) archiveDocument(c *gin.Context, analysisID, filename string, data []byte) {
	if h.archive == nil {
		return
	}

	objectName := fmt.Sprintf("%s/%s", analysisID, filename)
	if err := h.archive.PutObject(c.Request.Context(), h.bucket, objectName, data); err != nil {
		log.Error(err, "failed to archive document", "filename", filename)
	}
}
