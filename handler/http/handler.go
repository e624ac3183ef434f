package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docsift/src/core/insight"
	"docsift/src/storage/minioctrl"
)

type Handler struct {
	service    *insight.Service
	sysService insight.SystemService
	archive    *minioctrl.MinioService
	bucket     string
}

func NewHandler(service *insight.Service, sysService insight.SystemService, archive *minioctrl.MinioService, bucket string) *Handler {
	return &Handler{
		service:    service,
		sysService: sysService,
		archive:    archive,
		bucket:     bucket,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Document routes
	v1.POST("/documents", h.UploadDocuments)
	v1.GET("/documents/:analysisId/:filename", h.DownloadDocument)

	// Query routes
	v1.POST("/query", h.Query)

	// System routes
	v1.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func sendError(c *gin.Context, status int, err error) {
	var code string
	switch {
	case errors.Is(err, insight.ErrEmptyCorpus):
		code = "EMPTY_CORPUS"
		status = http.StatusBadRequest
	case errors.Is(err, insight.ErrNoCandidates):
		code = "NO_CANDIDATES"
		status = http.StatusNotFound
	case errors.Is(err, insight.ErrNoneRelevant):
		code = "NONE_RELEVANT"
		status = http.StatusNotFound
	case status == http.StatusBadRequest:
		code = "INVALID_REQUEST"
	case status == http.StatusNotFound:
		code = "NOT_FOUND"
	default:
		code = "INTERNAL_ERROR"
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
