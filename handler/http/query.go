package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type queryRequest struct {
	Query   string `json:"query" binding:"required"`
	Persona string `json:"persona"`
}

// Query godoc
// @Summary Query the ingested corpus for relevant sections
// @Tags query
// @Accept json
// @Param request body queryRequest true "Query request"
// @Produce json
// @Success 200 {object} insight.QueryResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /query [post]
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.service.Query(c.Request.Context(), req.Query, req.Persona)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	sendJSON(c, http.StatusOK, result)
}
