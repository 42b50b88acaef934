package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/marginalia-api/internal/middleware"
	"github.com/noah-isme/marginalia-api/internal/models"
	"github.com/noah-isme/marginalia-api/internal/service"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
	"github.com/noah-isme/marginalia-api/pkg/response"
)

// SelectionHandler wires selection endpoints to the selection service.
type SelectionHandler struct {
	service *service.SelectionService
}

// NewSelectionHandler creates a new handler.
func NewSelectionHandler(svc *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Create godoc
// @Summary Capture a selection
// @Description Store a highlighted HTML fragment with its plain-text rendering
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body models.CreateSelectionRequest true "Capture payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} map[string]string
// @Router /selections [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	var req models.CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}

	id, err := h.service.Create(c.Request.Context(), middleware.AccountID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// Retrieve godoc
// @Summary Fetch a selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selections/{id} [get]
func (h *SelectionHandler) Retrieve(c *gin.Context) {
	selection, err := h.service.Retrieve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, selection)
}

// Remove godoc
// @Summary Delete a selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /selections/{id} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id"), middleware.AccountID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
