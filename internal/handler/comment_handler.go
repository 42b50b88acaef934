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

// CommentHandler wires comment endpoints to the comment service.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// Create godoc
// @Summary Comment on a selection
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Selection id"
// @Param payload body models.CreateCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selections/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}

	id, err := h.service.Create(c.Request.Context(), c.Param("id"), middleware.AccountID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// List godoc
// @Summary List comments on a selection
// @Tags Comments
// @Produce json
// @Param id path string true "Selection id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selections/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.service.ListBySelection(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, comments)
}

// Remove godoc
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Param id path string true "Comment id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /comments/{id} [delete]
func (h *CommentHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id"), middleware.AccountID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
