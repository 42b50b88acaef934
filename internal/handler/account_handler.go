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

// AccountHandler wires account endpoints to the account service.
type AccountHandler struct {
	service *service.AccountService
}

// NewAccountHandler creates a new handler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// Create godoc
// @Summary Sign up
// @Description Create an account with its profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body models.CreateAccountRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// Me godoc
// @Summary Get the authenticated account
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} map[string]string
// @Router /accounts/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	info, err := h.service.Retrieve(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, info)
}

// Remove godoc
// @Summary Delete the authenticated account
// @Tags Accounts
// @Produce json
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /accounts/me [delete]
func (h *AccountHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), middleware.AccountID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
