package handlers

import (
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) List(c *gin.Context) {
	out, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if out == nil {
		out = []models.PendingRegistration{}
	}
	response.RespondOK(c, out)
}

func (h *RegistrationHandler) Approve(c *gin.Context) {
	e, err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, e)
}

func (h *RegistrationHandler) Reject(c *gin.Context) {
	if err := h.svc.Reject(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
