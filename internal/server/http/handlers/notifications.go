package handlers

import (
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Enqueue(c *gin.Context) {
	var n models.Notification
	if !bindJSON(c, &n) {
		return
	}
	out, err := h.svc.Enqueue(c.Request.Context(), n)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, out)
}
