package handlers

import (
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Get(c *gin.Context) {
	st, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, st)
}
