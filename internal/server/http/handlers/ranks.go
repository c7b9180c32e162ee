package handlers

import (
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

type RankHandler struct {
	svc RankService
}

func NewRankHandler(svc RankService) *RankHandler { return &RankHandler{svc: svc} }

func (h *RankHandler) List(c *gin.Context) {
	rs, err := h.svc.List(c.Request.Context(), queryBool(c, "all"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rs)
}

func (h *RankHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, r)
}

func (h *RankHandler) Resolve(c *gin.Context) {
	res, err := h.svc.Resolve(c.Request.Context(), c.Query("label"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *RankHandler) Create(c *gin.Context) {
	var r models.RankDefinition
	if !bindJSON(c, &r) {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), r)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *RankHandler) Update(c *gin.Context) {
	var r models.RankDefinition
	if !bindJSON(c, &r) {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *RankHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
