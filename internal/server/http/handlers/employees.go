package handlers

import (
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	svc EmployeeService
}

func NewEmployeeHandler(svc EmployeeService) *EmployeeHandler { return &EmployeeHandler{svc: svc} }

func (h *EmployeeHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), services.EmployeeFilter{
		District: c.Query("district"),
		Station:  c.Query("station"),
		Rank:     c.Query("rank"),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, e)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var e models.Employee
	if !bindJSON(c, &e) {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), e)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var e models.Employee
	if !bindJSON(c, &e) {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), e)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
