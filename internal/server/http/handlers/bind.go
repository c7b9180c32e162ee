package handlers

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into v and answers 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return false
	}
	return true
}

func queryBool(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}
