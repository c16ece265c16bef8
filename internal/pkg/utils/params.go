package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"warrantyhub/internal/pkg/response"
)

// ParamID parses a positive int64 path parameter. On failure it writes a 400 and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
