package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

// pathID parses a positive integer path parameter. On failure it writes a
// validation error and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body into req, writing a validation error on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationError(c, err.Error())
		return false
	}
	return true
}

// bindQuery binds the query string into req, writing a validation error on failure
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ValidationError(c, err.Error())
		return false
	}
	return true
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message, "")
}
