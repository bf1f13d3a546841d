package http_common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"customer 101 not found"`
	Code    int    `json:"code" example:"404"`
}

func Fail(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    status,
	})
}

// QueryInt reads an optional integer query parameter. A present but
// malformed value is an error.
func QueryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func ParamID(ctx *gin.Context, key string) (int64, error) {
	return strconv.ParseInt(ctx.Param(key), 10, 64)
}
