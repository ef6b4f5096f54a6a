package controller

import (
	"chaos_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// uintParam parses a numeric path parameter, returning ok=false after it has
// already written the 400 response.
func uintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// orgScopedError writes the response for org-scoped management endpoints:
// resources outside the caller's organisation are 403, missing rows 404.
func orgScopedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
