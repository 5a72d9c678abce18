package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/blogapi/services"
	"github.com/cppla/blogapi/utils"
)

// respondError maps service failures onto HTTP statuses and envelope codes.
// Anything outside the service taxonomy is logged and answered with a generic 500.
func respondError(ctx *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.Respond(ctx, http.StatusBadRequest, 40001, "validation failed", gin.H{"fields": verr.Fields})
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, err.Error())
	case errors.Is(err, services.ErrPostNotFound):
		utils.Error(ctx, http.StatusNotFound, 40402, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.Error(ctx, http.StatusConflict, 40901, err.Error())
	case errors.Is(err, services.ErrDuplicatePost):
		utils.Error(ctx, http.StatusConflict, 40902, err.Error())
	case errors.Is(err, services.ErrUserHasPosts):
		utils.Error(ctx, http.StatusConflict, 40903, err.Error())
	default:
		utils.Sugar.Errorw("request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"request_id", ctx.GetString(utils.RequestIDKey),
			"error", err,
		)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
