package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/pkg/ctx"
	"github.com/shashiranjanraj/souq/pkg/logger"
	"github.com/shashiranjanraj/souq/pkg/middleware"
	"github.com/shashiranjanraj/souq/pkg/storage"
)

// fail maps a service error onto the response envelope. Storage faults are
// logged with the request logger; their driver message is only returned
// outside production.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrDeliveryTypeNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrDuplicate):
		c.Conflict(err.Error())
	case errors.Is(err, services.ErrQuantityLimit),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrUnsupportedImage),
		errors.Is(err, storage.ErrInvalidPath):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		c.Error(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, models.ErrCorruptData):
		logger.WithCtx(c.Context()).Error("corrupt row", "path", c.R.URL.Path, "error", err)
		c.InternalError("stored data is corrupt", detail(err))
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.InternalError("Internal server error", detail(err))
	}
}

func detail(err error) string {
	if config.IsProduction() {
		return ""
	}
	return err.Error()
}

// currentUser returns the authenticated user id, or nil for anonymous requests.
func currentUser(c *ctx.Context) *uint {
	if id, ok := middleware.UserIDFromCtx(c.R); ok {
		return &id
	}
	return nil
}
