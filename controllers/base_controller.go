package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"finance-flow-backend/middleware"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return pkgerrors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", pkgerrors.Errorf("parameter %v is not specified", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		WithField("user_id", middleware.GetUserID(ctx))
}

// SendError maps handler errors onto HTTP statuses. Unclassified errors are
// logged and answered with the generic message only.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationResponse(vErr))
	}
	var authErr *models.AuthorizationError
	if errors.As(err, &authErr) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(authErr.Error()))
	}
	var nfErr *models.NotFoundError
	if errors.As(err, &nfErr) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(nfErr.Error()))
	}
	var trErr *models.InvalidTransitionError
	if errors.As(err, &trErr) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(trErr.Error()))
	}
	if errors.Is(err, models.ErrNoActiveStep) || errors.Is(err, models.ErrConcurrencyConflict) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
