package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/controllers"
	"finance-flow-backend/lib/notification"
	"finance-flow-backend/middleware"
	apimodels "finance-flow-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("list", controller.list)
		router.Get("unread-count", controller.unreadCount)
		router.Post("read-all", controller.markAllRead)
		router.Post(":id/read", controller.markRead)
	})
}

type notificationFilter struct {
	apimodels.Pagination
	OnlyUnread bool `json:"only_unread"`
}

// @Summary Notification inbox
// @Tags Notifications
// @Description Paged list of the caller's notifications
// @Param   Authorization		header	string				true	"Authorization token"
// @Param	body 				body	notificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := notification.Instance.List(middleware.GetUserID(ctx), payload.OnlyUnread, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Unread count
// @Tags Notifications
// @Description Number of unread notifications
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/unread-count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notification.Instance.CountUnread(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to count notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}

// @Summary Mark notification read
// @Tags Notifications
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/{id}/read [post]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = notification.Instance.MarkRead(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark notification as read")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark all notifications read
// @Tags Notifications
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read-all [post]
func (c *notificationApiController) markAllRead(ctx *fiber.Ctx) error {
	err := notification.Instance.MarkAllRead(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark notifications as read")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
