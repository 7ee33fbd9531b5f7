package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/controllers"
	"finance-flow-backend/lib/auth"
	"finance-flow-backend/middleware"
	apimodels "finance-flow-backend/models/api"
	authapimodels "finance-flow-backend/models/api/auth"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app fiber.Router) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.AdminRequired())
		router.Post("users", controller.createUser)
		router.Get("users", controller.listUsers)
		router.Post("users/:id/activate", controller.activateUser)
		router.Post("users/:id/deactivate", controller.deactivateUser)
	})
}

// @Summary Create user
// @Tags Administration
// @Description Registers an account and emails the generated credentials
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	authapimodels.CreateUserData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users [post]
func (c *adminApiController) createUser(ctx *fiber.Ctx) error {
	var payload authapimodels.CreateUserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := auth.Instance.CreateUser(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create user")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List users
// @Tags Administration
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users [get]
func (c *adminApiController) listUsers(ctx *fiber.Ctx) error {
	list, err := auth.Instance.ListUsers(middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list users")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Activate user
// @Tags Administration
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/{id}/activate [post]
func (c *adminApiController) activateUser(ctx *fiber.Ctx) error {
	return c.setActive(ctx, true)
}

// @Summary Deactivate user
// @Tags Administration
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users/{id}/deactivate [post]
func (c *adminApiController) deactivateUser(ctx *fiber.Ctx) error {
	return c.setActive(ctx, false)
}

func (c *adminApiController) setActive(ctx *fiber.Ctx, active bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = auth.Instance.SetActive(middleware.GetActor(ctx), id, active)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update user state")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
