package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/controllers"
	"finance-flow-backend/lib/workflow"
	"finance-flow-backend/middleware"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
	financeapimodels "finance-flow-backend/models/api/finance"
)

type approvalsApiController struct {
	controllers.BaseAPIController
}

func InitApprovalsApiRouters(app fiber.Router) {
	controller := approvalsApiController{}
	app.Route("approvals", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("pending", middleware.PermissionRequired(models.PermApprovalAct), controller.pending)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Post("approve", middleware.PermissionRequired(models.PermApprovalAct), controller.approve)
			idRoute.Post("reject", middleware.PermissionRequired(models.PermApprovalAct), controller.reject)
			idRoute.Post("send-back", middleware.PermissionRequired(models.PermApprovalAct), controller.sendBack)
			idRoute.Post("admin-review", middleware.AdminRequired(), controller.adminReview)
		})
	})
}

// @Summary Pending approvals
// @Tags Approvals
// @Description Dashboard of active steps assigned to the caller's role, with SLA state
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]financeapimodels.PendingApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/pending [get]
func (c *approvalsApiController) pending(ctx *fiber.Ctx) error {
	list, err := workflow.Instance.PendingForRole(middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list pending approvals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *approvalsApiController) decide(ctx *fiber.Ctx, action models.ApprovalAction) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.DecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(action); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid decision payload")
	}
	view, err := workflow.Instance.Decide(middleware.GetActor(ctx), id, action, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to apply approval decision")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approve
// @Tags Approvals
// @Description Approves the active step and advances the chain
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	financeapimodels.DecisionData	true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/approve [post]
func (c *approvalsApiController) approve(ctx *fiber.Ctx) error {
	return c.decide(ctx, models.ActionApproved)
}

// @Summary Reject
// @Tags Approvals
// @Description Rejects the request, comments are required
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	financeapimodels.DecisionData	true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/reject [post]
func (c *approvalsApiController) reject(ctx *fiber.Ctx) error {
	return c.decide(ctx, models.ActionRejected)
}

// @Summary Send back
// @Tags Approvals
// @Description Returns the request to the requestor for changes, comments are required
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	financeapimodels.DecisionData	true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/send-back [post]
func (c *approvalsApiController) sendBack(ctx *fiber.Ctx) error {
	return c.decide(ctx, models.ActionSentBack)
}

// @Summary Admin review
// @Tags Approvals
// @Description Resolves a request parked after exhausting its resubmission limit
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	financeapimodels.AdminReviewData	true	"request body"
// @Param   id          		path    string								true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/admin-review [post]
func (c *approvalsApiController) adminReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.AdminReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid admin review payload")
	}
	view, err := workflow.Instance.AdminReview(middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to apply admin review")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
