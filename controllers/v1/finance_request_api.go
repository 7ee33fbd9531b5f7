package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/controllers"
	filestorage "finance-flow-backend/lib/file-storage"
	financerequest "finance-flow-backend/lib/finance-request"
	"finance-flow-backend/lib/workflow"
	"finance-flow-backend/middleware"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
	financeapimodels "finance-flow-backend/models/api/finance"
)

type financeRequestApiController struct {
	controllers.BaseAPIController
}

func InitFinanceRequestApiRouters(app fiber.Router) {
	controller := financeRequestApiController{}
	app.Route("finance-requests", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", middleware.PermissionRequired(models.PermRequestCreate), controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.PermissionRequired(models.PermRequestEdit), controller.update)
			idRoute.Delete("", middleware.PermissionRequired(models.PermRequestDelete), controller.delete)
			idRoute.Post("submit", middleware.PermissionRequired(models.PermRequestSubmit), controller.submit)
			idRoute.Post("resubmit", middleware.PermissionRequired(models.PermRequestSubmit), controller.resubmit)
			idRoute.Get("history", controller.history)
			idRoute.Get("pdf", controller.exportPdf)
			idRoute.Post("attachments", controller.uploadAttachment)
			idRoute.Get("attachments", controller.listAttachments)
		})
		router.Get("attachments/:attachmentId", controller.downloadAttachment)
		router.Delete("attachments/:attachmentId", controller.deleteAttachment)
	})
}

// @Summary Create payment request
// @Tags Payment requests
// @Description Creates a draft payment request, totals are computed server-side
// @Param   Authorization		header	string										true	"Authorization token"
// @Param	body 				body	financeapimodels.FinanceRequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests [post]
func (c *financeRequestApiController) create(ctx *fiber.Ctx) error {
	var payload financeapimodels.FinanceRequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := financerequest.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List payment requests
// @Tags Payment requests
// @Description Filtered paged list; employees only see their own requests
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	financeapimodels.FrFilter		true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/list [post]
func (c *financeRequestApiController) list(ctx *fiber.Ctx) error {
	var payload financeapimodels.FrFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := financerequest.Instance.List(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list payment requests")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get payment request
// @Tags Payment requests
// @Description Request card with its approval steps
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id} [get]
func (c *financeRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := financerequest.Instance.GetByID(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update payment request
// @Tags Payment requests
// @Description Edits a draft or sent-back request, totals are recomputed
// @Param   Authorization		header	string										true	"Authorization token"
// @Param	body 				body	financeapimodels.FinanceRequestEditData	true	"request body"
// @Param   id          		path    string										true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id} [put]
func (c *financeRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.FinanceRequestEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = financerequest.Instance.Update(middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete payment request
// @Tags Payment requests
// @Description Soft-deletes a draft or sent-back request
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id} [delete]
func (c *financeRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = financerequest.Instance.Delete(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Submit payment request
// @Tags Payment requests
// @Description Moves a draft into the approval chain
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/submit [post]
func (c *financeRequestApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := workflow.Instance.Submit(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Resubmit payment request
// @Tags Payment requests
// @Description Restarts the chain for a sent-back request
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.FinanceRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/resubmit [post]
func (c *financeRequestApiController) resubmit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := workflow.Instance.Resubmit(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to resubmit payment request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approval history
// @Tags Payment requests
// @Description Append-only action trail across all submissions
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]financeapimodels.ApprovalActionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/history [get]
func (c *financeRequestApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := financerequest.Instance.History(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get approval history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Request PDF
// @Tags Payment requests
// @Description Renders the request sheet with its approval trail as a PDF
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/pdf [get]
func (c *financeRequestApiController) exportPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	pdfFile, fileName, err := financerequest.Instance.ExportPDF(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export request PDF")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

// @Summary Upload attachment
// @Tags Payment requests
// @Description Attaches a file (invoice, quote) to a request
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Param   file				formData file	true	"file"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/attachments [post]
func (c *financeRequestApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is not specified"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to open file"))
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read file"))
	}
	attachmentID, err := filestorage.Instance.Upload(ctx.UserContext(), id, middleware.GetUserID(ctx),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to upload attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(attachmentID))
}

// @Summary List attachments
// @Tags Payment requests
// @Description Attachments of a request
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/{id}/attachments [get]
func (c *financeRequestApiController) listAttachments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := filestorage.Instance.ListByRequest(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list attachments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Download attachment
// @Tags Payment requests
// @Description Streams the attachment body
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   attachmentId		path    string	true    "attachment ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/attachments/{attachmentId} [get]
func (c *financeRequestApiController) downloadAttachment(ctx *fiber.Ctx) error {
	attachmentID, err := c.GetIDByKey(ctx, "attachmentId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, data, err := filestorage.Instance.Download(ctx.UserContext(), attachmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to download attachment")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, rec.FileName))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Delete attachment
// @Tags Payment requests
// @Description Removes the attachment record and its stored object
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   attachmentId		path    string	true    "attachment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/finance-requests/attachments/{attachmentId} [delete]
func (c *financeRequestApiController) deleteAttachment(ctx *fiber.Ctx) error {
	attachmentID, err := c.GetIDByKey(ctx, "attachmentId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = filestorage.Instance.Delete(ctx.UserContext(), attachmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
