package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/controllers"
	"finance-flow-backend/lib/reports"
	"finance-flow-backend/middleware"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
	reportapimodels "finance-flow-backend/models/api/report"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app fiber.Router) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("summary", middleware.PermissionRequired(models.PermReportView), controller.summary)
		router.Post("sla", middleware.PermissionRequired(models.PermReportView), controller.sla)
		router.Post("export/csv", middleware.PermissionRequired(models.PermReportExport), controller.exportCSV)
		router.Post("export/xlsx", middleware.PermissionRequired(models.PermReportExport), controller.exportXLSX)
		router.Post("export/pdf", middleware.PermissionRequired(models.PermReportExport), controller.exportPDF)
	})
}

// @Summary Spend summary
// @Tags Reports
// @Description Totals grouped by status, department and payment type
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	reportapimodels.ReportFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.SummaryReport}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/summary [post]
func (c *reportApiController) summary(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	report, err := reports.Instance.Summary(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build summary report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}

// @Summary SLA compliance
// @Tags Reports
// @Description Per-level SLA compliance percentages
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	reportapimodels.ReportFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.SLAReport}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/sla [post]
func (c *reportApiController) sla(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	report, err := reports.Instance.SLA(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build SLA report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}

func exportFileName(ext string) string {
	return fmt.Sprintf("payment-requests-%s.%s", time.Now().Format("20060102-150405"), ext)
}

// @Summary Export requests as CSV
// @Tags Reports
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	reportapimodels.ReportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/export/csv [post]
func (c *reportApiController) exportCSV(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := reports.Instance.ExportRequestsCSV(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export requests")
	}
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFileName("csv")))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Export requests as XLSX
// @Tags Reports
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	reportapimodels.ReportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/export/xlsx [post]
func (c *reportApiController) exportXLSX(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := reports.Instance.ExportRequestsXLS(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export requests")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFileName("xlsx")))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Export summary as PDF
// @Tags Reports
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	reportapimodels.ReportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/export/pdf [post]
func (c *reportApiController) exportPDF(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := reports.Instance.ExportSummaryPDF(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export summary report")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFileName("pdf")))
	return ctx.Status(fiber.StatusOK).Send(data)
}
