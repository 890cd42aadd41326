package handlers

import (
	"fmt"
	"time"

	applog "shoptrack/internal/log"
	"shoptrack/internal/report"
	"shoptrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// GET /report — daily, weekly and monthly sales sections on one page.
func (h *ReportHandler) Page(c *fiber.Ctx) error {
	today := time.Now().UTC()
	var sections []services.SalesReport
	for _, tf := range []string{services.TimeframeDaily, services.TimeframeWeekly, services.TimeframeMonthly} {
		rep, err := h.Reports.SalesReport(tf, today)
		if err != nil {
			applog.Error(c, "report.sales.fail", err, map[string]any{"timeframe": tf})
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not build the report"})
		}
		sections = append(sections, rep)
	}
	return render(c, "report", fiber.Map{"Sections": sections})
}

// GET /report/download/:timeframe — PDF attachment.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	tf := c.Params("timeframe")
	rep, err := h.Reports.SalesReport(tf, time.Now().UTC())
	if err == services.ErrInvalidTimeframe {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid timeframe")
	}
	if err != nil {
		applog.Error(c, "report.sales.fail", err, map[string]any{"timeframe": tf})
		return c.Status(500).SendString("Could not build the report")
	}

	pdf, err := report.SalesPDF(rep)
	if err != nil {
		applog.Error(c, "report.pdf.fail", err, map[string]any{"timeframe": tf})
		return c.Status(500).SendString("Error generating PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_report.pdf"`, tf))
	return c.Send(pdf)
}
