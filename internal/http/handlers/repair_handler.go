package handlers

import (
	"fmt"
	"time"

	"shoptrack/internal/domain"
	applog "shoptrack/internal/log"
	"shoptrack/internal/report"
	"shoptrack/internal/services"
	"shoptrack/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type RepairHandler struct {
	Repairs *services.RepairService
	Reports *services.ReportService
}

// GET /repairs — open tickets only, collected ones drop off the board.
func (h *RepairHandler) List(c *fiber.Ctx) error {
	reps, err := h.Repairs.ListOpen()
	if err != nil {
		applog.Error(c, "repairs.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load repairs"})
	}
	return render(c, "repairs", fiber.Map{"Repairs": reps})
}

// GET /repairs/new and /repairs/:id/edit
func (h *RepairHandler) Form(c *fiber.Ctx) error {
	data := fiber.Map{"Statuses": []string{domain.RepairInProgress, domain.RepairCompleted, domain.RepairCollected}}
	if id := c.Params("id"); id != "" {
		rep, err := h.Repairs.Get(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Repair not found"})
		}
		data["Repair"] = rep
	}
	return render(c, "repair_form", data)
}

func (h *RepairHandler) parseRepairForm(c *fiber.Ctx) (domain.Repair, string) {
	var rep domain.Repair
	owner, okO := validate.Name(c.FormValue("owner_name"))
	phone, okP := validate.Phone(c.FormValue("owner_phone"))
	device, okD := validate.Name(c.FormValue("phone_name"))
	model, okM := validate.Name(c.FormValue("phone_model"))
	issue := c.FormValue("issue_description")
	charges, okC := validate.Price(c.FormValue("charges"))
	status := c.FormValue("status")
	if status == "" {
		status = domain.RepairInProgress
	}
	if !okO || !okP || !okD || !okM || !okC || issue == "" {
		return rep, "Check the form: owner, phone, device, issue and non-negative charges are required."
	}
	if !domain.ValidRepairStatus(status) {
		return rep, "Unknown repair status."
	}
	rep = domain.Repair{
		OwnerName: owner, OwnerPhone: phone,
		PhoneName: device, PhoneModel: model,
		IssueDescription: issue, Charges: charges, Status: status,
	}
	return rep, ""
}

// POST /repairs/new
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	rep, msg := h.parseRepairForm(c)
	if msg != "" {
		return c.Status(400).Render("repair_form", fiber.Map{"Err": msg})
	}
	if err := h.Repairs.Create(&rep); err != nil {
		applog.Error(c, "repairs.create.fail", err, nil)
		return c.Status(400).Render("repair_form", fiber.Map{"Err": "Could not create the ticket."})
	}
	applog.Audit(c, "repairs.create", map[string]any{"repair_id": rep.ID})
	return c.Redirect("/repairs")
}

// POST /repairs/:id/edit — saving with status COLLECTED recognizes revenue.
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Repair not found"})
	}
	if _, err := h.Repairs.Get(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Repair not found"})
	}
	rep, msg := h.parseRepairForm(c)
	if msg != "" {
		return c.Status(400).Render("repair_form", fiber.Map{"Err": msg})
	}
	rep.ID = id
	if err := h.Repairs.Update(&rep); err != nil {
		applog.Error(c, "repairs.update.fail", err, map[string]any{"repair_id": id})
		return c.Status(400).Render("repair_form", fiber.Map{"Err": "Could not save the ticket."})
	}
	applog.Audit(c, "repairs.update", map[string]any{"repair_id": id, "status": rep.Status})
	return c.Redirect("/repairs")
}

// GET /repairs/report
func (h *RepairHandler) Report(c *fiber.Ctx) error {
	today := time.Now().UTC()
	var sections []services.RepairReport
	for _, tf := range []string{services.TimeframeDaily, services.TimeframeWeekly, services.TimeframeMonthly} {
		rep, err := h.Reports.RepairReport(tf, today)
		if err != nil {
			applog.Error(c, "report.repairs.fail", err, map[string]any{"timeframe": tf})
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not build the report"})
		}
		sections = append(sections, rep)
	}
	return render(c, "repair_report", fiber.Map{"Sections": sections})
}

// GET /repairs/report/download/:timeframe
func (h *RepairHandler) Download(c *fiber.Ctx) error {
	tf := c.Params("timeframe")
	rep, err := h.Reports.RepairReport(tf, time.Now().UTC())
	if err == services.ErrInvalidTimeframe {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid timeframe")
	}
	if err != nil {
		applog.Error(c, "report.repairs.fail", err, map[string]any{"timeframe": tf})
		return c.Status(500).SendString("Could not build the report")
	}

	pdf, err := report.RepairsPDF(rep)
	if err != nil {
		applog.Error(c, "report.pdf.fail", err, map[string]any{"timeframe": tf})
		return c.Status(500).SendString("Error generating PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_repair_report.pdf"`, tf))
	return c.Send(pdf)
}
