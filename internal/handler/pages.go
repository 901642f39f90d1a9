package handler

import (
	"fmt"
	"net/url"
	"team-planning/internal/middleware"
	"team-planning/internal/models"
	"team-planning/internal/service"
	"time"

	"github.com/gofiber/fiber/v2"
)

// defaultMonth is the current month clamped to the planning year.
func (h *Handler) defaultMonth() int {
	now := h.now()
	switch {
	case now.Year() < h.cfg.PlanningYear:
		return 1
	case now.Year() > h.cfg.PlanningYear:
		return 12
	}
	return int(now.Month())
}

func (h *Handler) monthParam(c *fiber.Ctx) int {
	return c.QueryInt("month", h.defaultMonth())
}

func (h *Handler) CalendarPage(c *fiber.Ctx) error {
	view, err := h.calendar.Month(c.UserContext(), h.monthParam(c))
	if err != nil {
		return err
	}

	months := make([]fiber.Map, 0, len(service.MonthNamesFR))
	for i, name := range service.MonthNamesFR {
		months = append(months, fiber.Map{"Number": i + 1, "Name": name, "Current": i+1 == view.Month})
	}

	return c.Render("calendar", fiber.Map{
		"Title":    "Planning " + view.MonthName,
		"View":     view,
		"Months":   months,
		"Statuses": models.AllStatuses,
		"MinStaff": h.cfg.MinStaff,
	}, "layout")
}

func (h *Handler) leaveFormData(extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":   "Demande de congé",
		"Members": h.cfg.Members,
		"Kinds":   models.AllLeaveKinds,
		"Year":    h.cfg.PlanningYear,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *Handler) LeaveForm(c *fiber.Ctx) error {
	return c.Render("leave", h.leaveFormData(nil), "layout")
}

func (h *Handler) SubmitLeave(c *fiber.Ctx) error {
	var in service.SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulaire invalide")
	}

	req, err := h.leave.Submit(c.UserContext(), in)
	if err != nil {
		if service.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).Render("leave", h.leaveFormData(fiber.Map{
				"Error": err.Error(),
				"Input": in,
			}), "layout")
		}
		return err
	}

	return c.Render("leave", h.leaveFormData(fiber.Map{
		"Success": fmt.Sprintf("Demande envoyée : %s du %s au %s.", req.Kind.Label(), req.StartDate, req.EndDate),
	}), "layout")
}

func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Espace manager"}, "layout")
}

func (h *Handler) Login(c *fiber.Ctx) error {
	token, expires, err := h.auth.Login(c.FormValue("password"))
	if err != nil {
		h.logger.WithField("ip", c.IP()).Warn("Manager login refused")
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Espace manager",
			"Error": "Mot de passe incorrect",
		}, "layout")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/manager", fiber.StatusSeeOther)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handler) ManagerPanel(c *fiber.Ctx) error {
	pending, err := h.leave.Pending(c.UserContext())
	if err != nil {
		return err
	}

	weekdays := make([]fiber.Map, 0, 6)
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		weekdays = append(weekdays, fiber.Map{"Number": int(wd), "Name": service.DayNamesFR[wd]})
	}

	return c.Render("manager", fiber.Map{
		"Title":          "Panneau manager",
		"Members":        h.cfg.Members,
		"Statuses":       models.AllStatuses,
		"WeeklyStatuses": models.WeeklyRuleStatuses,
		"Weekdays":       weekdays,
		"Pending":        pending,
		"Year":           h.cfg.PlanningYear,
		"Flash":          c.Query("msg"),
		"Error":          c.Query("err"),
	}, "layout")
}

// backToPanel redirects to the panel carrying the outcome of a form post.
func (h *Handler) backToPanel(c *fiber.Ctx, msg string, err error) error {
	if err != nil {
		if !service.IsValidationError(err) && statusFor(err) >= fiber.StatusInternalServerError {
			return err
		}
		return c.Redirect("/manager?err="+url.QueryEscape(err.Error()), fiber.StatusSeeOther)
	}
	return c.Redirect("/manager?msg="+url.QueryEscape(msg), fiber.StatusSeeOther)
}

func (h *Handler) SetPeriod(c *fiber.Ctx) error {
	var in service.PeriodInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulaire invalide")
	}
	n, err := h.planning.SetPeriod(c.UserContext(), in)
	return h.backToPanel(c, fmt.Sprintf("%d jour(s) mis à jour pour %s", n, in.Member), err)
}

func (h *Handler) ApplyWeeklyRule(c *fiber.Ctx) error {
	var in service.WeeklyRuleInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulaire invalide")
	}
	n, err := h.planning.ApplyWeeklyRule(c.UserContext(), in)
	return h.backToPanel(c, fmt.Sprintf("Règle appliquée sur %d jour(s) pour %s", n, in.Member), err)
}

func (h *Handler) ApproveRequest(c *fiber.Ctx) error {
	n, err := h.leave.Approve(c.UserContext(), c.Params("id"))
	return h.backToPanel(c, fmt.Sprintf("Demande validée, %d jour(s) inscrits", n), err)
}

func (h *Handler) RejectRequest(c *fiber.Ctx) error {
	err := h.leave.Reject(c.UserContext(), c.Params("id"))
	return h.backToPanel(c, "Demande refusée", err)
}
