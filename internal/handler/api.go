package handler

import (
	"team-planning/internal/models"
	"team-planning/internal/service"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) APICalendar(c *fiber.Ctx) error {
	view, err := h.calendar.Month(c.UserContext(), h.monthParam(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": view})
}

func (h *Handler) APIDay(c *fiber.Ctx) error {
	d, err := models.ParseDate(c.Params("date"))
	if err != nil {
		return jsonError(c, service.ErrInvalidDate)
	}
	if d.Year() != h.cfg.PlanningYear {
		return jsonError(c, service.ErrOutOfYear)
	}
	day, err := h.calendar.Day(c.UserContext(), d)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": day})
}

func (h *Handler) APISubmitLeave(c *fiber.Ctx) error {
	var in service.SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	req, err := h.leave.Submit(c.UserContext(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "leave request submitted",
		"data":    req,
	})
}

func (h *Handler) APILogin(c *fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	token, expires, err := h.auth.Login(body.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"token": token, "expires_at": expires})
}

func (h *Handler) APIPending(c *fiber.Ctx) error {
	list, err := h.leave.Pending(c.UserContext())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *Handler) APIApprove(c *fiber.Ctx) error {
	n, err := h.leave.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "leave request approved", "days": n})
}

func (h *Handler) APIReject(c *fiber.Ctx) error {
	if err := h.leave.Reject(c.UserContext(), c.Params("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "leave request rejected"})
}

func (h *Handler) APISetPeriod(c *fiber.Ctx) error {
	var in service.PeriodInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	n, err := h.planning.SetPeriod(c.UserContext(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "planning updated", "days": n})
}

func (h *Handler) APIWeeklyRule(c *fiber.Ctx) error {
	var in service.WeeklyRuleInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	n, err := h.planning.ApplyWeeklyRule(c.UserContext(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "weekly rule applied", "days": n})
}
