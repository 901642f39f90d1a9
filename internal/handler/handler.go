package handler

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"team-planning/internal/auth"
	"team-planning/internal/config"
	"team-planning/internal/middleware"
	"team-planning/internal/service"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

//go:embed views/*.html
var viewsFS embed.FS

type Handler struct {
	calendar *service.CalendarService
	planning *service.PlanningService
	leave    *service.LeaveService
	auth     *auth.Manager
	cfg      *config.Config
	logger   *logrus.Logger
	now      func() time.Time
}

func NewHandler(
	calendar *service.CalendarService,
	planning *service.PlanningService,
	leave *service.LeaveService,
	authManager *auth.Manager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		calendar: calendar,
		planning: planning,
		leave:    leave,
		auth:     authManager,
		cfg:      cfg,
		logger:   logrus.New(),
		now:      time.Now,
	}
}

// NewApp builds the fiber application with views and every route mounted.
func NewApp(h *Handler, accessLog bool) (*fiber.App, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})
	app.Use(recover.New())
	if accessLog {
		app.Use(logger.New())
	}
	app.Use("/api", cors.New())

	h.Register(app)
	return app, nil
}

func (h *Handler) Register(app *fiber.App) {
	// Pages
	app.Get("/", h.CalendarPage)
	app.Get("/leave", h.LeaveForm)
	app.Post("/leave", h.SubmitLeave)
	app.Get("/manager/login", h.LoginPage)
	app.Post("/manager/login", h.Login)
	app.Post("/manager/logout", h.Logout)

	manager := app.Group("/manager", middleware.ManagerPage(h.auth))
	manager.Get("/", h.ManagerPanel)
	manager.Post("/period", h.SetPeriod)
	manager.Post("/weekly", h.ApplyWeeklyRule)
	manager.Post("/requests/:id/approve", h.ApproveRequest)
	manager.Post("/requests/:id/reject", h.RejectRequest)

	// JSON API
	api := app.Group("/api")
	api.Get("/calendar", h.APICalendar)
	api.Get("/calendar/:date", h.APIDay)
	api.Post("/leave", h.APISubmitLeave)
	api.Post("/manager/login", h.APILogin)

	apiManager := api.Group("/manager", middleware.ManagerAPI(h.auth))
	apiManager.Get("/requests", h.APIPending)
	apiManager.Post("/requests/:id/approve", h.APIApprove)
	apiManager.Post("/requests/:id/reject", h.APIReject)
	apiManager.Post("/period", h.APISetPeriod)
	apiManager.Post("/weekly", h.APIWeeklyRule)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case service.IsValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrRequestNotFound):
		return fiber.StatusNotFound
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Path()).Error("Request failed")
	}
	return c.Status(code).SendString(err.Error())
}
