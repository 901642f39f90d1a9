package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"team-planning/internal/auth"
	"team-planning/internal/config"
	"team-planning/internal/middleware"
	"team-planning/internal/models"
	"team-planning/internal/repository"
	"team-planning/internal/service"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *fiber.App
	store *repository.Store
	leave *service.LeaveService
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		PlanningYear: 2026,
		Members:      []string{"William", "Ritchie", "Emmanuel", "Grégory", "Kyle"},
		MinStaff:     3,
	}
	store, err := repository.OpenJSON(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	manager, err := auth.NewManager("s3cret", "", "jwt-secret", time.Hour)
	require.NoError(t, err)
	token, _, err := manager.Login("s3cret")
	require.NoError(t, err)

	leave := service.NewLeaveService(store.Requests, store.Planning, nil, cfg)
	h := NewHandler(
		service.NewCalendarService(store.Planning, cfg),
		service.NewPlanningService(store.Planning, cfg),
		leave,
		manager,
		cfg,
	)
	h.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) }

	app, err := NewApp(h, false)
	require.NoError(t, err)
	return &testEnv{app: app, store: store, leave: leave, token: token}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func (e *testEnv) withCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: e.token})
	return req
}

func (e *testEnv) withBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+e.token)
	return req
}

func TestCalendarPage(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Planning Mars 2026")
	assert.Contains(t, body, "Semaine 10")
	assert.Contains(t, body, "Lundi 02/03/2026")

	resp, body = env.do(t, httptest.NewRequest("GET", "/?month=7", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Juillet")

	resp, _ = env.do(t, httptest.NewRequest("GET", "/?month=13", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitLeaveForm(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, formRequest("POST", "/leave", url.Values{
		"requester":  {"Kyle"},
		"kind":       {"remote"},
		"start_date": {"2026-04-06"},
		"end_date":   {"2026-04-07"},
		"reason":     {"travaux"},
	}))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Demande envoyée")

	pending, err := env.leave.Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Kyle", pending[0].Requester)

	resp, body = env.do(t, formRequest("POST", "/leave", url.Values{
		"requester":  {"Nobody"},
		"kind":       {"remote"},
		"start_date": {"2026-04-06"},
		"end_date":   {"2026-04-07"},
	}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "unknown team member")
}

func TestManagerPagesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, req := range []*http.Request{
		httptest.NewRequest("GET", "/manager", nil),
		formRequest("POST", "/manager/period", url.Values{"member": {"Kyle"}}),
		httptest.NewRequest("POST", "/manager/requests/abc/approve", nil),
	} {
		resp, _ := env.do(t, req)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, req.URL.Path)
		assert.Equal(t, "/manager/login", resp.Header.Get("Location"))
	}

	resp, body := env.do(t, httptest.NewRequest("GET", "/manager/login", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mot de passe")
}

func TestManagerLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, formRequest("POST", "/manager/login", url.Values{"password": {"nope"}}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Mot de passe incorrect")

	resp, _ = env.do(t, formRequest("POST", "/manager/login", url.Values{"password": {"s3cret"}}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/manager", resp.Header.Get("Location"))

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)

	req := httptest.NewRequest("GET", "/manager", nil)
	req.AddCookie(session)
	resp, body = env.do(t, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Aucune demande en attente")
}

func TestManagerApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req, err := env.leave.Submit(ctx, service.SubmitInput{
		Requester: "Ritchie",
		Kind:      "vacation",
		StartDate: "2026-03-06", // Friday
		EndDate:   "2026-03-09", // Monday
	})
	require.NoError(t, err)

	resp, body := env.do(t, env.withCookie(httptest.NewRequest("GET", "/manager", nil)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Ritchie")
	assert.Contains(t, body, "/manager/requests/"+req.ID+"/approve")

	resp, _ = env.do(t, env.withCookie(httptest.NewRequest("POST", "/manager/requests/"+req.ID+"/approve", nil)))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "msg=")

	plan, err := env.store.Planning.GetRange(ctx, "2026-03-06", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, models.StatusVacation, plan.Get("2026-03-06", "Ritchie").Status)
	assert.Equal(t, models.StatusVacation, plan.Get("2026-03-07", "Ritchie").Status)
	assert.Equal(t, models.StatusPresent, plan.Get("2026-03-08", "Ritchie").Status) // Sunday
	assert.Equal(t, models.StatusVacation, plan.Get("2026-03-09", "Ritchie").Status)

	pending, err := env.leave.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	resp, _ = env.do(t, env.withCookie(httptest.NewRequest("POST", "/manager/requests/"+req.ID+"/reject", nil)))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "err=")
}

func TestManagerPeriodAndWeekly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, _ := env.do(t, env.withCookie(formRequest("POST", "/manager/period", url.Values{
		"member":     {"Emmanuel"},
		"status":     {"absent"},
		"start_date": {"2026-05-04"},
		"note":       {"rdv"},
	})))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, _ = env.do(t, env.withCookie(formRequest("POST", "/manager/weekly", url.Values{
		"member":  {"Kyle"},
		"weekday": {"3"},
		"status":  {"remote"},
	})))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "msg=")

	plan, err := env.store.Planning.GetRange(ctx, "2026-05-04", "2026-05-06")
	require.NoError(t, err)
	assert.Equal(t, models.Entry{Status: models.StatusAbsent, Note: "rdv"}, plan.Get("2026-05-04", "Emmanuel"))
	assert.Equal(t, models.StatusRemote, plan.Get("2026-05-06", "Kyle").Status)

	resp, _ = env.do(t, env.withCookie(formRequest("POST", "/manager/weekly", url.Values{
		"member":  {"Kyle"},
		"weekday": {"0"},
		"status":  {"remote"},
	})))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "err=")
}

func TestAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest("GET", "/api/calendar?month=2", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cal struct {
		Data service.MonthView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &cal))
	assert.Equal(t, 2, cal.Data.Month)
	assert.Equal(t, "Février", cal.Data.MonthName)

	resp, _ = env.do(t, httptest.NewRequest("GET", "/api/calendar/2025-12-31", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, jsonRequest("POST", "/api/leave",
		`{"requester":"William","kind":"absence","start_date":"2026-09-01","end_date":"2026-09-01"}`))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.LeaveRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.Data.ID)

	resp, _ = env.do(t, httptest.NewRequest("GET", "/api/manager/requests", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = env.do(t, jsonRequest("POST", "/api/manager/login", `{"password":"s3cret"}`))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "token")

	resp, body = env.do(t, env.withBearer(httptest.NewRequest("GET", "/api/manager/requests", nil)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, created.Data.ID)

	resp, body = env.do(t, env.withBearer(httptest.NewRequest("POST", "/api/manager/requests/"+created.Data.ID+"/approve", nil)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"days":1`)

	resp, _ = env.do(t, env.withBearer(httptest.NewRequest("POST", "/api/manager/requests/"+created.Data.ID+"/reject", nil)))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = env.do(t, env.withBearer(jsonRequest("POST", "/api/manager/period",
		`{"member":"Grégory","status":"vacation","start_date":"2026-08-03","end_date":"2026-08-08"}`)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"days":6`)

	resp, _ = env.do(t, env.withBearer(jsonRequest("POST", "/api/manager/period",
		`{"member":"Grégory","status":"vacation","start_date":"2027-01-04","end_date":"2027-01-05"}`)))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, env.withBearer(jsonRequest("POST", "/api/manager/weekly",
		`{"member":"William","weekday":2,"status":"office_closed"}`)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"days":52`)
}
