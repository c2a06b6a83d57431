package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-workflow/internal/api/http/handlers"
	"github.com/spec-kit/ticket-workflow/internal/events"
	"github.com/spec-kit/ticket-workflow/internal/observability"
	"github.com/spec-kit/ticket-workflow/internal/persistence"
	"github.com/spec-kit/ticket-workflow/internal/repository"
	"github.com/spec-kit/ticket-workflow/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	workers, err := repository.NewWorkerRepository([]string{"tom", "bob"}, []string{"sam", "neil"})
	require.NoError(t, err)
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
		WorkerRepo: workers,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	metrics := observability.NewMetrics()
	app := NewApp(ServerConfig{
		AppName: "test",
		Metrics: metrics,
		Timeout: 5 * time.Second,
		Routes: RouteConfig{
			Health:  handlers.NewHealthHandler("ticket-workflow", "test", &persistence.Redis{}, metrics),
			Tickets: handlers.NewTicketsHandler(svc),
			Workers: handlers.NewWorkersHandler(svc),
		},
	})
	return app, metrics
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	app, metrics := newTestApp(t)

	status, env := do(t, app, nethttp.MethodPost, "/tickets", `{"type":"others","description":"please help me"}`)
	require.Equal(t, nethttp.StatusCreated, status)
	var created struct {
		ID         int64   `json:"id"`
		State      string  `json:"state"`
		Comment    string  `json:"comment"`
		ResolvedBy *string `json:"resolved_by"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "open", created.State)
	assert.Equal(t, "please help me", created.Comment)
	assert.Nil(t, created.ResolvedBy)

	status, env = do(t, app, nethttp.MethodPost, "/workers/tom/assign", "")
	require.Equal(t, nethttp.StatusOK, status)
	var assigned struct {
		Worker string `json:"worker"`
		Role   string `json:"role"`
		Ticket struct {
			ID    int64  `json:"id"`
			State string `json:"state"`
		} `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assigned))
	assert.Equal(t, "tom", assigned.Worker)
	assert.Equal(t, "EMPLOYEE", assigned.Role)
	assert.Equal(t, "assigned", assigned.Ticket.State)

	status, env = do(t, app, nethttp.MethodPost, "/workers/tom/resolve", `{"comment":"done now"}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(env.Data), `"state":"resolved"`)
	assert.Contains(t, string(env.Data), `"comment":"done now"`)

	status, _ = do(t, app, nethttp.MethodPost, "/workers/sam/assign", "")
	require.Equal(t, nethttp.StatusOK, status)

	status, env = do(t, app, nethttp.MethodPost, "/workers/sam/verify", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(env.Data), `"verified_by":"sam"`)

	status, env = do(t, app, nethttp.MethodGet, "/tickets/status", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, `{"open":0,"assigned":0,"closed":1,"total":1}`, string(env.Data))

	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/tickets/status|GET|200"])
}

func TestErrorMapping(t *testing.T) {
	app, metrics := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"invalid type", nethttp.MethodPost, "/tickets", `{"type":"refund"}`, nethttp.StatusBadRequest, "INVALID_TICKET_TYPE"},
		{"bad payload", nethttp.MethodPost, "/tickets", `{"type":`, nethttp.StatusBadRequest, "VALIDATION_FAILED"},
		{"invalid id", nethttp.MethodGet, "/tickets/abc", "", nethttp.StatusBadRequest, "INVALID_ID"},
		{"unknown id", nethttp.MethodGet, "/tickets/42", "", nethttp.StatusNotFound, "TICKET_NOT_FOUND"},
		{"no eligible", nethttp.MethodPost, "/workers/sam/assign", "", nethttp.StatusNotFound, "NO_ELIGIBLE_TICKET"},
		{"nothing to resolve", nethttp.MethodPost, "/workers/tom/resolve", "", nethttp.StatusConflict, "NO_TICKET_ASSIGNED"},
		{"nothing to verify", nethttp.MethodPost, "/workers/neil/verify", "", nethttp.StatusConflict, "NO_TICKET_ASSIGNED"},
		{"unknown route", nethttp.MethodGet, "/nope", "", nethttp.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}

	assert.Equal(t, int64(1), metrics.Snapshot().Errors["/tickets/42|GET|TICKET_NOT_FOUND"])
}

func TestWorkersAndHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := do(t, app, nethttp.MethodGet, "/workers", "")
	require.Equal(t, nethttp.StatusOK, status)
	var workers []struct {
		Name            string `json:"name"`
		Role            string `json:"role"`
		CurrentTicketID *int64 `json:"current_ticket_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &workers))
	require.Len(t, workers, 4)
	assert.Equal(t, "tom", workers[0].Name)
	assert.Equal(t, "SUPERVISOR", workers[3].Role)

	req := httptest.NewRequest(nethttp.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest(nethttp.MethodGet, "/health/ready", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"redis":"disabled"`)

	status, env = do(t, app, nethttp.MethodGet, "/metrics", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(env.Data), `"requests"`)
}
