package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
)

type testAPI struct {
	srv *httptest.Server
	hub *events.Hub
	db  *store.DB
	cfg string
}

func newTestAPI(t *testing.T) *testAPI {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	local := store.NewLocalFiles(filepath.Join(dir, "apps.csv"), filepath.Join(dir, "apps.json"))
	repo := store.NewRepository(nil, local, &store.Journal{DB: db.Pool}, time.Second, nil)

	cfgPath := filepath.Join(dir, "config.yml")
	var cfgVal atomic.Value
	cfgVal.Store(config.Default())

	hub := events.NewHub()
	svc := service.New(repo, service.Options{
		Settings:  service.LiveSettings(&cfgVal),
		Publisher: hub,
		Now:       func() time.Time { return time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC) },
		RequestID: RequestIDFrom,
	})

	mux := NewMux(Deps{
		Service:     svc,
		Hub:         hub,
		Publisher:   hub,
		DB:          db,
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		Logger:      zap.NewNop(),
	})
	h := Chain(mux, RequestID, Recover(zap.NewNop()), AccessLog(zap.NewNop()))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testAPI{srv: srv, hub: hub, db: db, cfg: cfgPath}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *http.Response {
	req, err := http.NewRequest(method, a.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const addBody = `{"job_title":"Platform Engineer","company":"Google Inc","date_applied":"2025-06-01","deadline":"2025-06-09","status":"Interviewing"}`

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCreateListAndDashboard(t *testing.T) {
	api := newTestAPI(t)
	sub := api.hub.Subscribe()

	resp := api.do(t, http.MethodPost, "/applications", addBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m := decode[service.Mutation](t, resp)
	assert.Equal(t, "remote_failed_local_ok", m.Save.Status)
	require.NotNil(t, m.Record)
	assert.NotEmpty(t, m.Record.RecordID)

	evt := <-sub.C
	assert.Equal(t, events.TypeApplicationAdded, evt.Type)
	assert.Contains(t, evt.Data, "Google")

	resp = api.do(t, http.MethodGet, "/applications?q=GOOGLE", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	type trackerBody struct {
		Source string `json:"source"`
		Data   struct {
			Rows    []map[string]any `json:"rows"`
			NoMatch bool             `json:"no_match"`
		} `json:"data"`
	}
	list := decode[trackerBody](t, resp)
	assert.Equal(t, "local", list.Source)
	assert.Len(t, list.Data.Rows, 1)

	resp = api.do(t, http.MethodGet, "/applications?status=Applied,Rejected", "")
	body := decode[map[string]any](t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["no_match"])

	resp = api.do(t, http.MethodGet, "/dashboard", "")
	dash := decode[map[string]any](t, resp)
	deadlines := dash["data"].(map[string]any)["deadlines"].([]any)
	require.Len(t, deadlines, 1)
	assert.EqualValues(t, 7, deadlines[0].(map[string]any)["days_left"])
}

func TestCreateRejectsMissingCompany(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/applications", `{"job_title":"Dev","date_applied":"2025-06-01"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[APIError](t, resp)
	assert.Equal(t, "invalid_input", e.Error.Code)
	assert.Contains(t, e.Error.Message, "required")
	assert.NotEmpty(t, e.Error.RequestID)

	resp = api.do(t, http.MethodGet, "/store/history", "")
	entries := decode[[]store.JournalEntry](t, resp)
	assert.Empty(t, entries, "rejected input never reaches the store")
}

func TestCreateRejectsUnknownFields(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/applications", `{"title":"Dev"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateDuplicateDeleteAndExport(t *testing.T) {
	api := newTestAPI(t)
	created := decode[service.Mutation](t, api.do(t, http.MethodPost, "/applications", addBody))
	id := created.Record.RecordID

	resp := api.do(t, http.MethodPut, "/applications/"+id, strings.Replace(addBody, "Interviewing", "Offered", 1))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[service.Mutation](t, resp)
	assert.Equal(t, "Offered", string(updated.Record.Status))

	resp = api.do(t, http.MethodPost, "/applications/"+id+"/duplicate", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dup := decode[service.Mutation](t, resp)
	assert.Equal(t, "Google Inc (Copy)", dup.Record.Company)
	assert.Equal(t, 2, dup.Rows)

	resp = api.do(t, http.MethodGet, "/applications/export?q=copy", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=job_applications_20250602_120000.csv", resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "1", resp.Header.Get("X-Row-Count"))

	resp = api.do(t, http.MethodDelete, "/applications/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/applications/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodPatch, "/applications/"+id, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	entries := decode[[]store.JournalEntry](t, api.do(t, http.MethodGet, "/store/history?limit=2", ""))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rows)
}

func TestSeedInsightsCalendar(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/seed", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	ins := decode[map[string]any](t, api.do(t, http.MethodGet, "/insights", ""))
	assert.EqualValues(t, 4, ins["data"].(map[string]any)["total"])

	cal := decode[map[string]any](t, api.do(t, http.MethodGet, "/calendar", ""))
	evts := cal["data"].(map[string]any)["events"].([]any)
	require.NotEmpty(t, evts)
	assert.Equal(t, "TODAY", evts[0].(map[string]any)["when"])
}

func TestConfigEndpoints(t *testing.T) {
	api := newTestAPI(t)

	cfg := decode[config.Config](t, api.do(t, http.MethodGet, "/config", ""))
	assert.Equal(t, config.Default().App.Port, cfg.App.Port)

	cfg.Calendar.Limit = 0
	b, _ := json.Marshal(cfg)
	resp := api.do(t, http.MethodPut, "/config", string(b))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	vr := decode[config.Validation](t, resp)
	assert.NotEmpty(t, vr.Errors)

	cfg.Calendar.Limit = 5
	cfg.Alerts.DeadlineDays = 10
	b, _ = json.Marshal(cfg)
	resp = api.do(t, http.MethodPut, "/config", string(b))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decode[configSaved](t, resp)
	assert.Equal(t, 5, saved.Config.Calendar.Limit)
	assert.Empty(t, saved.Restart)

	path := decode[map[string]string](t, api.do(t, http.MethodGet, "/config/path", ""))
	assert.Equal(t, api.cfg, path["path"])

	resp = api.do(t, http.MethodGet, "/config/validate", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConfigEditsApplyToViews(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/seed", "").StatusCode)

	type calendarBody struct {
		Data struct {
			Events []map[string]any `json:"events"`
		} `json:"data"`
	}
	type dashboardBody struct {
		Data struct {
			Deadlines []map[string]any `json:"deadlines"`
		} `json:"data"`
	}
	cal := decode[calendarBody](t, api.do(t, http.MethodGet, "/calendar", ""))
	require.Len(t, cal.Data.Events, 4)
	dash := decode[dashboardBody](t, api.do(t, http.MethodGet, "/dashboard", ""))
	assert.Empty(t, dash.Data.Deadlines, "the seeded deadline is two weeks out")

	cfg := config.Default()
	cfg.Calendar.Limit = 2
	cfg.Alerts.DeadlineDays = 14
	b, _ := json.Marshal(cfg)
	resp := api.do(t, http.MethodPut, "/config", string(b))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[configSaved](t, resp).Restart)

	cal = decode[calendarBody](t, api.do(t, http.MethodGet, "/calendar", ""))
	assert.Len(t, cal.Data.Events, 2)
	dash = decode[dashboardBody](t, api.do(t, http.MethodGet, "/dashboard", ""))
	assert.Len(t, dash.Data.Deadlines, 1)
}

func TestCreateRejectsUnknownChoices(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/applications",
		`{"job_title":"Dev","company":"Acme","date_applied":"2025-06-01","priority":"Urgent"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[APIError](t, resp)
	assert.Equal(t, "invalid_input", e.Error.Code)
	assert.Contains(t, e.Error.Message, "priority")

	resp = api.do(t, http.MethodPost, "/applications",
		`{"job_title":"Dev","company":"Acme","date_applied":"2025-06-01","status":"applied","channel":" company website ","referral":"yes"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m := decode[service.Mutation](t, resp)
	assert.Equal(t, "Applied", string(m.Record.Status))
	assert.Equal(t, "Company Website", string(m.Record.Channel))
	assert.Equal(t, "Yes", m.Record.Referral)

	dash := decode[map[string]any](t, api.do(t, http.MethodGet, "/dashboard", ""))
	stats := dash["data"].(map[string]any)["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["active"])
}

func TestLogosDisabledAndMissing(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/logos/refresh", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/logo/abc", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		RequestID, Recover(zap.NewNop()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/applications", nil)
	assert.Nil(t, filterFromQuery(r))

	r = httptest.NewRequest(http.MethodGet, "/applications?status=Applied,%20Pending&status=Offered&channel=LinkedIn&q=acme", nil)
	f := filterFromQuery(r)
	require.NotNil(t, f)
	assert.Equal(t, []string{"Applied", "Pending", "Offered"}, f.Statuses)
	assert.Empty(t, f.Priorities)
	assert.Equal(t, []string{"LinkedIn"}, f.Channels)
	assert.Equal(t, "acme", f.Search)
}

func readFrame(t *testing.T, r *bufio.Reader) map[string]string {
	t.Helper()
	frame := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return frame
		}
		if k, v, ok := strings.Cut(line, ": "); ok {
			frame[k] = v
		}
	}
}

func TestEventStreamFiltersTypes(t *testing.T) {
	api := newTestAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.srv.URL+"/events?types=application.added", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	assert.Equal(t, "ping", readFrame(t, r)["event"])
	require.Eventually(t, func() bool { return api.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// seed is filtered out, the add comes through
	api.hub.Publish(events.MakeEvent("", events.TypeTableSeeded, 1, nil))
	created := api.do(t, http.MethodPost, "/applications", addBody)
	require.Equal(t, http.StatusCreated, created.StatusCode)

	frame := readFrame(t, r)
	assert.Equal(t, events.TypeApplicationAdded, frame["event"])
	assert.Equal(t, "2", frame["id"])
	assert.Contains(t, frame["data"], "Platform Engineer")
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, IsLoopback("127.0.0.1:5000"))
	assert.True(t, IsLoopback("[::1]:5000"))
	assert.True(t, IsLoopback("localhost"))
	assert.False(t, IsLoopback("10.0.0.2:5000"))
}

func TestCheckpoint(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/db/checkpoint", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
