package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcrew/internal/models/request_models"
	"tripcrew/internal/models/response_models"
	"tripcrew/pkg/utils"
)

type fakePlanner struct {
	got  request_models.PlanRequest
	plan *response_models.FinalPlan
	err  error
}

func (f *fakePlanner) CreatePlan(_ context.Context, req request_models.PlanRequest) (*response_models.FinalPlan, error) {
	f.got = req
	return f.plan, f.err
}

func (f *fakePlanner) PopularDestinations() []response_models.PopularDestination {
	return []response_models.PopularDestination{{Name: "Tokyo, Japan", Code: "NRT", Region: "Asia"}}
}

type fakeArchive struct {
	plan *response_models.FinalPlan
	err  error
}

func (f *fakeArchive) Enabled() bool { return f.err != utils.ErrArchiveDisabled }

func (f *fakeArchive) SavePlan(context.Context, request_models.PlanRequest, *response_models.FinalPlan) (string, error) {
	return "", f.err
}

func (f *fakeArchive) GetPlanByID(context.Context, string) (*response_models.FinalPlan, error) {
	return f.plan, f.err
}

func newRouter(planner *fakePlanner, archive *fakeArchive) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := NewPlanController(planner, archive)
	mc := NewMetaController(planner)
	r.GET("/", mc.RootHandler)
	r.GET("/health", mc.HealthHandler)
	r.GET("/destinations/popular", mc.PopularDestinationsHandler)
	r.POST("/plan", pc.CreatePlanHandler)
	r.GET("/plans/:id", pc.GetPlanHandler)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlanHandler_ReturnsPlan(t *testing.T) {
	planner := &fakePlanner{plan: &response_models.FinalPlan{Destination: "Tokyo", Origin: "SIN", BestDates: "April"}}
	r := newRouter(planner, &fakeArchive{})

	w := do(r, http.MethodPost, "/plan", `{"destination":"Tokyo","interests":["food"],"duration_days":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Tokyo", body["destination"])
	assert.Equal(t, "April", body["best_dates"])
	assert.NotContains(t, body, "status")

	assert.Equal(t, "Tokyo", planner.got.Destination)
	assert.Equal(t, []string{"food"}, planner.got.Interests)
	require.NotNil(t, planner.got.DurationDays)
	assert.Equal(t, 5, *planner.got.DurationDays)
}

func TestCreatePlanHandler_RejectsBadBodies(t *testing.T) {
	r := newRouter(&fakePlanner{}, &fakeArchive{})

	for _, body := range []string{
		`{}`,
		`{"destination":"Tokyo","budget_level":"lavish"}`,
		`{"destination":"Tokyo","departure_date":"June 1"}`,
		`{"destination":"Tokyo","duration_days":45}`,
		`{"destination":"Tokyo","trip_type":"business"}`,
		`not json`,
	} {
		w := do(r, http.MethodPost, "/plan", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
	}
}

func TestCreatePlanHandler_MapsServiceErrors(t *testing.T) {
	planner := &fakePlanner{err: utils.ErrPlanningFailed}
	w := do(newRouter(planner, &fakeArchive{}), http.MethodPost, "/plan", `{"destination":"Tokyo"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	planner.err = utils.ErrInvalidInput
	w = do(newRouter(planner, &fakeArchive{}), http.MethodPost, "/plan", `{"destination":"Tokyo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlanHandler(t *testing.T) {
	archive := &fakeArchive{plan: &response_models.FinalPlan{PlanID: "abc", Destination: "Paris"}}
	w := do(newRouter(&fakePlanner{}, archive), http.MethodGet, "/plans/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plan_id":"abc"`)

	archive = &fakeArchive{err: utils.ErrPlanNotFound}
	w = do(newRouter(&fakePlanner{}, archive), http.MethodGet, "/plans/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	archive = &fakeArchive{err: utils.ErrArchiveDisabled}
	w = do(newRouter(&fakePlanner{}, archive), http.MethodGet, "/plans/abc", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetaHandlers(t *testing.T) {
	r := newRouter(&fakePlanner{}, &fakeArchive{})

	w := do(r, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"healthy","service":"travel-planner-api"}`, w.Body.String())

	w = do(r, http.MethodGet, "/", "")
	var root map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "Travel Planner API", root["message"])
	assert.Equal(t, "1.0.0", root["version"])
	assert.Contains(t, root["endpoints"], "POST /plan")

	w = do(r, http.MethodGet, "/destinations/popular", "")
	assert.JSONEq(t, `{"destinations":[{"name":"Tokyo, Japan","code":"NRT","region":"Asia"}]}`, w.Body.String())
}
