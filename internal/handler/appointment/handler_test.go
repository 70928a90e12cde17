package appointment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository/memory"
	"github.com/mindwell-clinic/clinic-api/internal/service/audit"
	"github.com/mindwell-clinic/clinic-api/internal/service/scheduling"
	"github.com/mindwell-clinic/clinic-api/pkg/metrics"
)

// March 10th 2025 is a Monday.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

func testRules() model.AvailabilityRules {
	return model.AvailabilityRules{
		Remote: model.AvailabilityRule{
			Weekdays:        []time.Weekday{time.Monday},
			StartTime:       "09:00",
			EndTime:         "12:00",
			IntervalMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auditor := audit.NewService(memory.NewAuditRepository())
	m := metrics.New("test", prometheus.NewRegistry())
	svc := scheduling.NewService(memory.NewAppointmentRepository(), testRules(), auditor, m)

	h := NewHandler(svc)
	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	h.RegisterAdminRoutes(api)
	return engine
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func bookSlot(t *testing.T, engine *gin.Engine, at time.Time) *model.Appointment {
	t.Helper()

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments", model.CreateAppointmentRequest{
		PatientID:   uuid.New(),
		ScheduledAt: at,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &appt))
	return &appt
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	appt := bookSlot(t, engine, monday.Add(10*time.Hour))
	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
	assert.NotEqual(t, uuid.Nil, appt.ID)
}

func TestCreateAppointmentMissingPatient(t *testing.T) {
	engine := newTestRouter(t)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"scheduled_at": monday.Add(10 * time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestCreateAppointmentConflictReturns409(t *testing.T) {
	engine := newTestRouter(t)
	at := monday.Add(10 * time.Hour)

	bookSlot(t, engine, at)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments", model.CreateAppointmentRequest{
		PatientID:   uuid.New(),
		ScheduledAt: at,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestAvailabilityEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	bookSlot(t, engine, monday.Add(10*time.Hour))

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/appointments/availability?date=2025-03-10&type=remote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, []string{"09:00", "11:00"}, data.Slots)
}

func TestAvailabilityEndpointRejectsBadDate(t *testing.T) {
	engine := newTestRouter(t)

	w, _ := doRequest(t, engine, http.MethodGet, "/api/v1/appointments/availability?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetStatusEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	appt := bookSlot(t, engine, monday.Add(9*time.Hour))

	w, resp := doRequest(t, engine, http.MethodPatch,
		fmt.Sprintf("/api/v1/appointments/%s/status", appt.ID),
		model.SetStatusRequest{Status: model.AppointmentStatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
}

func TestSetStatusInvalidTransitionReturns422(t *testing.T) {
	engine := newTestRouter(t)

	appt := bookSlot(t, engine, monday.Add(9*time.Hour))

	w, _ := doRequest(t, engine, http.MethodPatch,
		fmt.Sprintf("/api/v1/appointments/%s/status", appt.ID),
		model.SetStatusRequest{Status: model.AppointmentStatusCompleted})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateAppointmentNotFoundReturns404(t *testing.T) {
	engine := newTestRouter(t)

	notes := "missing"
	w, _ := doRequest(t, engine, http.MethodPut,
		fmt.Sprintf("/api/v1/appointments/%s", uuid.New()),
		model.UpdateAppointmentRequest{SessionNotes: &notes})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAppointmentsByDay(t *testing.T) {
	engine := newTestRouter(t)

	bookSlot(t, engine, monday.Add(9*time.Hour))
	bookSlot(t, engine, monday.Add(10*time.Hour))
	bookSlot(t, engine, monday.AddDate(0, 0, 7).Add(9*time.Hour))

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/appointments?date=2025-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var appointments []*model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &appointments))
	assert.Len(t, appointments, 2)
}
