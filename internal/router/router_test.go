package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	engine, _ := setupRouterWithStore(t)
	return engine
}

func setupRouterWithStore(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	reg := prometheus.NewRegistry()
	r := New(store, metrics.New("hospital", reg), RouterConfig{
		CORSConfig:       middleware.DefaultCORSConfig(),
		MaxBodyBytes:     1 << 20,
		Registry:         reg,
		ExposeMetrics:    true,
		MetricsNamespace: "hospital",
	})
	return r.Engine(), store
}

func makeRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type roomView struct {
	ID          int64  `json:"id"`
	RoomNumber  string `json:"room_number"`
	IsAvailable bool   `json:"is_available"`
}

func roomAvailable(t *testing.T, r *gin.Engine) bool {
	t.Helper()
	w := makeRequest(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []roomView
	decode(t, w, &rooms)
	require.Len(t, rooms, 1)
	return rooms[0].IsAvailable
}

func TestAdmissionLifecycle(t *testing.T) {
	r, store := setupRouterWithStore(t)
	ctx := context.Background()

	w := makeRequest(r, http.MethodPost, "/api/patients", `{"name":"Jane Doe","dob":"1990-01-01","gender":"Female"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Jane Doe"}`, w.Body.String())

	w = makeRequest(r, http.MethodPost, "/api/rooms", `{"room_number":"R1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"room_number":"R1"}`, w.Body.String())
	assert.True(t, roomAvailable(t, r))

	admit := `{"patient_id":1,"room_id":1,"admit_date":"2024-05-01T09:00:00"}`
	w = makeRequest(r, http.MethodPost, "/api/admissions", admit)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	assert.False(t, roomAvailable(t, r))

	w = makeRequest(r, http.MethodPost, "/api/admissions", admit)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"room not available"}`, w.Body.String())
	_, err := store.Admissions().Get(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	active, err := store.Admissions().Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, active.Active())

	w = makeRequest(r, http.MethodPost, "/api/admissions/1/discharge", "")
	require.Equal(t, http.StatusOK, w.Code)
	var discharged struct {
		ID            int64  `json:"id"`
		DischargeDate string `json:"discharge_date"`
	}
	decode(t, w, &discharged)
	assert.Equal(t, int64(1), discharged.ID)
	assert.NotEmpty(t, discharged.DischargeDate)
	assert.True(t, roomAvailable(t, r))

	w = makeRequest(r, http.MethodPost, "/api/admissions/1/discharge", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"already discharged"}`, w.Body.String())
	after, err := store.Admissions().Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, after.DischargeDate)
	assert.Equal(t, discharged.DischargeDate, after.DischargeDate.String())

	w = makeRequest(r, http.MethodPost, "/api/bills", `{"admission_id":1,"amount":250.75}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = makeRequest(r, http.MethodGet, "/api/patients/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Jane Doe","dob":"1990-01-01","gender":"Female","phone":null,"email":null,"address":null}`, w.Body.String())
}

func TestConcurrentAdmissions(t *testing.T) {
	r, store := setupRouterWithStore(t)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/rooms", `{"room_number":"ICU-1","type":"ICU"}`).Code)
	for i := 0; i < 10; i++ {
		body := fmt.Sprintf(`{"name":"Patient %d"}`, i)
		require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/patients", body).Code)
	}

	codes := make([]int, 10)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"patient_id":%d,"room_id":1,"admit_date":"2024-05-01T09:00:00Z"}`, i+1)
			codes[i] = makeRequest(r, http.MethodPost, "/api/admissions", body).Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, code)
		}
	}
	assert.Equal(t, 1, created)
	assert.False(t, roomAvailable(t, r))

	admission, err := store.Admissions().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admission.RoomID)
	_, err = store.Admissions().Get(context.Background(), 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppointmentFlow(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/departments", `{"name":"Cardiology","location":"Block A"}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/doctors", `{"name":"Dr. Who","department_id":1}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/patients", `{"name":"Jane Doe"}`).Code)

	w := makeRequest(r, http.MethodPost, "/api/appointments", `{"patient_id":1,"doctor_id":1,"appt_datetime":"2024-05-01 10:00","reason":"checkup"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = makeRequest(r, http.MethodPatch, "/api/appointments/1", `{"status":"Completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"status":"Completed"}`, w.Body.String())

	w = makeRequest(r, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"patient":{"id":1,"name":"Jane Doe"},"doctor":{"id":1,"name":"Dr. Who"},"appt_datetime":"2024-05-01T10:00:00","reason":"checkup","status":"Completed"}]`, w.Body.String())

	w = makeRequest(r, http.MethodPatch, "/api/appointments/9", `{"status":"Completed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"appointment not found"}`, w.Body.String())

	w = makeRequest(r, http.MethodPost, "/api/appointments", `{"patient_id":1,"appt_datetime":"2024-06-01T10:00:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = makeRequest(r, http.MethodGet, "/api/appointments", "")
	var appts []json.RawMessage
	decode(t, w, &appts)
	assert.Len(t, appts, 1)

	w = makeRequest(r, http.MethodPost, "/api/doctors", `{"name":"Dr. No","department_id":42}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"department not found"}`, w.Body.String())
}

func TestRequestErrors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"empty body", http.MethodPost, "/api/departments", "", http.StatusBadRequest, `{"error":"name required"}`},
		{"malformed json", http.MethodPost, "/api/patients", `{"name":`, http.StatusBadRequest, `{"error":"invalid request body"}`},
		{"bad dob", http.MethodPost, "/api/patients", `{"name":"Jane","dob":"01/02/1990"}`, http.StatusBadRequest, `{"error":"dob must be ISO date YYYY-MM-DD"}`},
		{"missing patient", http.MethodGet, "/api/patients/5", "", http.StatusNotFound, `{"error":"patient not found"}`},
		{"bill without admission", http.MethodPost, "/api/bills", `{"admission_id":3}`, http.StatusNotFound, `{"error":"admission not found"}`},
		{"unknown route", http.MethodGet, "/api/wards", "", http.StatusNotFound, `{"error":"not found"}`},
		{"empty logs", http.MethodGet, "/api/logs", "", http.StatusOK, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}

	// none of the rejected creates left a row behind
	for _, path := range []string{"/api/patients", "/api/departments"} {
		w := makeRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestNotFoundBeforePayloadChecks(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"patch missing appointment with bad status", http.MethodPatch, "/api/appointments/999", `{"status":"Bogus"}`, http.StatusNotFound, `{"error":"appointment not found"}`},
		{"patch missing appointment with malformed body", http.MethodPatch, "/api/appointments/999", `{"status":`, http.StatusNotFound, `{"error":"appointment not found"}`},
		{"bill for missing admission with bad status", http.MethodPost, "/api/bills", `{"admission_id":77,"status":"Bogus"}`, http.StatusNotFound, `{"error":"admission not found"}`},
		{"bill for missing admission with negative amount", http.MethodPost, "/api/bills", `{"admission_id":77,"amount":-3}`, http.StatusNotFound, `{"error":"admission not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestPayloadChecksOnExistingRows(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/patients", `{"name":"Jane Doe"}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/doctors", `{"name":"Dr. Who"}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/rooms", `{"room_number":"R1"}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/appointments", `{"patient_id":1,"doctor_id":1,"appt_datetime":"2024-05-01T10:00:00"}`).Code)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/admissions", `{"patient_id":1,"room_id":1,"admit_date":"2024-05-01T09:00:00"}`).Code)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantBody string
	}{
		{"bad status", http.MethodPatch, "/api/appointments/1", `{"status":"Bogus"}`, `{"error":"status must be one of: Scheduled, Completed, Cancelled, No-Show"}`},
		{"malformed body", http.MethodPatch, "/api/appointments/1", `{"status":`, `{"error":"invalid request body"}`},
		{"bad bill status", http.MethodPost, "/api/bills", `{"admission_id":1,"status":"Bogus"}`, `{"error":"status must be one of: Unpaid, Paid, Pending"}`},
		{"negative amount", http.MethodPost, "/api/bills", `{"admission_id":1,"amount":-3}`, `{"error":"amount must be greater than or equal to 0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}

	w := makeRequest(r, http.MethodGet, "/api/appointments", "")
	assert.Contains(t, w.Body.String(), `"status":"Scheduled"`)
}

func TestDuplicateRoomNumber(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, makeRequest(r, http.MethodPost, "/api/rooms", `{"room_number":"R1"}`).Code)

	w := makeRequest(r, http.MethodPost, "/api/rooms", `{"room_number":"R1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"room number already exists"}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t)

	w := makeRequest(r, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	makeRequest(r, http.MethodGet, "/api/rooms", "")
	w = makeRequest(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hospital_http_requests_total{method="GET",path="/api/rooms",status="200"} 1`)
}
