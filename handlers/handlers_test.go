package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/middleware"
	"curabot/models"
	"curabot/services/booking"
	"curabot/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponder struct{ calls int }

func (e *echoResponder) Respond(_ context.Context, userID, message string) models.ChatReply {
	e.calls++
	return models.ChatReply{Response: userID + ":" + message}
}

func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatbotHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := &echoResponder{}
	h := &ChatbotHandler{Service: responder}
	r := gin.New()
	r.POST("/api/ai/chatbot", h.RespondHandler)

	w := do(r, http.MethodPost, "/api/ai/chatbot", `{"message":"hi"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User ID is required")
	assert.Equal(t, 0, responder.calls)

	w = do(r, http.MethodPost, "/api/ai/chatbot", `{"userId":"u1"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"u1:"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/ai/chatbot", `{"userId":"u1","message":"headache"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"u1:headache"}`, w.Body.String())
}

func newBookingRouter(t *testing.T) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{ID: "doc-1", UserID: "user-doc", Name: "Alice Smith"}))

	svc := &booking.DefaultBookingService{
		Doctors:      store.Doctors(),
		Schedules:    store.Schedules(),
		Appointments: store.Appointments(),
		Users:        store.Users(),
	}
	sched := &ScheduleHandler{Service: svc}
	appts := &AppointmentHandler{Service: svc}

	r := gin.New()
	authed := r.Group("", middleware.JWTAuthMiddleware())
	authed.POST("/schedule", middleware.Authorize(models.RoleDoctor), sched.SetAvailabilityHandler)
	authed.POST("/book", middleware.Authorize(models.RolePatient), appts.BookHandler)
	authed.PATCH("/cancel/:id", appts.CancelHandler)
	authed.GET("/my", appts.ListMineHandler)
	r.GET("/schedule/:doctorId", sched.GetAvailabilityHandler)
	return r, store
}

func token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(subject, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestBookingFlowOverHTTP(t *testing.T) {
	r, _ := newBookingRouter(t)
	doctorTok := token(t, "user-doc", models.RoleDoctor)
	patientTok := token(t, "patient-1", models.RolePatient)
	otherTok := token(t, "patient-2", models.RolePatient)

	w := do(r, http.MethodPost, "/schedule", `{"date":"2024-06-01","startTime":"09:00","endTime":"10:00","interval":30}`, doctorTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/schedule/unknown", "", "").Code)

	book := `{"doctorId":"doc-1","date":"2024-06-01","time":"09:00"}`
	w = do(r, http.MethodPost, "/book", book, patientTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Appointment models.Appointment `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/book", book, otherTok).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/book", book, doctorTok).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/book", `{"doctorId":"doc-1","date":"soon","time":"09:00"}`, patientTok).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/book", `{"doctorId":"doc-1","date":"2024-06-02","time":"09:00"}`, patientTok).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/book", `{"doctorId":"nobody","date":"2024-06-01","time":"09:00"}`, patientTok).Code)

	cancelPath := fmt.Sprintf("/cancel/%s", created.Appointment.ID)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPatch, cancelPath, "", otherTok).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPatch, cancelPath, "", patientTok).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/cancel/missing", "", patientTok).Code)

	w = do(r, http.MethodGet, "/my", "", patientTok)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.AppointmentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusCancelled, mine[0].Status)
	require.NotNil(t, mine[0].Doctor)
	assert.Equal(t, "Alice Smith", mine[0].Doctor.Name)

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/book", book, otherTok).Code)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, errorStatus(fmt.Errorf("wrapped: %w", booking.ErrSlotUnavailable)))
	assert.Equal(t, http.StatusBadRequest, errorStatus(fmt.Errorf("%w: bad clock", booking.ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("mongo down")))
	assert.Equal(t, "Time slot is not available", capitalize(booking.ErrSlotUnavailable.Error()))
}
