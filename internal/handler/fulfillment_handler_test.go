package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusops/events-core/internal/dto"
	"github.com/campusops/events-core/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueReminders_DefaultWindow(t *testing.T) {
	svc := &mockFulfillmentService{
		dueRemindersFn: func(ctx context.Context, window time.Duration) ([]models.Registration, error) {
			assert.Equal(t, 24*time.Hour, window)
			return []models.Registration{{ID: testRegID}}, nil
		},
	}
	h := NewFulfillmentHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/fulfillment/reminders", "", officeActor)

	require.NoError(t, h.DueReminders(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
}

func TestDueReminders_CustomWindow(t *testing.T) {
	svc := &mockFulfillmentService{
		dueRemindersFn: func(ctx context.Context, window time.Duration) ([]models.Registration, error) {
			assert.Equal(t, 48*time.Hour, window)
			return nil, nil
		},
	}
	h := NewFulfillmentHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/fulfillment/reminders?window=48h", "", officeActor)

	require.NoError(t, h.DueReminders(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDueReminders_BadWindow(t *testing.T) {
	h := NewFulfillmentHandler(&mockFulfillmentService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/fulfillment/reminders?window=soon", "", officeActor)

	err := h.DueReminders(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCertificateEligibleEndpoint(t *testing.T) {
	svc := &mockFulfillmentService{
		certEligibleFn: func(ctx context.Context, eventID string) ([]models.Registration, error) {
			assert.Equal(t, testEventID, eventID)
			return []models.Registration{{ID: testRegID, Attended: true}}, nil
		},
	}
	h := NewFulfillmentHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/events/"+testEventID+"/fulfillment/certificates", "", officeActor)
	c.SetParamNames("id")
	c.SetParamValues(testEventID)

	require.NoError(t, h.CertificateEligible(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.True(t, resp[0].Attended)
}

// Delivery flags belong to workers and the Event Office. A student token
// must not suppress a reminder or certificate by marking it sent.
func TestFulfillmentRoutes_RejectStudentTokens(t *testing.T) {
	calls := 0
	svc := &mockFulfillmentService{
		dueRemindersFn: func(ctx context.Context, window time.Duration) ([]models.Registration, error) {
			calls++
			return nil, nil
		},
		markReminderFn: func(ctx context.Context, registrationID string) error {
			calls++
			return nil
		},
		markCertSentFn: func(ctx context.Context, registrationID string) error {
			calls++
			return nil
		},
	}

	e := echo.New()
	NewFulfillmentHandler(svc).RegisterRoutes(e.Group("/api/v1", withActor(studentActor)))

	targets := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/fulfillment/reminders"},
		{http.MethodGet, "/api/v1/events/" + testEventID + "/fulfillment/certificates"},
		{http.MethodPost, "/api/v1/registrations/" + testRegID + "/reminder-sent"},
		{http.MethodPost, "/api/v1/registrations/" + testRegID + "/certificate-sent"},
	}
	for _, target := range targets {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", target.method, target.path)
	}
	assert.Zero(t, calls)
}

func TestFulfillmentRoutes_AcceptServiceAndOfficeTokens(t *testing.T) {
	svc := &mockFulfillmentService{
		markReminderFn: func(ctx context.Context, registrationID string) error {
			return nil
		},
	}

	for _, actor := range []models.Actor{models.SystemActor, officeActor} {
		e := echo.New()
		NewFulfillmentHandler(svc).RegisterRoutes(e.Group("/api/v1", withActor(actor)))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/"+testRegID+"/reminder-sent", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, "%s token", actor.Role)
	}
}

func TestMarkSentEndpoints(t *testing.T) {
	reminders, certs := 0, 0
	svc := &mockFulfillmentService{
		markReminderFn: func(ctx context.Context, registrationID string) error {
			reminders++
			return nil
		},
		markCertSentFn: func(ctx context.Context, registrationID string) error {
			certs++
			return nil
		},
	}
	h := NewFulfillmentHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/registrations/"+testRegID+"/reminder-sent", "", officeActor)
	c.SetParamNames("id")
	c.SetParamValues(testRegID)
	require.NoError(t, h.MarkReminderSent(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newTestContext(t, http.MethodPost, "/api/v1/registrations/"+testRegID+"/certificate-sent", "", officeActor)
	c.SetParamNames("id")
	c.SetParamValues(testRegID)
	require.NoError(t, h.MarkCertificateSent(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, 1, reminders)
	assert.Equal(t, 1, certs)
}
