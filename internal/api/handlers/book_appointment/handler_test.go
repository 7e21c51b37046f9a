package book_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	bookAppointment "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/usecase/book_appointment"
)

type fakeUseCase struct {
	resp *bookAppointment.Response
	err  error
	got  *bookAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"serviceId": "svc-1",
	"date": "2026-09-07",
	"startTime": "10:00",
	"clientName": "Ana García",
	"clientEmail": "ana@example.com",
	"modality": "online",
	"consentAccepted": true
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &bookAppointment.Response{
		ID:              "appt-1",
		ServiceID:       "svc-1",
		ServiceName:     "Terapia individual",
		AppointmentDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		ClientName:      "Ana García",
		ClientEmail:     "ana@example.com",
		Modality:        domain.ModalityOnline,
		Status:          domain.StatusPending,
		CreatedAt:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"appt-1"`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	require.NotNil(t, uc.got)
	assert.Equal(t, "svc-1", uc.got.ServiceID)
	assert.True(t, uc.got.ConsentAccepted)
}

func TestHandle_ErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken", err: bookAppointment.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "consent required", err: bookAppointment.ErrConsentRequired, wantStatus: http.StatusUnprocessableEntity},
		{name: "service not found", err: bookAppointment.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "past date", err: bookAppointment.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: bookAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: bookAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	body := strings.Replace(validBody, "2026-09-07", "07/09/2026", 1)
	rec := doRequest(t, &fakeUseCase{}, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
