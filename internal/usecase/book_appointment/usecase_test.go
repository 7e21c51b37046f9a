package book_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	appointmentRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/appointment"
	serviceRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/service"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	existing    []*domain.Appointment
	createErr   error
	created     *domain.Appointment
	getByDateCt int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *appt
	out.ID = "appt-1"
	out.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	f.getByDateCt++
	return f.existing, nil
}

type fakeServiceRepo struct {
	services map[string]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

// fakeTxManager выполняет замыкание без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

var (
	testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		ServiceID:       "svc-1",
		Date:            testDate,
		StartTime:       "10:00",
		ClientName:      "Ana García",
		ClientEmail:     "ana@example.com",
		Modality:        domain.ModalityOnline,
		ConsentAccepted: true,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, durationMinutes int) (*UseCase, *fakeTxManager) {
	services := &fakeServiceRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Terapia individual", DurationMinutes: durationMinutes, IsActive: true},
	}}
	txMgr := &fakeTxManager{}
	uc := NewUseCase(repo, services, txMgr, nil, nil, &fixedTimeProvider{now: testNow}, nopLogger{})
	return uc, txMgr
}

// Тесты

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc, txMgr := newTestUseCase(repo, 60)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "appt-1", resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, timeutil.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, timeutil.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, "Terapia individual", resp.ServiceName)

	// Проверка пересечения и вставка внутри одной транзакции
	assert.Equal(t, 1, txMgr.calls)
	assert.Equal(t, 1, repo.getByDateCt)
	require.NotNil(t, repo.created)
	assert.True(t, repo.created.ConsentAccepted)
}

func TestExecute_ConsentRequired(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc, txMgr := newTestUseCase(repo, 60)

	req := validRequest()
	req.ConsentAccepted = false

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrConsentRequired)

	// Без согласия обращений к хранилищу не происходит
	assert.Equal(t, 0, txMgr.calls)
	assert.Equal(t, 0, repo.getByDateCt)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 60)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 60)

	req := validRequest()
	req.ServiceID = "missing"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 0)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDuration)

	uc, _ = newTestUseCase(&fakeAppointmentRepo{}, domain.MaxServiceDurationMinutes+1)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_SlotTakenByOverlap(t *testing.T) {
	repo := &fakeAppointmentRepo{existing: []*domain.Appointment{{
		ID:        "other",
		StartTime: "09:30",
		EndTime:   "10:30",
		Status:    domain.StatusConfirmed,
	}}}
	uc, _ := newTestUseCase(repo, 60)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_AdjacentAppointmentAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{existing: []*domain.Appointment{{
		ID:        "other",
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusConfirmed,
	}}}
	uc, _ := newTestUseCase(repo, 60)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, timeutil.TimeString("10:00"), resp.StartTime)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{existing: []*domain.Appointment{{
		ID:        "other",
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusCancelled,
	}}}
	uc, _ := newTestUseCase(repo, 60)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_ExclusionConstraintMapsToSlotTaken(t *testing.T) {
	// Гонка, которую проморгала проверка в транзакции, упирается
	// в exclusion constraint БД
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc, _ := newTestUseCase(repo, 60)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_MidnightWrapRejected(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 60)

	req := validRequest()
	req.StartTime = "23:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EndAtMidnightRejected(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 60)

	req := validRequest()
	req.StartTime = "23:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, 60)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing client name", func(r *Request) { r.ClientName = " " }},
		{"missing email", func(r *Request) { r.ClientEmail = "" }},
		{"email without at", func(r *Request) { r.ClientEmail = "ana.example.com" }},
		{"unknown modality", func(r *Request) { r.Modality = "telepatía" }},
		{"missing start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"missing service", func(r *Request) { r.ServiceID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
