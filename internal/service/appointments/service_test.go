package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	appointmentRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/appointment"
	patientRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/patient"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/integrations/mailer"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/ptr"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	byID          map[string]*domain.Appointment
	listed        []*domain.Appointment
	updatedStatus *domain.AppointmentStatus
	setPatientID  **string
	deleted       []string
	setPatientErr error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ domain.AppointmentFilter) ([]*domain.Appointment, error) {
	return f.listed, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus, adminNotes *string) error {
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	if adminNotes != nil {
		appt.AdminNotes = adminNotes
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepo) SetPatient(_ context.Context, id string, patientID *string) error {
	if f.setPatientErr != nil {
		return f.setPatientErr
	}
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.PatientID = patientID
	f.setPatientID = &patientID
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePatientRepo struct {
	byID    map[string]*domain.Patient
	created []*domain.Patient
}

func (f *fakePatientRepo) Create(_ context.Context, draft domain.PatientDraft) (*domain.Patient, error) {
	p := &domain.Patient{
		ID:       "pat-new",
		FullName: draft.FullName,
		IsActive: true,
	}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id string) (*domain.Patient, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, patientRepo.ErrPatientNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) List(_ context.Context) ([]*domain.Patient, error) {
	out := make([]*domain.Patient, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

type fakeServiceRepo struct{}

func (fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	return &domain.Service{ID: id, Name: "Terapia individual", DurationMinutes: 60}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotCache struct {
	invalidated []time.Time
}

func (f *fakeSlotCache) InvalidateDate(_ context.Context, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type sentMail struct {
	templateID string
	recipient  string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendWithGracefulDegradation(_ context.Context, templateID, recipient string, _ map[string]interface{}) error {
	f.sent = append(f.sent, sentMail{templateID: templateID, recipient: recipient})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func pendingAppointment(id string) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ServiceID:       "svc-1",
		AppointmentDate: testDate,
		StartTime:       "10:00",
		EndTime:         "11:00",
		ClientName:      "Ana García",
		ClientEmail:     "ana@example.com",
		Modality:        domain.ModalityOnline,
		Status:          domain.StatusPending,
		ConsentAccepted: true,
	}
}

func newTestService(repo *fakeAppointmentRepo, patients *fakePatientRepo) (*Service, *fakeSlotCache, *fakeMailer) {
	cache := &fakeSlotCache{}
	mail := &fakeMailer{}
	svc := NewService(repo, patients, fakeServiceRepo{}, fakeTxManager{}, cache, mail, nopLogger{})
	return svc, cache, mail
}

// Тесты

func TestUpdateStatus_ConfirmSendsMailAndInvalidatesCache(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, cache, mail := newTestService(repo, &fakePatientRepo{})

	resp, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, mailer.TemplateAppointmentConfirmed, mail.sent[0].templateID)
	assert.Equal(t, "ana@example.com", mail.sent[0].recipient)
	require.Len(t, cache.invalidated, 1)
	assert.Equal(t, testDate, cache.invalidated[0])
}

func TestUpdateStatus_CancelSendsCancellationMail(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, _, mail := newTestService(repo, &fakePatientRepo{})

	resp, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, mailer.TemplateAppointmentCancelled, mail.sent[0].templateID)
}

func TestUpdateStatus_CompletedSendsNoMail(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, _, mail := newTestService(repo, &fakePatientRepo{})

	_, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	// Переходы не ограничены, включая выход из cancelled и completed
	transitions := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{domain.StatusCancelled, "pending"},
		{domain.StatusCompleted, "cancelled"},
		{domain.StatusConfirmed, "pending"},
		{domain.StatusCompleted, "pending"},
	}

	for _, tr := range transitions {
		appt := pendingAppointment("a1")
		appt.Status = tr.from
		repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": appt}}
		svc, _, _ := newTestService(repo, &fakePatientRepo{})

		resp, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: tr.to})
		require.NoError(t, err, "transition %s -> %s", tr.from, tr.to)
		assert.Equal(t, tr.to, resp.Status)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, _, _ := newTestService(repo, &fakePatientRepo{})

	_, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeAppointmentRepo{byID: map[string]*domain.Appointment{}}, &fakePatientRepo{})

	_, err := svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_SameStatusSendsNoMail(t *testing.T) {
	appt := pendingAppointment("a1")
	appt.Status = domain.StatusConfirmed
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": appt}}
	svc, _, mail := newTestService(repo, &fakePatientRepo{})

	_, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestAssignPatient_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	patients := &fakePatientRepo{byID: map[string]*domain.Patient{
		"pat-1": {ID: "pat-1", FullName: "Ana García", IsActive: true},
	}}
	svc, _, _ := newTestService(repo, patients)

	resp, err := svc.AssignPatient(context.Background(), "a1", &models.AssignPatientRequest{PatientID: "pat-1"})
	require.NoError(t, err)
	require.NotNil(t, resp.PatientID)
	assert.Equal(t, "pat-1", *resp.PatientID)
}

func TestAssignPatient_PatientNotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, _, _ := newTestService(repo, &fakePatientRepo{byID: map[string]*domain.Patient{}})

	_, err := svc.AssignPatient(context.Background(), "a1", &models.AssignPatientRequest{PatientID: "missing"})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestUnassignPatient(t *testing.T) {
	appt := pendingAppointment("a1")
	patientID := "pat-1"
	appt.PatientID = &patientID
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": appt}}
	svc, _, _ := newTestService(repo, &fakePatientRepo{})

	resp, err := svc.UnassignPatient(context.Background(), "a1")
	require.NoError(t, err)
	assert.Nil(t, resp.PatientID)
}

func TestCreatePatientAndAssign_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	patients := &fakePatientRepo{}
	svc, _, _ := newTestService(repo, patients)

	resp, err := svc.CreatePatientAndAssign(context.Background(), "a1", &models.CreatePatientRequest{
		FullName: "Ana García",
	})
	require.NoError(t, err)

	require.Len(t, patients.created, 1)
	require.NotNil(t, resp.PatientID)
	assert.Equal(t, "pat-new", *resp.PatientID)
}

func TestCreatePatientAndAssign_AppointmentNotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{}}
	svc, _, _ := newTestService(repo, &fakePatientRepo{})

	_, err := svc.CreatePatientAndAssign(context.Background(), "missing", &models.CreatePatientRequest{
		FullName: "Ana García",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCreatePatientAndAssign_EmptyName(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, _, _ := newTestService(repo, &fakePatientRepo{})

	_, err := svc.CreatePatientAndAssign(context.Background(), "a1", &models.CreatePatientRequest{FullName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc, _, _ := newTestService(&fakeAppointmentRepo{}, &fakePatientRepo{})

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": pendingAppointment("a1")}}
	svc, cache, _ := newTestService(repo, &fakePatientRepo{})

	err := svc.Delete(context.Background(), "a1")
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, repo.deleted)
	require.Len(t, cache.invalidated, 1)
	assert.Equal(t, testDate, cache.invalidated[0])
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeAppointmentRepo{byID: map[string]*domain.Appointment{}}, &fakePatientRepo{})

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
