package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	serviceRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/service"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Фейки зависимостей

type fakeAvailabilityRepo struct {
	windows       []*domain.WeeklyWindow
	dateBlocked   bool
	blockedRanges []domain.TimeRange
}

func (f *fakeAvailabilityRepo) GetActiveWindows(_ context.Context, _ int) ([]*domain.WeeklyWindow, error) {
	return f.windows, nil
}

func (f *fakeAvailabilityRepo) IsDateBlocked(_ context.Context, _ time.Time) (bool, error) {
	return f.dateBlocked, nil
}

func (f *fakeAvailabilityRepo) GetBlockedRanges(_ context.Context, _ time.Time) ([]domain.TimeRange, error) {
	return f.blockedRanges, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.appointments, nil
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
	// Понедельник
	testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func window(start, end string) *domain.WeeklyWindow {
	return &domain.WeeklyWindow{
		ID:        "w-" + start,
		DayOfWeek: int(testDate.Weekday()),
		StartTime: timeutil.TimeString(start),
		EndTime:   timeutil.TimeString(end),
		IsActive:  true,
	}
}

func booked(start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        "appt-" + start,
		StartTime: timeutil.TimeString(start),
		EndTime:   timeutil.TimeString(end),
		Status:    status,
	}
}

func newTestUseCase(
	availability *fakeAvailabilityRepo,
	appointments *fakeAppointmentRepo,
	durationMinutes int,
) *UseCase {
	services := &fakeServiceRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Terapia individual", DurationMinutes: durationMinutes, IsActive: true},
	}}
	uc := NewUseCase(availability, appointments, services, nil, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.String())
	}
	return starts
}

// Тесты

func TestExecute_OpenDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, slotStarts(resp.Slots))
	assert.Equal(t, 60, resp.DurationMinutes)

	// Конец последнего слота ровно на границе окна
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "13:00", last.End.String())
}

func TestExecute_BookedAppointmentExcludesOverlaps(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			booked("11:00", "12:00", domain.StatusConfirmed),
		}},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	// 10:30 и 11:30 пересекаются с записью, 10:00 и 12:00 граничат и остаются
	assert.Equal(t, []string{"10:00", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			booked("11:00", "12:00", domain.StatusCancelled),
		}},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_BlockedRangeExcludesOverlaps(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{
			windows: []*domain.WeeklyWindow{window("10:00", "13:00")},
			blockedRanges: []domain.TimeRange{
				{Start: "12:00", End: "13:00"},
			},
		},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			booked("11:00", "12:00", domain.StatusPending),
		}},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, slotStarts(resp.Slots))
}

func TestExecute_FullDayBlock(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{
			windows:     []*domain.WeeklyWindow{window("10:00", "13:00")},
			dateBlocked: true,
		},
		&fakeAppointmentRepo{},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoWindowsForWeekday(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, 60)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{},
		60,
	)

	past := testNow.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: past})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayIsNotPast(t *testing.T) {
	windows := []*domain.WeeklyWindow{{
		DayOfWeek: int(testNow.Weekday()),
		StartTime: "10:00",
		EndTime:   "13:00",
		IsActive:  true,
	}}
	uc := newTestUseCase(&fakeAvailabilityRepo{windows: windows}, &fakeAppointmentRepo{}, 60)

	today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: today})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
}

func TestExecute_LongerDurationFitsLessSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{},
		90,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	// Кандидат 12:00-13:30 выходит за окно и отбрасывается
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slotStarts(resp.Slots))
	assert.Equal(t, "13:00", resp.Slots[len(resp.Slots)-1].End.String())
}

func TestExecute_MultipleWindowsSorted(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{
			window("16:00", "18:00"),
			window("10:00", "12:00"),
		}},
		&fakeAppointmentRepo{},
		60,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "16:00", "16:30", "17:00"}, slotStarts(resp.Slots))
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, 60)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "missing", Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{},
		0,
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_DurationAboveMaximum(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{},
		domain.MaxServiceDurationMinutes+1,
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_MissingInput(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, 60)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "", Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ReadIsIdempotent(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{windows: []*domain.WeeklyWindow{window("10:00", "13:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			booked("11:00", "12:00", domain.StatusPending),
		}},
		60,
	)

	req := &Request{ServiceID: "svc-1", Date: testDate}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestGenerateSlots_GridAlignment(t *testing.T) {
	// Окно с началом не на границе часа: сетка привязана к началу окна
	slots, err := generateSlots(
		[]*domain.WeeklyWindow{window("10:15", "12:15")},
		60, nil, nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:15", "10:45", "11:15"}, slotStarts(slots))
}
