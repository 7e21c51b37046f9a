package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	availabilityRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/availability"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule/models"
)

// Фейки зависимостей

type fakeAvailabilityRepo struct {
	activeWindows []*domain.WeeklyWindow
	windows       []*domain.WeeklyWindow
	blockedDates  []*domain.BlockedDate
	blockedSlots  []*domain.BlockedSlot

	createdWindows      []*domain.WeeklyWindow
	createdBlockedDates []*domain.BlockedDate
	createdBlockedSlots []*domain.BlockedSlot
	knownIDs            map[string]bool
}

func (f *fakeAvailabilityRepo) GetActiveWindows(_ context.Context, _ int) ([]*domain.WeeklyWindow, error) {
	return f.activeWindows, nil
}

func (f *fakeAvailabilityRepo) ListWindows(_ context.Context) ([]*domain.WeeklyWindow, error) {
	return f.windows, nil
}

func (f *fakeAvailabilityRepo) CreateWindow(_ context.Context, w *domain.WeeklyWindow) (*domain.WeeklyWindow, error) {
	out := *w
	out.ID = "w-new"
	f.createdWindows = append(f.createdWindows, &out)
	return &out, nil
}

func (f *fakeAvailabilityRepo) DeleteWindow(_ context.Context, id string) error {
	if !f.knownIDs[id] {
		return availabilityRepo.ErrWindowNotFound
	}
	return nil
}

func (f *fakeAvailabilityRepo) ListBlockedDates(_ context.Context) ([]*domain.BlockedDate, error) {
	return f.blockedDates, nil
}

func (f *fakeAvailabilityRepo) CreateBlockedDate(_ context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	out := *b
	out.ID = "bd-new"
	f.createdBlockedDates = append(f.createdBlockedDates, &out)
	return &out, nil
}

func (f *fakeAvailabilityRepo) DeleteBlockedDate(_ context.Context, id string) error {
	if !f.knownIDs[id] {
		return availabilityRepo.ErrBlockNotFound
	}
	return nil
}

func (f *fakeAvailabilityRepo) ListBlockedSlots(_ context.Context) ([]*domain.BlockedSlot, error) {
	return f.blockedSlots, nil
}

func (f *fakeAvailabilityRepo) CreateBlockedSlot(_ context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	out := *b
	out.ID = "bs-new"
	f.createdBlockedSlots = append(f.createdBlockedSlots, &out)
	return &out, nil
}

func (f *fakeAvailabilityRepo) DeleteBlockedSlot(_ context.Context, id string) error {
	if !f.knownIDs[id] {
		return availabilityRepo.ErrBlockNotFound
	}
	return nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeSlotCache struct {
	invalidatedDates []time.Time
	invalidatedAll   int
}

func (f *fakeSlotCache) InvalidateDate(_ context.Context, date time.Time) {
	f.invalidatedDates = append(f.invalidatedDates, date)
}

func (f *fakeSlotCache) InvalidateAll(_ context.Context) {
	f.invalidatedAll++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestService(repo *fakeAvailabilityRepo) (*Service, *fakeSlotCache) {
	cache := &fakeSlotCache{}
	svc := NewService(repo, &fakeAppointmentRepo{}, cache, nopLogger{})
	return svc, cache
}

// Тесты

func TestCreateWindow_Success(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc, cache := newTestService(repo)

	resp, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 1,
		StartTime: "10:00",
		EndTime:   "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "w-new", resp.ID)
	assert.True(t, resp.IsActive)
	require.Len(t, repo.createdWindows, 1)
	assert.Equal(t, 1, cache.invalidatedAll)
}

func TestCreateWindow_OverlapRejected(t *testing.T) {
	repo := &fakeAvailabilityRepo{activeWindows: []*domain.WeeklyWindow{{
		ID:        "w-1",
		DayOfWeek: 1,
		StartTime: "10:00",
		EndTime:   "14:00",
		IsActive:  true,
	}}}
	svc, _ := newTestService(repo)

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 1,
		StartTime: "13:00",
		EndTime:   "17:00",
	})
	assert.ErrorIs(t, err, ErrWindowOverlap)
	assert.Empty(t, repo.createdWindows)
}

func TestCreateWindow_TouchingWindowAllowed(t *testing.T) {
	repo := &fakeAvailabilityRepo{activeWindows: []*domain.WeeklyWindow{{
		ID:        "w-1",
		DayOfWeek: 1,
		StartTime: "10:00",
		EndTime:   "14:00",
		IsActive:  true,
	}}}
	svc, _ := newTestService(repo)

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 1,
		StartTime: "14:00",
		EndTime:   "18:00",
	})
	require.NoError(t, err)
	assert.Len(t, repo.createdWindows, 1)
}

func TestCreateWindow_InvalidRange(t *testing.T) {
	svc, _ := newTestService(&fakeAvailabilityRepo{})

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 1,
		StartTime: "14:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 1,
		StartTime: "10:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateWindow_InvalidDayOfWeek(t *testing.T) {
	svc, _ := newTestService(&fakeAvailabilityRepo{})

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		DayOfWeek: 7,
		StartTime: "10:00",
		EndTime:   "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteWindow_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeAvailabilityRepo{knownIDs: map[string]bool{}})

	err := svc.DeleteWindow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestBlockDate_Success(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc, cache := newTestService(repo)

	resp, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "bd-new", resp.ID)
	assert.Equal(t, "2026-09-07", resp.Date)
	require.Len(t, cache.invalidatedDates, 1)
	assert.Equal(t, testDate, cache.invalidatedDates[0])
}

func TestBlockSlot_Success(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc, cache := newTestService(repo)

	resp, err := svc.BlockSlot(context.Background(), &models.BlockSlotRequest{
		Date:      testDate,
		StartTime: "12:00",
		EndTime:   "13:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "bs-new", resp.ID)
	assert.Equal(t, "12:00", resp.StartTime)
	assert.Equal(t, "13:30", resp.EndTime)
	require.Len(t, repo.createdBlockedSlots, 1)
	created := repo.createdBlockedSlots[0]
	assert.Equal(t, time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC), created.StartAt)
	assert.Equal(t, time.Date(2026, 9, 7, 13, 30, 0, 0, time.UTC), created.EndAt)
	assert.Len(t, cache.invalidatedDates, 1)
}

func TestBlockSlot_OverExistingAppointmentStillSucceeds(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	cache := &fakeSlotCache{}
	svc := NewService(repo, &fakeAppointmentRepo{appointments: []*domain.Appointment{{
		ID:        "a1",
		StartTime: "12:00",
		EndTime:   "13:00",
		Status:    domain.StatusConfirmed,
	}}}, cache, nopLogger{})

	// Запись остаётся в силе, блокировка лишь закрывает будущую выдачу
	_, err := svc.BlockSlot(context.Background(), &models.BlockSlotRequest{
		Date:      testDate,
		StartTime: "12:00",
		EndTime:   "14:00",
	})
	require.NoError(t, err)
	assert.Len(t, repo.createdBlockedSlots, 1)
}

func TestBlockSlot_InvalidRange(t *testing.T) {
	svc, _ := newTestService(&fakeAvailabilityRepo{})

	_, err := svc.BlockSlot(context.Background(), &models.BlockSlotRequest{
		Date:      testDate,
		StartTime: "14:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUnblock_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeAvailabilityRepo{knownIDs: map[string]bool{}})

	assert.ErrorIs(t, svc.UnblockDate(context.Background(), "missing"), ErrBlockNotFound)
	assert.ErrorIs(t, svc.UnblockSlot(context.Background(), "missing"), ErrBlockNotFound)
}

func TestGetSchedule(t *testing.T) {
	reason := "vacaciones"
	repo := &fakeAvailabilityRepo{
		windows: []*domain.WeeklyWindow{{
			ID: "w-1", DayOfWeek: 1, StartTime: "10:00", EndTime: "14:00", IsActive: true,
		}},
		blockedDates: []*domain.BlockedDate{{
			ID: "bd-1", Date: testDate, Reason: &reason,
		}},
		blockedSlots: []*domain.BlockedSlot{{
			ID:      "bs-1",
			StartAt: time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 9, 8, 13, 30, 0, 0, time.UTC),
		}},
	}
	svc, _ := newTestService(repo)

	resp, err := svc.GetSchedule(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "10:00", resp.Windows[0].StartTime)
	require.Len(t, resp.BlockedDates, 1)
	assert.Equal(t, "vacaciones", *resp.BlockedDates[0].Reason)
	require.Len(t, resp.BlockedSlots, 1)
	assert.Equal(t, "2026-09-08", resp.BlockedSlots[0].Date)
	assert.Equal(t, "12:00", resp.BlockedSlots[0].StartTime)
}
