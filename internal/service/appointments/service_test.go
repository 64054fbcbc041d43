package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeApptRepo struct {
	appointments map[int64]*domain.Appointment

	updatedStatus *domain.AppointmentStatus
	cancelReason  *string
}

func (f *fakeApptRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok || appt.BusinessID != businessID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.BusinessID != filter.BusinessID {
			continue
		}
		if filter.StaffID != nil && (appt.StaffID == nil || *appt.StaffID != *filter.StaffID) {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, businessID, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok || appt.BusinessID != businessID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.updatedStatus = &status
	appt.Status = status
	return nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, businessID, id int64, reason string) error {
	appt, ok := f.appointments[id]
	if !ok || appt.BusinessID != businessID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelReason = &reason
	appt.Status = domain.StatusCancelled
	return nil
}

type fakeCatalog struct {
	business *domain.Business
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*domain.Business, error) {
	if f.business == nil || f.business.ID != businessID {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var apptStart = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func newTestService(appointments map[int64]*domain.Appointment, now time.Time) (*Service, *fakeApptRepo) {
	repo := &fakeApptRepo{appointments: appointments}
	catalog := &fakeCatalog{business: &domain.Business{
		ID:                      1,
		IsActive:                true,
		CancellationWindowHours: 24,
	}}

	svc := NewService(repo, catalog, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc, repo
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         5,
		BusinessID: 1,
		ServiceID:  10,
		StaffID:    ptr.Ptr(int64(2)),
		CustomerID: 100,
		StartTime:  apptStart,
		EndTime:    apptStart.Add(30 * time.Minute),
		Status:     status,
	}
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	got, err := svc.GetByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)

	_, err = svc.GetByID(context.Background(), 1, 6)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_CrossTenantLooksLikeNotFound(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	_, err := svc.GetByID(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestConfirm(t *testing.T) {
	svc, repo := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	got, err := svc.Confirm(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
}

func TestConfirm_InvalidTransition(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusCompleted)}, apptStart)

	_, err := svc.Confirm(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	// За 2 дня до начала, окно 24 часа
	now := apptStart.Add(-48 * time.Hour)
	svc, repo := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusConfirmed)}, now)

	err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		BusinessID:         1,
		CancellationReason: "customer request",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelReason)
	assert.Equal(t, "customer request", *repo.cancelReason)
}

func TestCancel_WindowPassed(t *testing.T) {
	// За 23 часа до начала при окне 24 часа
	now := apptStart.Add(-23 * time.Hour)
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusConfirmed)}, now)

	err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{BusinessID: 1})
	assert.ErrorIs(t, err, ErrCancellationWindowPassed)
}

func TestCancel_NotCancellableStatus(t *testing.T) {
	now := apptStart.Add(-48 * time.Hour)
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusCompleted)}, now)

	err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{BusinessID: 1})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_CompletedAndNoShow(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusConfirmed)}, apptStart)

	got, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{BusinessID: 1, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	svc, _ = newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusConfirmed)}, apptStart)

	got, err = svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{BusinessID: 1, Status: "no_show"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), got.Status)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	// pending -> completed запрещен, сначала подтверждение
	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{BusinessID: 1, Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_CancellationRejected(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{BusinessID: 1, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{5: testAppointment(domain.StatusPending)}, apptStart)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{BusinessID: 1, Status: "rescheduled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_FilterByStatus(t *testing.T) {
	confirmed := testAppointment(domain.StatusConfirmed)
	cancelled := testAppointment(domain.StatusCancelled)
	cancelled.ID = 6

	svc, _ := newTestService(map[int64]*domain.Appointment{5: confirmed, 6: cancelled}, apptStart)

	got, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		BusinessID: 1,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, got.Appointments, 1)
	assert.Equal(t, int64(5), got.Appointments[0].ID)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{}, apptStart)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		BusinessID: 1,
		Status:     ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidPeriod(t *testing.T) {
	svc, _ := newTestService(map[int64]*domain.Appointment{}, apptStart)

	start := apptStart
	end := apptStart.Add(-24 * time.Hour)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		BusinessID: 1,
		StartDate:  &start,
		EndDate:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
