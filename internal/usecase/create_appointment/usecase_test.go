package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Фейки зависимостей use case

type fakeCatalog struct {
	business  *domain.Business
	services  map[int64]*domain.Service
	staff     map[int64]*domain.Staff
	customers map[int64]*domain.Customer
	offers    map[int64]bool // staffID -> выполняет услугу
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*domain.Business, error) {
	if f.business == nil || f.business.ID != businessID {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _, staffID int64) (*domain.Staff, error) {
	staff, ok := f.staff[staffID]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return staff, nil
}

func (f *fakeCatalog) GetCustomer(_ context.Context, _, customerID int64) (*domain.Customer, error) {
	customer, ok := f.customers[customerID]
	if !ok {
		return nil, catalogRepo.ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeCatalog) StaffOffersService(_ context.Context, _, staffID, _ int64) (bool, error) {
	return f.offers[staffID], nil
}

func (f *fakeCatalog) GetStaffForService(_ context.Context, _, _ int64) ([]*domain.Staff, error) {
	// Детерминированный порядок по возрастанию ID
	result := make([]*domain.Staff, 0, len(f.staff))
	for id := int64(1); int(id) <= len(f.staff)+10; id++ {
		if staff, ok := f.staff[id]; ok && f.offers[id] && staff.IsActive {
			result = append(result, staff)
		}
	}
	return result, nil
}

type fakeResolver struct {
	free map[int64][]availability.Interval // staffID -> интервалы
}

func (f *fakeResolver) FreeIntervals(_ context.Context, _, staffID int64, _, _ time.Time, _ *time.Location) ([]availability.Interval, error) {
	return f.free[staffID], nil
}

// memStore - общее in-memory хранилище записей для репозитория и checker
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func (s *memStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.nextID++
	appt.ID = s.nextID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	stored := *appt
	s.appointments = append(s.appointments, &stored)
	return appt, nil
}

func (s *memStore) FindConflicts(_ context.Context, _, staffID int64, candidateStart, candidateEnd time.Time, bufferMinutes int) ([]int64, error) {
	footprintEnd := candidateEnd.Add(time.Duration(bufferMinutes) * time.Minute)
	ids := make([]int64, 0)
	for _, appt := range s.appointments {
		if appt.StaffID == nil || *appt.StaffID != staffID {
			continue
		}
		if appt.IsActive() && appt.Overlaps(candidateStart, footprintEnd) {
			ids = append(ids, appt.ID)
		}
	}
	return ids, nil
}

// mutexTxManager сериализует "транзакции" мьютексом хранилища
type mutexTxManager struct {
	store *memStore
}

func (m *mutexTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func workday(staffIDs ...int64) *fakeResolver {
	free := make(map[int64][]availability.Interval)
	for _, id := range staffIDs {
		free[id] = []availability.Interval{{Start: at(9, 0), End: at(17, 0)}}
	}
	return &fakeResolver{free: free}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		business: &domain.Business{
			ID:                      1,
			Timezone:                "UTC",
			IsActive:                true,
			CancellationWindowHours: 24,
			RequireConfirmation:     true,
		},
		services: map[int64]*domain.Service{
			10: {
				ID:                          10,
				BusinessID:                  1,
				Name:                        "Haircut",
				DurationMinutes:             30,
				BufferTimeMinutes:           10,
				BookingAdvanceNoticeMinutes: 60,
				Price:                       ptr.Ptr(int64(2500)),
				IsActive:                    true,
			},
		},
		staff: map[int64]*domain.Staff{
			1: {ID: 1, BusinessID: 1, IsActive: true},
			2: {ID: 2, BusinessID: 1, IsActive: true},
		},
		customers: map[int64]*domain.Customer{
			100: {ID: 100, BusinessID: 1},
		},
		offers: map[int64]bool{1: true, 2: true},
	}
}

func newTestUseCase(catalog *fakeCatalog, resolver *fakeResolver, store *memStore, now time.Time) *UseCase {
	uc := NewUseCase(store, catalog, resolver, store, &mutexTxManager{store: store}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func baseRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  10,
		StaffID:    ptr.Ptr(int64(1)),
		CustomerID: 100,
		StartTime:  at(10, 0),
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.StaffID)
	assert.Equal(t, at(10, 0), resp.StartTime)
	assert.Equal(t, at(10, 30), resp.EndTime)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, int64(2500), *resp.Price)
	assert.Equal(t, domain.DefaultBookingSource, resp.BookingSource)
}

func TestExecute_AutoConfirmWhenNotRequired(t *testing.T) {
	catalog := testCatalog()
	catalog.business.RequireConfirmation = false

	uc := newTestUseCase(catalog, workday(1, 2), &memStore{}, at(8, 0))

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_SlotConflict(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	_, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	// Второй запрос на тот же слот того же сотрудника
	_, err = uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_BufferBlocksAdjacentSlot(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	_, err := uc.Execute(context.Background(), baseRequest()) // 10:00-10:30, буфер до 10:40
	require.NoError(t, err)

	// 10:35 попадает в буфер
	req := baseRequest()
	req.StartTime = at(10, 35)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// 10:40 - ровно от конца footprint, допустимо
	req = baseRequest()
	req.StartTime = at(10, 40)
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InsufficientNotice(t *testing.T) {
	uc := newTestUseCase(testCatalog(), workday(1, 2), &memStore{}, at(9, 30))

	// Нотис 60 минут, до начала 30
	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrInsufficientNotice)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc := newTestUseCase(testCatalog(), workday(1, 2), &memStore{}, at(8, 0))

	// 16:45 + 30 мин + 10 буфер = footprint до 17:25, смена до 17:00
	req := baseRequest()
	req.StartTime = at(16, 45)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_EntityUnavailable(t *testing.T) {
	catalog := testCatalog()
	catalog.services[10].IsActive = false

	uc := newTestUseCase(catalog, workday(1, 2), &memStore{}, at(8, 0))

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrEntityUnavailable)
}

func TestExecute_StaffDoesNotOfferService(t *testing.T) {
	catalog := testCatalog()
	catalog.offers[1] = false

	uc := newTestUseCase(catalog, workday(1, 2), &memStore{}, at(8, 0))

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrEntityUnavailable)
}

func TestExecute_NotFoundErrors(t *testing.T) {
	uc := newTestUseCase(testCatalog(), workday(1, 2), &memStore{}, at(8, 0))

	req := baseRequest()
	req.BusinessID = 99
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	req = baseRequest()
	req.ServiceID = 99
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = baseRequest()
	req.StaffID = ptr.Ptr(int64(99))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	req = baseRequest()
	req.CustomerID = 99
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_AnyStaffPicksLowestID(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	req := baseRequest()
	req.StaffID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.StaffID, "lowest staff id wins the tie")
}

func TestExecute_AnyStaffSkipsBusy(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	// Занимаем сотрудника 1
	_, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	req := baseRequest()
	req.StaffID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.StaffID)
}

func TestExecute_NoStaffAvailable(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	// Занимаем обоих
	_, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	req := baseRequest()
	req.StaffID = ptr.Ptr(int64(2))
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req = baseRequest()
	req.StaffID = nil
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(testCatalog(), workday(1, 2), &memStore{}, at(8, 0))

	req := baseRequest()
	req.CustomerID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = baseRequest()
	req.StartTime = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = baseRequest()
	req.BookingSource = "carrier_pigeon"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentRequestsOneWinner(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(testCatalog(), workday(1, 2), store, at(8, 0))

	const n = 16
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), baseRequest())
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		default:
			require.ErrorIs(t, err, ErrSlotConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, created, "exactly one request wins the slot")
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, store.appointments, 1)
}
