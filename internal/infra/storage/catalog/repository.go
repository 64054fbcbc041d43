package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository read-only репозиторий справочных данных:
// бизнесы, услуги, сотрудники, клиенты, правила доступности, отгулы
//
// business_id передается явным параметром в каждый запрос -
// ядро планировщика не знает о "текущем" тенанте
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр справочного репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusiness получает бизнес по ID
func (r *Repository) GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"slug",
		"timezone",
		"is_active",
		"cancellation_window_hours",
		"require_confirmation",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": businessID}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Timezone,
		&b.IsActive,
		&b.CancellationWindowHours,
		&b.RequireConfirmation,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - scan business: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// GetService получает услугу по ID в рамках бизнеса
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"buffer_time_minutes",
		"booking_advance_notice_minutes",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.DurationMinutes,
		&s.BufferTimeMinutes,
		&s.BookingAdvanceNoticeMinutes,
		&s.Price,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetStaff получает сотрудника по ID в рамках бизнеса
func (r *Repository) GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staffSelect().
		Where(squirrel.Eq{"id": staffID, "business_id": businessID}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	staff, err := scanStaff(row)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetCustomer получает клиента по ID в рамках бизнеса
func (r *Repository) GetCustomer(ctx context.Context, businessID, customerID int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"first_name",
		"last_name",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": customerID, "business_id": businessID}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.BusinessID,
		&c.FirstName,
		&c.LastName,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomer - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// StaffOffersService проверяет, что сотрудник выполняет услугу
// (членство в связи service_staff)
func (r *Repository) StaffOffersService(ctx context.Context, businessID, staffID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("service_staff ss").
		Join("staff st ON st.id = ss.staff_id").
		Where(squirrel.Eq{
			"ss.staff_id":    staffID,
			"ss.service_id":  serviceID,
			"st.business_id": businessID,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: StaffOffersService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: StaffOffersService - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetStaffForService возвращает активных сотрудников бизнеса,
// выполняющих услугу, в порядке возрастания ID
// Порядок важен: выбор "любого" сотрудника детерминирован - наименьший ID
func (r *Repository) GetStaffForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"st.id",
		"st.business_id",
		"st.first_name",
		"st.last_name",
		"st.is_active",
		"st.created_at",
		"st.updated_at",
	).
		From("staff st").
		Join("service_staff ss ON ss.staff_id = st.id").
		Where(squirrel.Eq{
			"ss.service_id":  serviceID,
			"st.business_id": businessID,
			"st.is_active":   true,
		}).
		Where("st.deleted_at IS NULL").
		OrderBy("st.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetStaffForService - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffForService - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetAvailabilityRules возвращает недельные правила доступности сотрудника
// Тенант проверяется через принадлежность сотрудника бизнесу
func (r *Repository) GetAvailabilityRules(ctx context.Context, businessID, staffID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sa.id",
		"sa.staff_id",
		"sa.day_of_week",
		"sa.start_time",
		"sa.end_time",
		"sa.is_available",
		"sa.created_at",
		"sa.updated_at",
	).
		From("staff_availability sa").
		Join("staff st ON st.id = sa.staff_id").
		Where(squirrel.Eq{"sa.staff_id": staffID, "st.business_id": businessID}).
		OrderBy("sa.day_of_week ASC", "sa.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.StaffID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailabilityRules - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetApprovedTimeOff возвращает подтвержденные отгулы сотрудника,
// пересекающиеся с диапазоном дат [from, to]
func (r *Repository) GetApprovedTimeOff(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sto.id",
		"sto.staff_id",
		"sto.start_date",
		"sto.end_date",
		"sto.reason",
		"sto.is_approved",
		"sto.created_at",
		"sto.updated_at",
	).
		From("staff_time_off sto").
		Join("staff st ON st.id = sto.staff_id").
		Where(squirrel.Eq{
			"sto.staff_id":    staffID,
			"st.business_id":  businessID,
			"sto.is_approved": true,
		}).
		Where("sto.deleted_at IS NULL").
		Where(squirrel.LtOrEq{"sto.start_date": to}).
		Where(squirrel.GtOrEq{"sto.end_date": from}).
		OrderBy("sto.start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeOff := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var t domain.TimeOff
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.StaffID,
			&t.StartDate,
			&t.EndDate,
			&t.Reason,
			&t.IsApproved,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetApprovedTimeOff - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time

		timeOff = append(timeOff, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - rows error: %v", ErrScanRow, err)
	}

	return timeOff, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func staffSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"first_name",
		"last_name",
		"is_active",
		"created_at",
		"updated_at",
	).From("staff")
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var s domain.Staff
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.FirstName,
		&s.LastName,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
