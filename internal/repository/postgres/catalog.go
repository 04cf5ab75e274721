package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/glowdesk/booking-bot/internal/model"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListServices(ctx context.Context, salonID string) ([]model.Service, error) {
	query := `
		SELECT id, salon_id, name, duration, price, description
		FROM services
		WHERE salon_id = $1
		ORDER BY name ASC
	`
	var services []model.Service
	if err := r.db.SelectContext(ctx, &services, query, salonID); err != nil {
		return nil, apperrors.Upstream("failed to list services", err)
	}
	return services, nil
}

func (r *catalogRepository) GetService(ctx context.Context, salonID, serviceID string) (*model.Service, error) {
	query := `
		SELECT id, salon_id, name, duration, price, description
		FROM services
		WHERE salon_id = $1 AND id = $2
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, salonID, serviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, apperrors.Upstream("failed to get service", err)
	}
	return &service, nil
}

type staffRow struct {
	Name        string         `db:"name"`
	SalonID     string         `db:"salon_id"`
	Email       string         `db:"email"`
	ServiceIDs  pq.StringArray `db:"service_ids"`
	WorkingDays pq.StringArray `db:"working_days"`
	Specialties pq.StringArray `db:"specialties"`
}

func (row staffRow) toModel() model.StaffMember {
	return model.StaffMember{
		Name:        row.Name,
		SalonID:     row.SalonID,
		Email:       row.Email,
		ServiceIDs:  row.ServiceIDs,
		WorkingDays: row.WorkingDays,
		Specialties: row.Specialties,
	}
}

func (r *catalogRepository) ListStaff(ctx context.Context, salonID string) ([]model.StaffMember, error) {
	query := `
		SELECT name, salon_id, email, service_ids, working_days, specialties
		FROM staff
		WHERE salon_id = $1
		ORDER BY name ASC
	`
	var rows []staffRow
	if err := r.db.SelectContext(ctx, &rows, query, salonID); err != nil {
		return nil, apperrors.Upstream("failed to list staff", err)
	}
	staff := make([]model.StaffMember, 0, len(rows))
	for _, row := range rows {
		staff = append(staff, row.toModel())
	}
	return staff, nil
}

func (r *catalogRepository) ListStaffForService(ctx context.Context, salonID, serviceID string) ([]model.StaffMember, error) {
	query := `
		SELECT name, salon_id, email, service_ids, working_days, specialties
		FROM staff
		WHERE salon_id = $1 AND $2 = ANY(service_ids)
		ORDER BY name ASC
	`
	var rows []staffRow
	if err := r.db.SelectContext(ctx, &rows, query, salonID, serviceID); err != nil {
		return nil, apperrors.Upstream("failed to list staff for service", err)
	}
	staff := make([]model.StaffMember, 0, len(rows))
	for _, row := range rows {
		staff = append(staff, row.toModel())
	}
	return staff, nil
}

func (r *catalogRepository) GetStaff(ctx context.Context, salonID, name string) (*model.StaffMember, error) {
	query := `
		SELECT name, salon_id, email, service_ids, working_days, specialties
		FROM staff
		WHERE salon_id = $1 AND name = $2
	`
	var row staffRow
	if err := r.db.GetContext(ctx, &row, query, salonID, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff member", err)
		}
		return nil, apperrors.Upstream("failed to get staff member", err)
	}
	staff := row.toModel()
	return &staff, nil
}
