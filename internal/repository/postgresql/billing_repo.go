package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
)

type pgBillingRepository struct {
	db *sql.DB
}

func NewPgBillingRepository(db *sql.DB) repository.BillingRepository {
	return &pgBillingRepository{db: db}
}

const billingColumns = `id, session_id, vehicle_number, vehicle_type, slot_number,
	entry_time, exit_time, billing_type, total_amount, duration_hours, is_late, created_at`

func scanBillingRecord(row interface{ Scan(...interface{}) error }, record *domain.BillingRecord) error {
	err := row.Scan(
		&record.ID, &record.SessionID, &record.VehicleNumber, &record.VehicleType, &record.SlotNumber,
		&record.EntryTime, &record.ExitTime, &record.BillingType, &record.TotalAmount,
		&record.DurationHours, &record.IsLate, &record.CreatedAt,
	)
	if err != nil {
		return err
	}
	record.EntryTime = record.EntryTime.In(time.UTC)
	record.ExitTime = record.ExitTime.In(time.UTC)
	record.CreatedAt = record.CreatedAt.In(time.UTC)
	return nil
}

func (r *pgBillingRepository) Create(ctx context.Context, record *domain.BillingRecord) (*domain.BillingRecord, error) {
	query := `INSERT INTO billing_records
	           (session_id, vehicle_number, vehicle_type, slot_number, entry_time, exit_time,
	            billing_type, total_amount, duration_hours, is_late, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
	           RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		record.SessionID, record.VehicleNumber, record.VehicleType, record.SlotNumber,
		record.EntryTime, record.ExitTime, record.BillingType, record.TotalAmount,
		record.DurationHours, record.IsLate,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("BillingRepository.Create: %w", err)
	}
	record.CreatedAt = record.CreatedAt.In(time.UTC)
	return record, nil
}

func (r *pgBillingRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]domain.BillingRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.BillingRecord
	for rows.Next() {
		var record domain.BillingRecord
		if err := scanBillingRecord(rows, &record); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

func (r *pgBillingRepository) FindPaginated(ctx context.Context, limit, offset int) ([]domain.BillingRecord, error) {
	query := `SELECT ` + billingColumns + `
	           FROM billing_records
	           ORDER BY exit_time DESC
	           LIMIT $1 OFFSET $2`
	records, err := r.findMany(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("BillingRepository.FindPaginated: %w", err)
	}
	return records, nil
}

func (r *pgBillingRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM billing_records`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("BillingRepository.Count: %w", err)
	}
	return total, nil
}

func (r *pgBillingRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	// COALESCE để trả 0 khi chưa có bản ghi nào
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM billing_records`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("BillingRepository.TotalRevenue: %w", err)
	}
	return total, nil
}

func (r *pgBillingRepository) FindLate(ctx context.Context, limit int) ([]domain.BillingRecord, error) {
	query := `SELECT ` + billingColumns + `
	           FROM billing_records
	           WHERE is_late = TRUE AND billing_type = $1
	           ORDER BY exit_time DESC
	           LIMIT $2`
	records, err := r.findMany(ctx, query, domain.BillingDaypass, limit)
	if err != nil {
		return nil, fmt.Errorf("BillingRepository.FindLate: %w", err)
	}
	return records, nil
}
