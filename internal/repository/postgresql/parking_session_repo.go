package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
)

type pgParkingSessionRepository struct {
	db *sql.DB
}

func NewPgParkingSessionRepository(db *sql.DB) repository.ParkingSessionRepository {
	return &pgParkingSessionRepository{db: db}
}

// Các cột của một phiên kèm vehicle + slot (populate qua JOIN)
const sessionDetailedColumns = `
	ps.id, ps.vehicle_id, ps.slot_id, ps.entry_time, ps.exit_time,
	ps.status, ps.billing_type, ps.billing_amount, ps.created_at, ps.updated_at,
	v.id, v.number_plate, v.type, v.created_at,
	sl.id, sl.slot_number, sl.type, sl.status, sl.location, sl.created_at, sl.updated_at`

const sessionDetailedFrom = `
	FROM parking_sessions ps
	JOIN vehicles v ON v.id = ps.vehicle_id
	JOIN parking_slots sl ON sl.id = ps.slot_id`

func scanSessionDetailed(row interface{ Scan(...interface{}) error }) (*domain.ParkingSession, error) {
	session := &domain.ParkingSession{
		Vehicle:     &domain.Vehicle{},
		ParkingSlot: &domain.ParkingSlot{},
	}
	var location sql.NullString
	err := row.Scan(
		&session.ID, &session.VehicleID, &session.SlotID, &session.EntryTime, &session.ExitTime,
		&session.Status, &session.BillingType, &session.BillingAmount, &session.CreatedAt, &session.UpdatedAt,
		&session.Vehicle.ID, &session.Vehicle.NumberPlate, &session.Vehicle.Type, &session.Vehicle.CreatedAt,
		&session.ParkingSlot.ID, &session.ParkingSlot.SlotNumber, &session.ParkingSlot.Type,
		&session.ParkingSlot.Status, &location, &session.ParkingSlot.CreatedAt, &session.ParkingSlot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if location.Valid {
		session.ParkingSlot.Location = location.String
	}
	session.EntryTime = session.EntryTime.In(time.UTC)
	if session.ExitTime.Valid {
		session.ExitTime.Time = session.ExitTime.Time.In(time.UTC)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `INSERT INTO parking_sessions
	           (vehicle_id, slot_id, entry_time, status, billing_type, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		session.VehicleID, session.SlotID, session.EntryTime, session.Status, session.BillingType,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.Create: %w", err)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) FindActiveByVehicleID(ctx context.Context, vehicleID int) (*domain.ParkingSession, error) {
	query := `SELECT` + sessionDetailedColumns + sessionDetailedFrom + `
	           WHERE ps.vehicle_id = $1 AND ps.status = $2
	           ORDER BY ps.entry_time DESC LIMIT 1`
	session, err := scanSessionDetailed(r.db.QueryRowContext(ctx, query, vehicleID, domain.SessionActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindActiveByVehicleID: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) Update(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `UPDATE parking_sessions
	           SET exit_time = $1, status = $2, billing_amount = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4
	           RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		session.ExitTime, session.Status, session.BillingAmount, session.ID,
	).Scan(&session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSessionRepository.Update: %w", err)
	}
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) findDetailed(ctx context.Context, query string, args ...interface{}) ([]domain.ParkingSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ParkingSession
	for rows.Next() {
		session, err := scanSessionDetailed(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return sessions, nil
}

func (r *pgParkingSessionRepository) FindActiveDetailed(ctx context.Context) ([]domain.ParkingSession, error) {
	query := `SELECT` + sessionDetailedColumns + sessionDetailedFrom + `
	           WHERE ps.status = $1
	           ORDER BY ps.entry_time DESC`
	sessions, err := r.findDetailed(ctx, query, domain.SessionActive)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindActiveDetailed: %w", err)
	}
	return sessions, nil
}

func (r *pgParkingSessionRepository) FindRecentCompleted(ctx context.Context, limit int) ([]domain.ParkingSession, error) {
	query := `SELECT` + sessionDetailedColumns + sessionDetailedFrom + `
	           WHERE ps.status = $1
	           ORDER BY ps.exit_time DESC
	           LIMIT $2`
	sessions, err := r.findDetailed(ctx, query, domain.SessionCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindRecentCompleted: %w", err)
	}
	return sessions, nil
}

// FindOverdueDaypass tìm các phiên daypass còn Active mà giờ hiện tại đã vượt
// quá giờ đóng cửa của ngày xe vào. Giờ đóng cửa cộng từ đầu ngày entry_time.
func (r *pgParkingSessionRepository) FindOverdueDaypass(ctx context.Context, now time.Time, closingHour int) ([]domain.ParkingSession, error) {
	query := `SELECT` + sessionDetailedColumns + sessionDetailedFrom + `
	           WHERE ps.status = $1 AND ps.billing_type = $2
	             AND $3 > date_trunc('day', ps.entry_time) + make_interval(hours => $4)
	           ORDER BY ps.entry_time ASC`
	sessions, err := r.findDetailed(ctx, query, domain.SessionActive, domain.BillingDaypass, now, closingHour)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindOverdueDaypass: %w", err)
	}
	return sessions, nil
}
