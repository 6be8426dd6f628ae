package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"

	"github.com/lib/pq"
)

type pgParkingSlotRepository struct {
	db *sql.DB
}

func NewPgParkingSlotRepository(db *sql.DB) repository.ParkingSlotRepository {
	return &pgParkingSlotRepository{db: db}
}

func scanSlot(row interface{ Scan(...interface{}) error }, slot *domain.ParkingSlot) error {
	var location sql.NullString
	err := row.Scan(&slot.ID, &slot.SlotNumber, &slot.Type, &slot.Status, &location,
		&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return err
	}
	if location.Valid {
		slot.Location = location.String
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return nil
}

func (r *pgParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	query := `INSERT INTO parking_slots (slot_number, type, status, location, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		slot.SlotNumber, slot.Type, slot.Status,
		sql.NullString{String: slot.Location, Valid: slot.Location != ""},
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: chỗ đỗ '%s' đã tồn tại", repository.ErrDuplicateEntry, slot.SlotNumber)
			}
		}
		return nil, fmt.Errorf("ParkingSlotRepository.Create: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := `SELECT id, slot_number, type, status, location, created_at, updated_at
	           FROM parking_slots WHERE id = $1`
	err := scanSlot(r.db.QueryRowContext(ctx, query, id), slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindByID: %w", err)
	}
	return slot, nil
}

func (r *pgParkingSlotRepository) FindAll(ctx context.Context, typeFilter string) ([]domain.ParkingSlot, error) {
	query := `SELECT id, slot_number, type, status, location, created_at, updated_at
	           FROM parking_slots`
	args := []interface{}{}
	if typeFilter != "" {
		query += ` WHERE type = $1`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY slot_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var slots []domain.ParkingSlot
	for rows.Next() {
		var slot domain.ParkingSlot
		if err := scanSlot(rows, &slot); err != nil {
			return nil, fmt.Errorf("ParkingSlotRepository.FindAll (scanning row): %w", err)
		}
		slots = append(slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll (rows error): %w", err)
	}
	return slots, nil
}

func (r *pgParkingSlotRepository) UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error {
	query := `UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// OccupyIfAvailable chiếm chỗ bằng compare-and-set trên cột status.
// Hai request vào cùng lúc trỏ vào một chỗ thì chỉ một request thắng,
// request còn lại nhận ErrSlotNotAvailable.
func (r *pgParkingSlotRepository) OccupyIfAvailable(ctx context.Context, id int, allowMaintenance bool) error {
	allowed := []string{string(domain.SlotAvailable)}
	if allowMaintenance {
		allowed = append(allowed, string(domain.SlotMaintenance))
	}
	query := `UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2 AND status = ANY($3)`
	result, err := r.db.ExecContext(ctx, query, domain.SlotOccupied, id, pq.Array(allowed))
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.OccupyIfAvailable: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.OccupyIfAvailable (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrSlotNotAvailable
	}
	return nil
}

// AcquireFirstAvailableByTypes chọn chỗ trống đầu tiên (theo slot_number) thuộc
// các loại cho phép và chiếm luôn trong cùng một câu lệnh. FOR UPDATE SKIP LOCKED
// để các request song song không tranh nhau cùng một hàng.
func (r *pgParkingSlotRepository) AcquireFirstAvailableByTypes(ctx context.Context, types []domain.SlotType) (*domain.ParkingSlot, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	slot := &domain.ParkingSlot{}
	query := `UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = (
	               SELECT id FROM parking_slots
	               WHERE type = ANY($2) AND status = $3
	               ORDER BY slot_number ASC
	               LIMIT 1
	               FOR UPDATE SKIP LOCKED
	           )
	           RETURNING id, slot_number, type, status, location, created_at, updated_at`
	err := scanSlot(r.db.QueryRowContext(ctx, query, domain.SlotOccupied, pq.Array(typeNames), domain.SlotAvailable), slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound // Không còn chỗ trống phù hợp
		}
		return nil, fmt.Errorf("ParkingSlotRepository.AcquireFirstAvailableByTypes: %w", err)
	}
	return slot, nil
}
