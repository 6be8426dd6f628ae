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

type pgVehicleRepository struct {
	db *sql.DB
}

func NewPgVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (number_plate, type, created_at)
	           VALUES ($1, $2, CURRENT_TIMESTAMP)
	           RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, vehicle.NumberPlate, vehicle.Type).
		Scan(&vehicle.ID, &vehicle.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				// UNIQUE (number_plate): xe đã được đăng ký trước đó,
				// caller nên tra cứu lại thay vì tạo bản ghi trùng.
				return nil, fmt.Errorf("%w: biển số '%s' đã được đăng ký", repository.ErrDuplicateEntry, vehicle.NumberPlate)
			}
		}
		return nil, fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByPlate(ctx context.Context, numberPlate string) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	query := `SELECT id, number_plate, type, created_at FROM vehicles WHERE number_plate = $1`
	err := r.db.QueryRowContext(ctx, query, numberPlate).Scan(
		&vehicle.ID, &vehicle.NumberPlate, &vehicle.Type, &vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindByPlate: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindAll(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT id, number_plate, type, created_at FROM vehicles ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(&vehicle.ID, &vehicle.NumberPlate, &vehicle.Type, &vehicle.CreatedAt); err != nil {
			return nil, fmt.Errorf("VehicleRepository.FindAll (scanning row): %w", err)
		}
		vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
		vehicles = append(vehicles, vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindAll (rows error): %w", err)
	}
	return vehicles, nil
}
