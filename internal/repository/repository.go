package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrNoActiveSession = errors.New("no active parking session found")
var ErrSlotNotAvailable = errors.New("slot is not available")

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByPlate(ctx context.Context, numberPlate string) (*domain.Vehicle, error)
	FindAll(ctx context.Context) ([]domain.Vehicle, error)
}

type ParkingSlotRepository interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error)
	// typeFilter rỗng = lấy tất cả
	FindAll(ctx context.Context, typeFilter string) ([]domain.ParkingSlot, error)
	// Ghi đè trạng thái vô điều kiện (maintenance / available / trả chỗ khi xe ra)
	UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error
	// Chiếm chỗ bằng conditional update: chỉ thành công nếu chỗ còn trống
	// (hoặc đang Maintenance nếu allowMaintenance). Trả về ErrSlotNotAvailable
	// nếu chỗ đã bị chiếm bởi request khác.
	OccupyIfAvailable(ctx context.Context, id int, allowMaintenance bool) error
	// Chọn và chiếm chỗ trống đầu tiên thuộc các loại cho phép trong một
	// câu lệnh duy nhất, tránh double-booking khi hai xe vào cùng lúc.
	AcquireFirstAvailableByTypes(ctx context.Context, types []domain.SlotType) (*domain.ParkingSlot, error)
}

type ParkingSessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	// Tìm phiên Active của một xe, có populate vehicle + slot
	FindActiveByVehicleID(ctx context.Context, vehicleID int) (*domain.ParkingSession, error)
	Update(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindActiveDetailed(ctx context.Context) ([]domain.ParkingSession, error)
	FindRecentCompleted(ctx context.Context, limit int) ([]domain.ParkingSession, error)
	// Các phiên daypass còn Active đã quá giờ đóng cửa (tính theo ngày vào)
	FindOverdueDaypass(ctx context.Context, now time.Time, closingHour int) ([]domain.ParkingSession, error)
}

type BillingRepository interface {
	Create(ctx context.Context, record *domain.BillingRecord) (*domain.BillingRecord, error)
	FindPaginated(ctx context.Context, limit, offset int) ([]domain.BillingRecord, error)
	Count(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	FindLate(ctx context.Context, limit int) ([]domain.BillingRecord, error)
}
