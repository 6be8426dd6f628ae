package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"

	"github.com/google/uuid"
)

// Interface cho WebSocket Manager để tránh circular dependency
type WebSocketManager interface {
	BroadcastParkingEvent(event domain.ParkingEventNotification)
}

// ValidationError là lỗi do input của client (loại xe sai, chỗ đỗ không phù
// hợp, hết chỗ trống...), handler map về HTTP 400 với message nguyên văn.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ExitResult gom kết quả của thao tác xe ra để handler dựng response.
type ExitResult struct {
	Session   *domain.ParkingSession
	Record    *domain.BillingRecord
	LateHours int
}

type ParkingService struct {
	vehicleRepo              repository.VehicleRepository
	slotRepo                 repository.ParkingSlotRepository
	sessionRepo              repository.ParkingSessionRepository
	billingService           *BillingService
	wsManager                WebSocketManager
	allowMaintenanceOverride bool
}

func NewParkingService(
	vehicleRepo repository.VehicleRepository,
	slotRepo repository.ParkingSlotRepository,
	sessionRepo repository.ParkingSessionRepository,
	billingService *BillingService,
	wsManager WebSocketManager,
	allowMaintenanceOverride bool,
) *ParkingService {
	return &ParkingService{
		vehicleRepo:              vehicleRepo,
		slotRepo:                 slotRepo,
		sessionRepo:              sessionRepo,
		billingService:           billingService,
		wsManager:                wsManager,
		allowMaintenanceOverride: allowMaintenanceOverride,
	}
}

// findOrCreateVehicle tra cứu xe theo biển số, chưa có thì đăng ký mới.
// Biển số là UNIQUE trong DB; nếu hai request cùng tạo một biển số thì request
// thua cuộc tra cứu lại bản ghi vừa được tạo.
func (s *ParkingService) findOrCreateVehicle(ctx context.Context, numberPlate string, vehicleType domain.VehicleType) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, numberPlate)
	if err == nil {
		return vehicle, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lỗi tra cứu xe: %w", err)
	}

	vehicle, err = s.vehicleRepo.Create(ctx, &domain.Vehicle{NumberPlate: numberPlate, Type: vehicleType})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return s.vehicleRepo.FindByPlate(ctx, numberPlate)
		}
		return nil, fmt.Errorf("lỗi đăng ký xe: %w", err)
	}
	log.Printf("Đã đăng ký xe mới: biển số '%s', loại '%s' (ID: %d)", numberPlate, vehicleType, vehicle.ID)
	return vehicle, nil
}

func slotTypeAllowed(slotType domain.SlotType, allowed []domain.SlotType) bool {
	for _, t := range allowed {
		if t == slotType {
			return true
		}
	}
	return false
}

// EnterVehicle xử lý xe vào cổng: resolve xe, chọn và chiếm chỗ đỗ, tạo phiên
// Active. Việc chiếm chỗ là một conditional update duy nhất nên hai xe vào
// cùng lúc không thể trùng chỗ.
func (s *ParkingService) EnterVehicle(ctx context.Context, dto domain.VehicleEntryDTO) (*domain.ParkingSession, *domain.ParkingSlot, error) {
	if !domain.IsValidVehicleType(dto.Type) {
		return nil, nil, newValidationError("Invalid vehicle type '%s'.", dto.Type)
	}
	vehicleType := domain.VehicleType(dto.Type)

	vehicle, err := s.findOrCreateVehicle(ctx, dto.NumberPlate, vehicleType)
	if err != nil {
		return nil, nil, err
	}

	// Một xe chỉ được có một phiên Active; chặn trước khi đụng vào slot.
	existing, err := s.sessionRepo.FindActiveByVehicleID(ctx, vehicle.ID)
	if err != nil && !errors.Is(err, repository.ErrNoActiveSession) {
		return nil, nil, fmt.Errorf("lỗi kiểm tra phiên hoạt động: %w", err)
	}
	if existing != nil {
		log.Printf("Xe '%s' đã có phiên đang hoạt động (ID: %d), từ chối vào lần hai.", dto.NumberPlate, existing.ID)
		return nil, nil, fmt.Errorf("%w: vehicle '%s' is already parked", repository.ErrDuplicateEntry, dto.NumberPlate)
	}

	allowedTypes := domain.AllowedSlotTypes(vehicleType)

	var slot *domain.ParkingSlot
	if dto.PreferredSlotID != nil {
		slot, err = s.slotRepo.FindByID(ctx, *dto.PreferredSlotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, newValidationError("Preferred slot not found.")
			}
			return nil, nil, fmt.Errorf("lỗi tra cứu chỗ đỗ: %w", err)
		}
		if !slotTypeAllowed(slot.Type, allowedTypes) {
			return nil, nil, newValidationError("Preferred slot type '%s' is not allowed for vehicle type '%s'.", slot.Type, vehicleType)
		}
		if err := s.slotRepo.OccupyIfAvailable(ctx, slot.ID, s.allowMaintenanceOverride); err != nil {
			if errors.Is(err, repository.ErrSlotNotAvailable) {
				return nil, nil, newValidationError("Preferred slot is currently not available (status: %s).", slot.Status)
			}
			return nil, nil, fmt.Errorf("lỗi chiếm chỗ đỗ: %w", err)
		}
		slot.Status = domain.SlotOccupied
	} else {
		slot, err = s.slotRepo.AcquireFirstAvailableByTypes(ctx, allowedTypes)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, newValidationError("No available slot for this vehicle type.")
			}
			return nil, nil, fmt.Errorf("lỗi tìm chỗ đỗ trống: %w", err)
		}
	}

	session := &domain.ParkingSession{
		VehicleID:   vehicle.ID,
		SlotID:      slot.ID,
		EntryTime:   time.Now().UTC(),
		Status:      domain.SessionActive,
		BillingType: domain.BillingType(dto.BillingType),
	}
	createdSession, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		// Trả lại chỗ vừa chiếm để không kẹt slot Occupied không có phiên
		if releaseErr := s.slotRepo.UpdateStatus(ctx, slot.ID, domain.SlotAvailable); releaseErr != nil {
			log.Printf("Lỗi trả lại chỗ đỗ %d sau khi tạo phiên thất bại: %v", slot.ID, releaseErr)
		}
		return nil, nil, fmt.Errorf("lỗi tạo phiên đỗ xe: %w", err)
	}
	log.Printf("Đã tạo phiên đỗ xe ID %d: xe '%s' vào chỗ %s (%s, %s)",
		createdSession.ID, dto.NumberPlate, slot.SlotNumber, slot.Type, dto.BillingType)

	if s.wsManager != nil {
		s.wsManager.BroadcastParkingEvent(domain.ParkingEventNotification{
			EventID:     uuid.New().String(),
			EventType:   domain.EventVehicleEntry,
			SessionID:   createdSession.ID,
			NumberPlate: vehicle.NumberPlate,
			SlotNumber:  slot.SlotNumber,
			BillingType: createdSession.BillingType,
			Timestamp:   createdSession.EntryTime,
		})
	}
	return createdSession, slot, nil
}

// ExitVehicle xử lý xe ra cổng: chốt phiên, tính phí, ghi sổ billing rồi trả
// chỗ đỗ. Nếu bước trả chỗ thất bại sau khi đã ghi sổ thì phiên vẫn Completed
// và chỗ tạm thời hiển thị Occupied; chỉ log lại, không rollback.
func (s *ParkingService) ExitVehicle(ctx context.Context, dto domain.VehicleExitDTO) (*ExitResult, error) {
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, dto.NumberPlate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lỗi tra cứu xe: %w", err)
	}

	session, err := s.sessionRepo.FindActiveByVehicleID(ctx, vehicle.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("lỗi tìm phiên đỗ xe đang hoạt động: %w", err)
	}

	exitTime := time.Now().UTC()
	amount := CalculateFee(session.BillingType, session.EntryTime, exitTime)

	session.ExitTime.SetValid(exitTime)
	session.Status = domain.SessionCompleted
	session.BillingAmount.SetValid(amount)

	if _, err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("lỗi cập nhật phiên đỗ xe: %w", err)
	}

	record, lateHours, err := s.billingService.Record(ctx, session, amount)
	if err != nil {
		return nil, fmt.Errorf("lỗi ghi sổ billing cho phiên %d: %w", session.ID, err)
	}

	if err := s.slotRepo.UpdateStatus(ctx, session.SlotID, domain.SlotAvailable); err != nil {
		log.Printf("Lỗi trả chỗ đỗ %d về trạng thái trống: %v", session.SlotID, err)
	} else {
		log.Printf("Đã trả chỗ đỗ %s về trạng thái trống.", session.ParkingSlot.SlotNumber)
	}

	log.Printf("Xe '%s' ra cổng: phiên %d, phí %.0f, đỗ %.2f giờ",
		vehicle.NumberPlate, session.ID, amount, record.DurationHours)

	if s.wsManager != nil {
		notification := domain.ParkingEventNotification{
			EventID:     uuid.New().String(),
			EventType:   domain.EventVehicleExit,
			SessionID:   session.ID,
			NumberPlate: vehicle.NumberPlate,
			SlotNumber:  session.ParkingSlot.SlotNumber,
			BillingType: session.BillingType,
			Timestamp:   exitTime,
		}
		if record.IsLate {
			notification.LateHours = lateHours
			notification.Message = fmt.Sprintf("Vehicle %s is %d hour(s) late! Mall closed at %d:00.",
				vehicle.NumberPlate, lateHours, s.billingService.ClosingHour())
		}
		s.wsManager.BroadcastParkingEvent(notification)
	}

	return &ExitResult{Session: session, Record: record, LateHours: lateHours}, nil
}

// SearchVehicle trả về phiên Active của một biển số, hoặc nil nếu xe có trong
// hệ thống nhưng hiện không đỗ.
func (s *ParkingService) SearchVehicle(ctx context.Context, numberPlate string) (*domain.ParkingSession, error) {
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, numberPlate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lỗi tra cứu xe: %w", err)
	}

	session, err := s.sessionRepo.FindActiveByVehicleID(ctx, vehicle.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return nil, nil
		}
		return nil, fmt.Errorf("lỗi tìm phiên đỗ xe: %w", err)
	}
	return session, nil
}

func (s *ParkingService) GetActiveSessions(ctx context.Context) ([]domain.ParkingSession, error) {
	return s.sessionRepo.FindActiveDetailed(ctx)
}

// --- ParkingSlot ---

func (s *ParkingService) CreateParkingSlot(ctx context.Context, dto domain.ParkingSlotDTO) (*domain.ParkingSlot, error) {
	if !domain.IsValidSlotType(dto.Type) {
		return nil, newValidationError("Invalid slot type '%s'.", dto.Type)
	}
	slot := &domain.ParkingSlot{
		SlotNumber: dto.SlotNumber,
		Type:       domain.SlotType(dto.Type),
		Status:     domain.SlotAvailable, // Mặc định
		Location:   dto.Location,
	}
	return s.slotRepo.Create(ctx, slot)
}

func (s *ParkingService) GetSlots(ctx context.Context, typeFilter string) ([]domain.ParkingSlot, error) {
	return s.slotRepo.FindAll(ctx, typeFilter)
}

// SetSlotMaintenance ghi đè trạng thái vô điều kiện theo thao tác của nhân
// viên vận hành, kể cả khi chỗ đang Occupied.
func (s *ParkingService) SetSlotMaintenance(ctx context.Context, slotID int) (*domain.ParkingSlot, error) {
	return s.overrideSlotStatus(ctx, slotID, domain.SlotMaintenance)
}

func (s *ParkingService) SetSlotAvailable(ctx context.Context, slotID int) (*domain.ParkingSlot, error) {
	return s.overrideSlotStatus(ctx, slotID, domain.SlotAvailable)
}

func (s *ParkingService) overrideSlotStatus(ctx context.Context, slotID int, status domain.SlotStatus) (*domain.ParkingSlot, error) {
	if err := s.slotRepo.UpdateStatus(ctx, slotID, status); err != nil {
		return nil, err
	}
	log.Printf("Nhân viên vận hành đổi trạng thái chỗ đỗ %d thành %s", slotID, status)
	return s.slotRepo.FindByID(ctx, slotID)
}
