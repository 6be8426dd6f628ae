package service

import (
	"context"
	"fmt"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
)

const recentSessionsLimit = 10

// DashboardService tổng hợp dữ liệu chỉ đọc cho màn hình giám sát.
// Không có mutation nào ở đây.
type DashboardService struct {
	slotRepo    repository.ParkingSlotRepository
	vehicleRepo repository.VehicleRepository
	sessionRepo repository.ParkingSessionRepository
}

func NewDashboardService(
	slotRepo repository.ParkingSlotRepository,
	vehicleRepo repository.VehicleRepository,
	sessionRepo repository.ParkingSessionRepository,
) *DashboardService {
	return &DashboardService{
		slotRepo:    slotRepo,
		vehicleRepo: vehicleRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, typeFilter string) (*domain.DashboardStats, error) {
	slots, err := s.slotRepo.FindAll(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy danh sách chỗ đỗ: %w", err)
	}
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy danh sách xe: %w", err)
	}
	activeSessions, err := s.sessionRepo.FindActiveDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy phiên đang hoạt động: %w", err)
	}
	recentSessions, err := s.sessionRepo.FindRecentCompleted(ctx, recentSessionsLimit)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy phiên gần đây: %w", err)
	}

	if slots == nil {
		slots = []domain.ParkingSlot{}
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	if activeSessions == nil {
		activeSessions = []domain.ParkingSession{}
	}
	if recentSessions == nil {
		recentSessions = []domain.ParkingSession{}
	}

	stats := &domain.DashboardStats{
		SlotsByType:           make(map[domain.SlotType]*domain.SlotTypeBreakdown),
		VehiclesByType:        make(map[domain.VehicleType]int),
		Slots:                 slots,
		Vehicles:              vehicles,
		ActiveSessionsDetails: activeSessions,
		RecentSessions:        recentSessions,
	}

	for _, slot := range slots {
		breakdown, ok := stats.SlotsByType[slot.Type]
		if !ok {
			breakdown = &domain.SlotTypeBreakdown{}
			stats.SlotsByType[slot.Type] = breakdown
		}
		breakdown.Total++
		switch slot.Status {
		case domain.SlotAvailable:
			breakdown.Available++
			stats.Overview.AvailableSlots++
		case domain.SlotOccupied:
			breakdown.Occupied++
			stats.Overview.OccupiedSlots++
		case domain.SlotMaintenance:
			breakdown.Maintenance++
			stats.Overview.MaintenanceSlots++
		}
	}
	for _, vehicle := range vehicles {
		stats.VehiclesByType[vehicle.Type]++
	}

	stats.Overview.TotalSlots = len(slots)
	stats.Overview.ActiveSessions = len(activeSessions)
	stats.Overview.TotalVehicles = len(vehicles)
	return stats, nil
}
