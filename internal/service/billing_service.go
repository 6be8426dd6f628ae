package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
)

const (
	defaultBillingPage  = 1
	defaultBillingLimit = 10
	lateVehiclesLimit   = 20
)

// BillingService là sổ cái append-only của các phiên đã hoàn tất và là nguồn
// sự thật duy nhất cho logic phát hiện về trễ.
type BillingService struct {
	billingRepo repository.BillingRepository
	closingHour int
}

func NewBillingService(billingRepo repository.BillingRepository, closingHour int) *BillingService {
	return &BillingService{billingRepo: billingRepo, closingHour: closingHour}
}

func (s *BillingService) ClosingHour() int { return s.closingHour }

// Record tạo bản ghi billing bất biến cho một phiên vừa hoàn tất. Session phải
// được populate vehicle + slot để denormalize biển số / loại xe / số chỗ đỗ.
// Trả về bản ghi và số giờ trễ (0 nếu không trễ).
func (s *BillingService) Record(ctx context.Context, session *domain.ParkingSession, amount float64) (*domain.BillingRecord, int, error) {
	if session.Vehicle == nil || session.ParkingSlot == nil {
		return nil, 0, fmt.Errorf("phiên %d chưa được populate vehicle/slot", session.ID)
	}
	if !session.ExitTime.Valid {
		return nil, 0, fmt.Errorf("phiên %d chưa có thời gian ra", session.ID)
	}

	exitTime := session.ExitTime.Time
	isLate, lateHours := AssessLate(session.BillingType, session.EntryTime, exitTime, s.closingHour)
	if isLate {
		log.Printf("ADMIN ALERT: Vehicle %s at slot %s is %d hour(s) late! Mall closed at %d:00.",
			session.Vehicle.NumberPlate, session.ParkingSlot.SlotNumber, lateHours, s.closingHour)
	}

	record := &domain.BillingRecord{
		SessionID:     session.ID,
		VehicleNumber: session.Vehicle.NumberPlate,
		VehicleType:   session.Vehicle.Type,
		SlotNumber:    session.ParkingSlot.SlotNumber,
		EntryTime:     session.EntryTime,
		ExitTime:      exitTime,
		BillingType:   session.BillingType,
		TotalAmount:   amount,
		DurationHours: DurationHours(session.EntryTime, exitTime),
		IsLate:        isLate,
	}
	created, err := s.billingRepo.Create(ctx, record)
	if err != nil {
		return nil, 0, fmt.Errorf("lỗi tạo bản ghi billing: %w", err)
	}
	return created, lateHours, nil
}

// ListRecords trả về một trang bản ghi (sắp xếp exit_time giảm dần) kèm tổng
// số bản ghi chưa phân trang.
func (s *BillingService) ListRecords(ctx context.Context, page, limit int) ([]domain.BillingRecord, int, error) {
	if page < 1 {
		page = defaultBillingPage
	}
	if limit < 1 {
		limit = defaultBillingLimit
	}
	offset := (page - 1) * limit

	records, err := s.billingRepo.FindPaginated(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.billingRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if records == nil {
		records = []domain.BillingRecord{}
	}
	return records, total, nil
}

func (s *BillingService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.billingRepo.TotalRevenue(ctx)
}

func (s *BillingService) ListLateVehicles(ctx context.Context) ([]domain.BillingRecord, error) {
	records, err := s.billingRepo.FindLate(ctx, lateVehiclesLimit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.BillingRecord{}
	}
	return records, nil
}
