package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
)

// Các fake repository in-memory dùng chung cho test của tầng service.
// Hành vi lỗi (sentinel errors, conditional update) mô phỏng đúng tầng postgresql.

type fakeVehicleRepo struct {
	mu       sync.Mutex
	nextID   int
	vehicles map[string]*domain.Vehicle // key: number_plate
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.vehicles[vehicle.NumberPlate]; exists {
		return nil, repository.ErrDuplicateEntry
	}
	r.nextID++
	stored := *vehicle
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.vehicles[stored.NumberPlate] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeVehicleRepo) FindByPlate(_ context.Context, numberPlate string) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[numberPlate]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (r *fakeVehicleRepo) FindAll(_ context.Context) ([]domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSlotRepo struct {
	mu     sync.Mutex
	nextID int
	slots  map[int]*domain.ParkingSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int]*domain.ParkingSlot)}
}

func (r *fakeSlotRepo) seed(slotNumber string, slotType domain.SlotType, status domain.SlotStatus) *domain.ParkingSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	slot := &domain.ParkingSlot{
		ID:         r.nextID,
		SlotNumber: slotNumber,
		Type:       slotType,
		Status:     status,
	}
	r.slots[slot.ID] = slot
	return slot
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.SlotNumber == slot.SlotNumber {
			return nil, repository.ErrDuplicateEntry
		}
	}
	r.nextID++
	stored := *slot
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.slots[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSlotRepo) FindByID(_ context.Context, id int) (*domain.ParkingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) FindAll(_ context.Context, typeFilter string) ([]domain.ParkingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ParkingSlot, 0, len(r.slots))
	for _, s := range r.slots {
		if typeFilter != "" && string(s.Type) != typeFilter {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, id int, status domain.SlotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	slot.Status = status
	slot.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeSlotRepo) OccupyIfAvailable(_ context.Context, id int, allowMaintenance bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return repository.ErrSlotNotAvailable
	}
	if slot.Status == domain.SlotAvailable || (allowMaintenance && slot.Status == domain.SlotMaintenance) {
		slot.Status = domain.SlotOccupied
		return nil
	}
	return repository.ErrSlotNotAvailable
}

func (r *fakeSlotRepo) AcquireFirstAvailableByTypes(_ context.Context, types []domain.SlotType) (*domain.ParkingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var candidates []*domain.ParkingSlot
	for _, s := range r.slots {
		if s.Status != domain.SlotAvailable {
			continue
		}
		for _, t := range types {
			if s.Type == t {
				candidates = append(candidates, s)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].SlotNumber < candidates[j].SlotNumber })
	winner := candidates[0]
	winner.Status = domain.SlotOccupied
	copied := *winner
	return &copied, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int
	sessions map[int]*domain.ParkingSession

	vehicles *fakeVehicleRepo
	slots    *fakeSlotRepo
}

func newFakeSessionRepo(vehicles *fakeVehicleRepo, slots *fakeSlotRepo) *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[int]*domain.ParkingSession),
		vehicles: vehicles,
		slots:    slots,
	}
}

// backdateEntry dời thời gian vào của một phiên về quá khứ để test tính phí
// theo thời lượng mà không phải chờ thật.
func (r *fakeSessionRepo) backdateEntry(sessionID int, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok {
		session.EntryTime = session.EntryTime.Add(-d)
	}
}

func (r *fakeSessionRepo) populate(session domain.ParkingSession) domain.ParkingSession {
	for _, v := range r.vehicles.vehicles {
		if v.ID == session.VehicleID {
			copied := *v
			session.Vehicle = &copied
			break
		}
	}
	if slot, ok := r.slots.slots[session.SlotID]; ok {
		copied := *slot
		session.ParkingSlot = &copied
	}
	return session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *session
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.sessions[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSessionRepo) FindActiveByVehicleID(_ context.Context, vehicleID int) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.VehicleID == vehicleID && s.Status == domain.SessionActive {
			populated := r.populate(*s)
			return &populated, nil
		}
	}
	return nil, repository.ErrNoActiveSession
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[session.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.ExitTime = session.ExitTime
	stored.Status = session.Status
	stored.BillingAmount = session.BillingAmount
	stored.UpdatedAt = time.Now().UTC()
	copied := *stored
	return &copied, nil
}

func (r *fakeSessionRepo) FindActiveDetailed(_ context.Context) ([]domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSession
	for _, s := range r.sessions {
		if s.Status == domain.SessionActive {
			out = append(out, r.populate(*s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	return out, nil
}

func (r *fakeSessionRepo) FindRecentCompleted(_ context.Context, limit int) ([]domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSession
	for _, s := range r.sessions {
		if s.Status == domain.SessionCompleted {
			out = append(out, r.populate(*s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExitTime.Time.After(out[j].ExitTime.Time) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) FindOverdueDaypass(_ context.Context, now time.Time, closingHour int) ([]domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSession
	for _, s := range r.sessions {
		if s.Status != domain.SessionActive || s.BillingType != domain.BillingDaypass {
			continue
		}
		if now.After(MallClosingTime(s.EntryTime, closingHour)) {
			out = append(out, r.populate(*s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBillingRepo struct {
	mu      sync.Mutex
	nextID  int
	records []domain.BillingRecord
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{}
}

func (r *fakeBillingRepo) Create(_ context.Context, record *domain.BillingRecord) (*domain.BillingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *record
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.records = append(r.records, stored)
	copied := stored
	return &copied, nil
}

func (r *fakeBillingRepo) sortedByExitDesc() []domain.BillingRecord {
	out := make([]domain.BillingRecord, len(r.records))
	copy(out, r.records)
	sort.Slice(out, func(i, j int) bool { return out[i].ExitTime.After(out[j].ExitTime) })
	return out
}

func (r *fakeBillingRepo) FindPaginated(_ context.Context, limit, offset int) ([]domain.BillingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sortedByExitDesc()
	if offset >= len(out) {
		return []domain.BillingRecord{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBillingRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *fakeBillingRepo) TotalRevenue(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, rec := range r.records {
		total += rec.TotalAmount
	}
	return total, nil
}

func (r *fakeBillingRepo) FindLate(_ context.Context, limit int) ([]domain.BillingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.BillingRecord
	for _, rec := range r.sortedByExitDesc() {
		if rec.IsLate && rec.BillingType == domain.BillingDaypass {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeWSManager ghi lại các event đã broadcast để test kiểm tra.
type fakeWSManager struct {
	mu     sync.Mutex
	events []domain.ParkingEventNotification
}

func (m *fakeWSManager) BroadcastParkingEvent(event domain.ParkingEventNotification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *fakeWSManager) eventTypes() []domain.ParkingEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ParkingEventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}
