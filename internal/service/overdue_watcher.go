package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"

	"github.com/google/uuid"
)

// OverdueWatcher quét định kỳ các phiên daypass còn Active đã quá giờ đóng
// cửa và đẩy cảnh báo realtime qua WebSocket, để dashboard biết xe về trễ
// ngay cả khi xe chưa ra cổng.
type OverdueWatcher struct {
	sessionRepo repository.ParkingSessionRepository
	wsManager   WebSocketManager
	closingHour int
	interval    time.Duration

	// sessionID -> số giờ trễ đã thông báo, tránh spam mỗi chu kỳ quét
	notified map[int]int
}

func NewOverdueWatcher(
	sessionRepo repository.ParkingSessionRepository,
	wsManager WebSocketManager,
	closingHour int,
	interval time.Duration,
) *OverdueWatcher {
	return &OverdueWatcher{
		sessionRepo: sessionRepo,
		wsManager:   wsManager,
		closingHour: closingHour,
		interval:    interval,
		notified:    make(map[int]int),
	}
}

// Start chạy vòng quét cho đến khi ctx bị hủy. Gọi trong một goroutine riêng.
func (w *OverdueWatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Overdue watcher bắt đầu, chu kỳ quét %v, giờ đóng cửa %d:00", w.interval, w.closingHour)
	for {
		select {
		case <-ctx.Done():
			log.Println("Overdue watcher đã dừng.")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *OverdueWatcher) scan(ctx context.Context) {
	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	sessions, err := w.sessionRepo.FindOverdueDaypass(scanCtx, now, w.closingHour)
	if err != nil {
		log.Printf("Lỗi quét phiên daypass quá giờ: %v", err)
		return
	}

	seen := make(map[int]bool, len(sessions))
	for _, session := range sessions {
		seen[session.ID] = true

		closing := MallClosingTime(session.EntryTime, w.closingHour)
		lateHours := int(math.Ceil(now.Sub(closing).Hours()))
		if lateHours <= w.notified[session.ID] {
			continue // đã thông báo cho mức trễ này rồi
		}
		w.notified[session.ID] = lateHours

		log.Printf("ADMIN ALERT: Vehicle %s at slot %s is %d hour(s) late! Mall closed at %d:00.",
			session.Vehicle.NumberPlate, session.ParkingSlot.SlotNumber, lateHours, w.closingHour)

		if w.wsManager != nil {
			w.wsManager.BroadcastParkingEvent(domain.ParkingEventNotification{
				EventID:     uuid.New().String(),
				EventType:   domain.EventLateVehicle,
				SessionID:   session.ID,
				NumberPlate: session.Vehicle.NumberPlate,
				SlotNumber:  session.ParkingSlot.SlotNumber,
				BillingType: session.BillingType,
				LateHours:   lateHours,
				Message: fmt.Sprintf("Vehicle %s is %d hour(s) late! Mall closed at %d:00.",
					session.Vehicle.NumberPlate, lateHours, w.closingHour),
				Timestamp: now,
			})
		}
	}

	// Phiên đã kết thúc (hoặc không còn quá giờ) thì bỏ khỏi danh sách đã thông báo
	for id := range w.notified {
		if !seen[id] {
			delete(w.notified, id)
		}
	}
}
