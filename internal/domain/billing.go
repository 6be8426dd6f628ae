package domain

import "time"

// BillingRecord là bản chụp bất biến của một phiên đỗ xe đã hoàn tất.
// Biển số / loại xe / số chỗ đỗ được denormalize tại thời điểm tạo để
// dữ liệu lịch sử không bị ảnh hưởng nếu xe hoặc chỗ đỗ thay đổi sau này.
type BillingRecord struct {
	ID            int         `json:"id"`
	SessionID     int         `json:"session_id"`
	VehicleNumber string      `json:"vehicle_number"`
	VehicleType   VehicleType `json:"vehicle_type"`
	SlotNumber    string      `json:"slot_number"`
	EntryTime     time.Time   `json:"entry_time"`
	ExitTime      time.Time   `json:"exit_time"`
	BillingType   BillingType `json:"billing_type"`
	TotalAmount   float64     `json:"total_amount"`
	DurationHours float64     `json:"duration_hours"`
	IsLate        bool        `json:"is_late"`
	CreatedAt     time.Time   `json:"created_at"`
}

type BillingListDTO struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// LateAlert đính kèm vào response xe ra khi xe daypass về trễ sau giờ đóng cửa.
type LateAlert struct {
	Message   string `json:"message"`
	LateHours int    `json:"late_hours"`
}
