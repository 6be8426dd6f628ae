package domain

import "time"

type VehicleType string

const (
	VehicleCar      VehicleType = "Car"
	VehicleBike     VehicleType = "Bike"
	VehicleEV       VehicleType = "EV"
	VehicleHandicap VehicleType = "Handicap Accessible"
)

// IsValidVehicleType kiểm tra loại xe có nằm trong danh sách hỗ trợ không.
func IsValidVehicleType(t string) bool {
	switch VehicleType(t) {
	case VehicleCar, VehicleBike, VehicleEV, VehicleHandicap:
		return true
	}
	return false
}

// AllowedSlotTypes trả về các loại chỗ đỗ mà một loại xe được phép sử dụng.
// Xe máy, xe điện và xe ưu tiên chỉ đỗ đúng loại chỗ của mình;
// các loại còn lại (ô tô...) dùng chỗ Regular hoặc Compact.
func AllowedSlotTypes(t VehicleType) []SlotType {
	switch t {
	case VehicleBike:
		return []SlotType{SlotTypeBike}
	case VehicleEV:
		return []SlotType{SlotTypeEV}
	case VehicleHandicap:
		return []SlotType{SlotTypeHandicap}
	default:
		return []SlotType{SlotTypeRegular, SlotTypeCompact}
	}
}

type Vehicle struct {
	ID          int         `json:"id"`
	NumberPlate string      `json:"number_plate"`
	Type        VehicleType `json:"type"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DTO cho API xe vào cổng
type VehicleEntryDTO struct {
	NumberPlate     string `json:"number_plate" binding:"required"`
	Type            string `json:"type" binding:"required"`
	BillingType     string `json:"billing_type" binding:"required,oneof=hourly daypass"`
	PreferredSlotID *int   `json:"preferred_slot_id"`
}

// DTO cho API xe ra cổng
type VehicleExitDTO struct {
	NumberPlate string `json:"number_plate" binding:"required"`
}

// DTO cho API tra cứu xe theo biển số
type VehicleSearchDTO struct {
	NumberPlate string `json:"number_plate" binding:"required"`
}
