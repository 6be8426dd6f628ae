package domain

import "time"

type SlotType string

const (
	SlotTypeRegular  SlotType = "Regular"
	SlotTypeCompact  SlotType = "Compact"
	SlotTypeBike     SlotType = "Bike"
	SlotTypeEV       SlotType = "EV"
	SlotTypeHandicap SlotType = "Handicap Accessible"
)

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "Available"
	SlotOccupied    SlotStatus = "Occupied"
	SlotMaintenance SlotStatus = "Maintenance"
)

func IsValidSlotType(t string) bool {
	switch SlotType(t) {
	case SlotTypeRegular, SlotTypeCompact, SlotTypeBike, SlotTypeEV, SlotTypeHandicap:
		return true
	}
	return false
}

type ParkingSlot struct {
	ID         int        `json:"id"`
	SlotNumber string     `json:"slot_number"`
	Type       SlotType   `json:"type"`
	Status     SlotStatus `json:"status"`
	Location   string     `json:"location,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ParkingSlotDTO struct {
	SlotNumber string `json:"slot_number" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Location   string `json:"location"`
}

// DTO lọc danh sách chỗ đỗ (type rỗng = lấy tất cả)
type SlotFilterDTO struct {
	Type string `json:"type"`
}
