package domain

import "time"

type ParkingEventType string

const (
	EventVehicleEntry ParkingEventType = "vehicle_entry"
	EventVehicleExit  ParkingEventType = "vehicle_exit"
	EventLateVehicle  ParkingEventType = "late_vehicle"
)

// ParkingEventNotification - Event được gửi đến frontend qua WebSocket
// để dashboard không phải polling liên tục.
type ParkingEventNotification struct {
	EventID     string           `json:"event_id"`
	EventType   ParkingEventType `json:"event_type"`
	SessionID   int              `json:"session_id"`
	NumberPlate string           `json:"number_plate"`
	SlotNumber  string           `json:"slot_number"`
	BillingType BillingType      `json:"billing_type"`
	LateHours   int              `json:"late_hours,omitempty"`
	Message     string           `json:"message,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}
