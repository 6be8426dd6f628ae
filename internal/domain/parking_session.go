package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "Active"
	SessionCompleted SessionStatus = "Completed"
)

type BillingType string

const (
	BillingHourly  BillingType = "hourly"
	BillingDaypass BillingType = "daypass"
)

type ParkingSession struct {
	ID            int           `json:"id"`
	VehicleID     int           `json:"vehicle_id"`
	SlotID        int           `json:"slot_id"`
	EntryTime     time.Time     `json:"entry_time"`
	ExitTime      null.Time     `json:"exit_time"`
	Status        SessionStatus `json:"status"`
	BillingType   BillingType   `json:"billing_type"`
	BillingAmount null.Float    `json:"billing_amount"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Không map vào DB, dùng để trả về API (populate từ JOIN)
	Vehicle     *Vehicle     `json:"vehicle,omitempty"`
	ParkingSlot *ParkingSlot `json:"slot,omitempty"`
}
