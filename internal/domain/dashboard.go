package domain

// Thống kê số lượng chỗ đỗ theo trạng thái cho một loại chỗ.
type SlotTypeBreakdown struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

type DashboardOverview struct {
	TotalSlots       int `json:"totalSlots"`
	AvailableSlots   int `json:"availableSlots"`
	OccupiedSlots    int `json:"occupiedSlots"`
	MaintenanceSlots int `json:"maintenanceSlots"`
	ActiveSessions   int `json:"activeSessions"`
	TotalVehicles    int `json:"totalVehicles"`
}

// DashboardStats - payload tổng hợp cho màn hình giám sát, chỉ đọc.
type DashboardStats struct {
	Overview              DashboardOverview               `json:"overview"`
	SlotsByType           map[SlotType]*SlotTypeBreakdown `json:"slotsByType"`
	VehiclesByType        map[VehicleType]int             `json:"vehiclesByType"`
	Slots                 []ParkingSlot                   `json:"slots"`
	Vehicles              []Vehicle                       `json:"vehicles"`
	ActiveSessionsDetails []ParkingSession                `json:"activeSessionsDetails"`
	RecentSessions        []ParkingSession                `json:"recentSessions"`
}
