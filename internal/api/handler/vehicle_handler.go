package handler

import (
	"errors"
	"net/http"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	parkingService *service.ParkingService
}

func NewVehicleHandler(ps *service.ParkingService) *VehicleHandler {
	return &VehicleHandler{parkingService: ps}
}

// POST /api/vehicles/entry
func (h *VehicleHandler) VehicleEntry(c *gin.Context) {
	var dto domain.VehicleEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, slot, err := h.parkingService.EnterVehicle(c.Request.Context(), dto)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Vehicle parked successfully",
		"slot":       slot.SlotNumber,
		"session_id": session.ID,
	})
}

// POST /api/vehicles/exit
func (h *VehicleHandler) VehicleExit(c *gin.Context) {
	var dto domain.VehicleExitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.parkingService.ExitVehicle(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found!"})
			return
		}
		if errors.Is(err, repository.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active session found for this vehicle."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record := result.Record
	response := gin.H{
		"message":        "Vehicle exited successfully.",
		"billing_amount": record.TotalAmount,
		"session_info": gin.H{
			"entry_time":     record.EntryTime,
			"exit_time":      record.ExitTime,
			"duration_hours": record.DurationHours,
			"slot":           record.SlotNumber,
			"billing_type":   record.BillingType,
		},
	}
	if record.IsLate {
		response["late_alert"] = domain.LateAlert{
			Message:   "Vehicle exited after mall closing time. Late fee may apply.",
			LateHours: result.LateHours,
		}
	}
	c.JSON(http.StatusOK, response)
}

// POST /api/vehicles/search
func (h *VehicleHandler) SearchVehicle(c *gin.Context) {
	var dto domain.VehicleSearchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.parkingService.SearchVehicle(c.Request.Context(), dto.NumberPlate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// session = nil nghĩa là xe có trong hệ thống nhưng hiện không đỗ
	c.JSON(http.StatusOK, gin.H{"session": session})
}
